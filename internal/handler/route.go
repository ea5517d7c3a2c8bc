package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/openeld/eld-dashboard/internal/domain"
	"github.com/openeld/eld-dashboard/internal/service"
)

// routePlanRequest is the POST /routes body. Coordinates are [lat, lng]
// pairs, in visit order. When trip_id is set instead, the route is planned
// through that trip's stops and coordinates must be omitted.
type routePlanRequest struct {
	Coordinates [][2]float64 `json:"coordinates,omitempty"`
	TripID      *uuid.UUID   `json:"trip_id,omitempty"`
}

// routeResponse is the JSON shape of a planned route.
type routeResponse struct {
	Path            [][2]float64 `json:"path"` // [lat, lng] pairs
	DistanceMeters  float64      `json:"distance_meters"`
	DurationSeconds float64      `json:"duration_seconds"`
}

// PlanRoute handles POST /routes.
func (s *Server) PlanRoute(w http.ResponseWriter, r *http.Request) {
	var req routePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body must be valid JSON"))
		return
	}
	if req.TripID != nil && len(req.Coordinates) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("provide coordinates or trip_id, not both"))
		return
	}

	waypoints, err := s.resolveWaypoints(r, req)
	if err != nil {
		writeError(w, err)
		return
	}

	route, err := s.routes.Plan(r.Context(), waypoints)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, routeToResponse(route))
}

// resolveWaypoints turns the request into a coordinate list, either directly
// or by looking up the trip's stops.
func (s *Server) resolveWaypoints(r *http.Request, req routePlanRequest) ([]domain.Coordinate, error) {
	if req.TripID != nil {
		return s.trips.Waypoints(r.Context(), *req.TripID)
	}
	waypoints := make([]domain.Coordinate, len(req.Coordinates))
	for i, pair := range req.Coordinates {
		waypoints[i] = domain.Coordinate{Lat: pair[0], Lng: pair[1]}
	}
	return waypoints, nil
}

func routeToResponse(route service.Route) routeResponse {
	path := make([][2]float64, len(route.Path))
	for i, c := range route.Path {
		path[i] = [2]float64{c.Lat, c.Lng}
	}
	return routeResponse{
		Path:            path,
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
	}
}
