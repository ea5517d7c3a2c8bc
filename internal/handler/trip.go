package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/openeld/eld-dashboard/internal/domain"
)

// tripRequest is the POST /trips and PUT /trips/{id} body.
// Stops are taken in the order given; the server assigns Seq.
type tripRequest struct {
	CurrentLocation     string            `json:"current_location"`
	Destination         string            `json:"destination"`
	TotalDistanceKm     float64           `json:"total_distance_km"`
	RemainingDistanceKm float64           `json:"remaining_distance_km"`
	ETA                 *time.Time        `json:"eta,omitempty"`
	Stops               []domain.TripStop `json:"stops"`
}

// tripResponse is the JSON shape of a trip.
type tripResponse struct {
	ID                  uuid.UUID         `json:"id"`
	CurrentLocation     string            `json:"current_location"`
	Destination         string            `json:"destination"`
	TotalDistanceKm     float64           `json:"total_distance_km"`
	RemainingDistanceKm float64           `json:"remaining_distance_km"`
	ETA                 *time.Time        `json:"eta,omitempty"`
	Stops               []domain.TripStop `json:"stops"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// pagination echoes the effective paging parameters alongside a list response.
type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// tripListResponse is the GET /trips envelope.
type tripListResponse struct {
	Data       []tripResponse `json:"data"`
	Pagination pagination     `json:"pagination"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body must be valid JSON"))
		return
	}

	created, err := s.trips.Create(r.Context(), requestToTrip(req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	trips, total, err := s.trips.List(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, tripListResponse{
		Data: data,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("id must be a UUID"))
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("id must be a UUID"))
		return
	}

	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body must be valid JSON"))
		return
	}

	trip := requestToTrip(req)
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("id must be a UUID"))
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a tripRequest into a domain.Trip.
func requestToTrip(req tripRequest) domain.Trip {
	return domain.Trip{
		CurrentLocation:     req.CurrentLocation,
		Destination:         req.Destination,
		TotalDistanceKm:     req.TotalDistanceKm,
		RemainingDistanceKm: req.RemainingDistanceKm,
		ETA:                 req.ETA,
		Stops:               req.Stops,
	}
}

// tripToResponse converts a domain.Trip into the response shape.
// Stops are always a non-nil array in the JSON.
func tripToResponse(t domain.Trip) tripResponse {
	stops := t.Stops
	if stops == nil {
		stops = []domain.TripStop{}
	}
	return tripResponse{
		ID:                  t.ID,
		CurrentLocation:     t.CurrentLocation,
		Destination:         t.Destination,
		TotalDistanceKm:     t.TotalDistanceKm,
		RemainingDistanceKm: t.RemainingDistanceKm,
		ETA:                 t.ETA,
		Stops:               stops,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

// queryInt parses an optional integer query parameter. Absent or malformed
// values return nil so pagination falls back to its defaults.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
