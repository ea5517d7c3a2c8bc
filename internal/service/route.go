package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/openeld/eld-dashboard/internal/domain"
	"github.com/openeld/eld-dashboard/internal/polyline"
)

// Route is a planned route: the decoded path plus the distance/duration
// summary reported by the routing service.
type Route struct {
	Path            []domain.Coordinate
	DistanceMeters  float64
	DurationSeconds float64
}

// RouteService plans routes through an OpenRouteService-compatible directions
// endpoint. The upstream returns its geometry as an encoded polyline, which
// this service decodes before handing the route to callers.
//
// The service never retries: a newer request for a different coordinate set
// supersedes an older one, and only the latest result is meaningful, so the
// caller simply issues a fresh call and discards anything stale.
type RouteService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewRouteService constructs a RouteService for the given directions endpoint.
// Pass nil as client to use a default with a 30-second timeout.
func NewRouteService(baseURL, apiKey string, client *http.Client) *RouteService {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &RouteService{baseURL: baseURL, apiKey: apiKey, client: client}
}

// routeRequest is the upstream request body. The directions API expects
// [lng, lat] pairs — the reverse of how coordinates read everywhere else.
type routeRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
}

// routeResponse is the subset of the upstream response the dashboard uses.
type routeResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

// Plan requests a route through the given waypoints, in order.
// At least two valid coordinates are required (domain.ErrValidation).
// Upstream failures — transport errors, non-200 statuses, empty route lists,
// undecodable geometry — all surface as domain.ErrUnavailable; the route is
// simply not available and the dashboard shows a neutral state.
func (s *RouteService) Plan(ctx context.Context, waypoints []domain.Coordinate) (Route, error) {
	if len(waypoints) < 2 {
		return Route{}, fmt.Errorf("%w: at least 2 waypoints required, got %d", domain.ErrValidation, len(waypoints))
	}
	for i, c := range waypoints {
		if !c.Valid() {
			return Route{}, fmt.Errorf("%w: waypoint %d out of range", domain.ErrValidation, i)
		}
	}

	reqBody := routeRequest{Coordinates: make([][2]float64, len(waypoints))}
	for i, c := range waypoints {
		reqBody.Coordinates[i] = [2]float64{c.Lng, c.Lat}
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return Route{}, fmt.Errorf("service.RouteService.Plan: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return Route{}, fmt.Errorf("service.RouteService.Plan: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return Route{}, fmt.Errorf("%w: route request failed: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a little of the body for the log line; don't trust it further.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Route{}, fmt.Errorf("%w: routing service returned %d: %s", domain.ErrUnavailable, resp.StatusCode, snippet)
	}

	var parsed routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Route{}, fmt.Errorf("%w: undecodable route response: %v", domain.ErrUnavailable, err)
	}
	if len(parsed.Routes) == 0 {
		return Route{}, fmt.Errorf("%w: routing service returned no routes", domain.ErrUnavailable)
	}

	best := parsed.Routes[0]
	path, err := polyline.Decode(best.Geometry)
	if err != nil {
		// Upstream handed us a geometry we cannot decode — same outcome
		// for the caller as no route at all.
		return Route{}, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}

	return Route{
		Path:            path,
		DistanceMeters:  best.Summary.Distance,
		DurationSeconds: best.Summary.Duration,
	}, nil
}
