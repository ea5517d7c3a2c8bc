// Package handler implements the HTTP handlers for the ELD Dashboard API.
// All handlers are methods on Server, mounted onto a chi router by Routes.
// Methods are split into domain-specific files (log.go, trip.go, etc.) but
// all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/openeld/eld-dashboard/internal/domain"
	"github.com/openeld/eld-dashboard/internal/service"
)

// LogServicer defines the day-log operations the log handler depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type LogServicer interface {
	Get(ctx context.Context, date string) (service.Snapshot, error)
	Save(ctx context.Context, log domain.DayLog) (service.Snapshot, error)
	SetSlot(ctx context.Context, date string, hour int, status domain.DutyStatus, location string) (service.Snapshot, error)
	SetRange(ctx context.Context, date string, start, end int, status domain.DutyStatus, location string) (service.Snapshot, error)
	Clear(ctx context.Context, date string) (service.Snapshot, error)
	Export(ctx context.Context, date string) ([]domain.ExportRow, error)
}

// TripServicer defines the trip operations the trip handler depends on.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Waypoints(ctx context.Context, id uuid.UUID) ([]domain.Coordinate, error)
}

// RoutePlanner defines the route operation the route handler depends on.
type RoutePlanner interface {
	Plan(ctx context.Context, waypoints []domain.Coordinate) (service.Route, error)
}

// WeatherProvider defines the weather operation the weather handler depends on.
type WeatherProvider interface {
	Current(ctx context.Context, city string) (service.Weather, error)
}

// Server holds the handler dependencies for all API endpoints.
// Wire it in main.go via Routes. Methods are in domain-specific files but
// all operate on this struct.
type Server struct {
	logs    LogServicer
	trips   TripServicer
	routes  RoutePlanner
	weather WeatherProvider
}

// NewServer constructs the Server with all its dependencies.
func NewServer(logs LogServicer, trips TripServicer, routes RoutePlanner, weather WeatherProvider) *Server {
	return &Server{logs: logs, trips: trips, routes: routes, weather: weather}
}

// Routes mounts every API endpoint onto a fresh chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/logs/{date}", func(r chi.Router) {
		r.Get("/", s.GetLog)
		r.Put("/", s.SaveLog)
		r.Delete("/", s.ClearLog)
		r.Patch("/slots", s.SetLogRange)
		r.Patch("/slots/{hour}", s.SetLogSlot)
		r.Get("/export", s.ExportLog)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)
		r.Get("/{id}", s.GetTrip)
		r.Put("/{id}", s.UpdateTrip)
		r.Delete("/{id}", s.DeleteTrip)
	})

	r.Post("/routes", s.PlanRoute)
	r.Get("/weather", s.GetWeather)

	return r
}

// parseUUIDParam extracts and parses the {id} path parameter.
func parseUUIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
