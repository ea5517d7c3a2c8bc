package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/openeld/eld-dashboard/internal/domain"
	"github.com/openeld/eld-dashboard/internal/repo"
)

// TripService implements business logic for trip summaries.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip. Stops are re-sequenced 0..n-1 in
// their given order so callers never have to manage Seq themselves.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	trip.Stops = resequence(trip.Stops)

	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns a page of trips, newest first, plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and persists changes to an existing trip.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	trip.Stops = resequence(trip.Stops)

	updated, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip by ID.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// Waypoints returns the trip's stop coordinates in sequence order, for
// handing to the route planner. The route must pass through every stop —
// fuel and rest stops are mandatory, not suggestions.
func (s *TripService) Waypoints(ctx context.Context, id uuid.UUID) ([]domain.Coordinate, error) {
	trip, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stops := append([]domain.TripStop(nil), trip.Stops...)
	sort.Slice(stops, func(i, j int) bool { return stops[i].Seq < stops[j].Seq })

	coords := make([]domain.Coordinate, 0, len(stops))
	for _, stop := range stops {
		coords = append(coords, stop.Coord)
	}
	return coords, nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Current location and destination must be non-empty.
//   - Distances must be non-negative, remaining must not exceed total.
//   - Every stop needs a location, a known type, and valid coordinates.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.CurrentLocation) == "" {
		return fmt.Errorf("%w: current_location is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if trip.TotalDistanceKm < 0 || trip.RemainingDistanceKm < 0 {
		return fmt.Errorf("%w: distances must be non-negative", domain.ErrValidation)
	}
	if trip.RemainingDistanceKm > trip.TotalDistanceKm {
		return fmt.Errorf("%w: remaining distance exceeds total", domain.ErrValidation)
	}
	for i, stop := range trip.Stops {
		if strings.TrimSpace(stop.Location) == "" {
			return fmt.Errorf("%w: stop %d: location is required", domain.ErrValidation, i)
		}
		if !stop.Type.Valid() {
			return fmt.Errorf("%w: stop %d: unknown stop type %q", domain.ErrValidation, i, stop.Type)
		}
		if !stop.Coord.Valid() {
			return fmt.Errorf("%w: stop %d: coordinate out of range", domain.ErrValidation, i)
		}
	}
	return nil
}

// resequence renumbers stops 0..n-1 in slice order.
func resequence(stops []domain.TripStop) []domain.TripStop {
	out := make([]domain.TripStop, len(stops))
	for i, stop := range stops {
		stop.Seq = i
		out[i] = stop
	}
	return out
}
