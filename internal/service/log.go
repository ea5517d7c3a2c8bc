// Package service contains the business logic for the ELD Dashboard API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// collaborator calls. No SQL and no HTTP shapes live here.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openeld/eld-dashboard/internal/domain"
	"github.com/openeld/eld-dashboard/internal/repo"
)

// Snapshot is what the UI renders for one date: the log, its derived totals,
// and whether a persisted snapshot was actually restored. Restored is false
// both when no snapshot exists and when a stored one was corrupt and
// discarded — either way the caller is looking at a fresh empty log.
type Snapshot struct {
	Log      domain.DayLog
	Totals   domain.DailyTotals
	Restored bool
}

// LogService implements business logic for day-log operations.
// Mutations follow a load-mutate-save cycle over the pure domain.DayLog
// value; there is a single logical writer per date, so no locking is needed.
type LogService struct {
	logs repo.DayLogRepo
	log  *slog.Logger
}

// NewLogService constructs a LogService backed by the provided DayLogRepo.
func NewLogService(logs repo.DayLogRepo, logger *slog.Logger) *LogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogService{logs: logs, log: logger}
}

// Get returns the snapshot for a date, restoring a persisted log when one
// exists. An absent key yields a fresh empty log. A corrupt stored snapshot
// is discarded with a warning and also yields a fresh log — corruption is
// never fatal and never surfaces to the caller as an error.
func (s *LogService) Get(ctx context.Context, date string) (Snapshot, error) {
	if err := validateDate(date); err != nil {
		return Snapshot{}, err
	}

	payload, err := s.logs.Load(ctx, domain.LogKey(date))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return freshSnapshot(date), nil
		}
		return Snapshot{}, fmt.Errorf("service.LogService.Get: %w", err)
	}

	log, err := domain.UnmarshalDayLog(payload)
	if err != nil {
		// ErrCorruptState (or anything else unparseable): fall back.
		s.log.WarnContext(ctx, "discarding corrupt day log snapshot",
			"date", date, "error", err)
		return freshSnapshot(date), nil
	}

	return Snapshot{Log: log, Totals: log.Totals(), Restored: true}, nil
}

// Save persists the given log under its date key, overwriting any prior
// snapshot for that date.
func (s *LogService) Save(ctx context.Context, log domain.DayLog) (Snapshot, error) {
	if err := validateDate(log.Date); err != nil {
		return Snapshot{}, err
	}
	return s.persist(ctx, log)
}

// SetSlot loads the date's log, replaces one slot, and persists the result.
// Returns domain.ErrInvalidHour for an hour outside 0..23; state is unchanged.
func (s *LogService) SetSlot(ctx context.Context, date string, hour int, status domain.DutyStatus, location string) (Snapshot, error) {
	snap, err := s.Get(ctx, date)
	if err != nil {
		return Snapshot{}, err
	}

	updated, err := snap.Log.SetSlot(hour, status, location)
	if err != nil {
		return Snapshot{}, err
	}
	return s.persist(ctx, updated)
}

// SetRange loads the date's log, applies the status to every slot in the
// inclusive range (bounds in either order), and persists the result.
func (s *LogService) SetRange(ctx context.Context, date string, start, end int, status domain.DutyStatus, location string) (Snapshot, error) {
	snap, err := s.Get(ctx, date)
	if err != nil {
		return Snapshot{}, err
	}

	updated, err := snap.Log.SetRange(start, end, status, location)
	if err != nil {
		return Snapshot{}, err
	}
	return s.persist(ctx, updated)
}

// Clear persists an empty log for the date, wiping all 24 slots.
func (s *LogService) Clear(ctx context.Context, date string) (Snapshot, error) {
	if err := validateDate(date); err != nil {
		return Snapshot{}, err
	}
	return s.persist(ctx, domain.NewDayLog(date))
}

// Export returns the date's log flattened to one row per hour slot.
func (s *LogService) Export(ctx context.Context, date string) ([]domain.ExportRow, error) {
	snap, err := s.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	return snap.Log.ExportRows(), nil
}

// persist marshals and saves a log, returning the resulting snapshot.
// A log that was just written is by definition restored on next read.
func (s *LogService) persist(ctx context.Context, log domain.DayLog) (Snapshot, error) {
	payload, err := log.Marshal()
	if err != nil {
		return Snapshot{}, fmt.Errorf("service.LogService: %w", err)
	}
	if err := s.logs.Save(ctx, log.Key(), payload); err != nil {
		return Snapshot{}, fmt.Errorf("service.LogService: %w", err)
	}
	return Snapshot{Log: log, Totals: log.Totals(), Restored: true}, nil
}

// freshSnapshot builds the Snapshot for a date with no usable stored state.
func freshSnapshot(date string) Snapshot {
	log := domain.NewDayLog(date)
	return Snapshot{Log: log, Totals: log.Totals(), Restored: false}
}

// validateDate enforces the date-only ISO form used for log keys.
func validateDate(date string) error {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", domain.ErrValidation, date)
	}
	return nil
}
