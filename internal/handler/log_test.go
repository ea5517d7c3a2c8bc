package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openeld/eld-dashboard/internal/domain"
	"github.com/openeld/eld-dashboard/internal/handler"
	"github.com/openeld/eld-dashboard/internal/service"
)

// mockLogServicer is a test double for handler.LogServicer.
// Set only the method fields your test needs.
type mockLogServicer struct {
	get      func(ctx context.Context, date string) (service.Snapshot, error)
	save     func(ctx context.Context, log domain.DayLog) (service.Snapshot, error)
	setSlot  func(ctx context.Context, date string, hour int, status domain.DutyStatus, location string) (service.Snapshot, error)
	setRange func(ctx context.Context, date string, start, end int, status domain.DutyStatus, location string) (service.Snapshot, error)
	clear    func(ctx context.Context, date string) (service.Snapshot, error)
	export   func(ctx context.Context, date string) ([]domain.ExportRow, error)
}

func (m *mockLogServicer) Get(ctx context.Context, date string) (service.Snapshot, error) {
	return m.get(ctx, date)
}
func (m *mockLogServicer) Save(ctx context.Context, log domain.DayLog) (service.Snapshot, error) {
	return m.save(ctx, log)
}
func (m *mockLogServicer) SetSlot(ctx context.Context, date string, hour int, status domain.DutyStatus, location string) (service.Snapshot, error) {
	return m.setSlot(ctx, date, hour, status, location)
}
func (m *mockLogServicer) SetRange(ctx context.Context, date string, start, end int, status domain.DutyStatus, location string) (service.Snapshot, error) {
	return m.setRange(ctx, date, start, end, status, location)
}
func (m *mockLogServicer) Clear(ctx context.Context, date string) (service.Snapshot, error) {
	return m.clear(ctx, date)
}
func (m *mockLogServicer) Export(ctx context.Context, date string) ([]domain.ExportRow, error) {
	return m.export(ctx, date)
}

// compile-time check: mockLogServicer must satisfy handler.LogServicer.
var _ handler.LogServicer = (*mockLogServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newLogHandler wires a Server with the given mock into the router,
// mirroring how main.go wires it in production.
func newLogHandler(logs handler.LogServicer) http.Handler {
	return handler.NewServer(logs, nil, nil, nil).Routes()
}

func snapshotFixture(date string, restored bool) service.Snapshot {
	log := domain.NewDayLog(date)
	log, _ = log.SetRange(8, 11, domain.StatusDriving, "I-80, NE")
	return service.Snapshot{Log: log, Totals: log.Totals(), Restored: restored}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// ---- GET /logs/{date} ------------------------------------------------------

func TestGetLog_200(t *testing.T) {
	logs := &mockLogServicer{
		get: func(_ context.Context, date string) (service.Snapshot, error) {
			return snapshotFixture(date, true), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/logs/2025-06-01", nil)
	rec := httptest.NewRecorder()

	newLogHandler(logs).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSnapshot(t, rec)
	assert.Equal(t, "2025-06-01", resp["date"])
	assert.Equal(t, true, resp["restored"])
	assert.Len(t, resp["slots"], 24)

	totals := resp["totals"].(map[string]any)
	assert.Equal(t, float64(4), totals["driving"])
	assert.Equal(t, float64(20), totals["empty"])
}

func TestGetLog_422_BadDate(t *testing.T) {
	logs := &mockLogServicer{
		get: func(_ context.Context, date string) (service.Snapshot, error) {
			return service.Snapshot{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", domain.ErrValidation, date)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/logs/not-a-date", nil)
	rec := httptest.NewRecorder()

	newLogHandler(logs).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp map[string]map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "validation_error", resp["error"]["code"])
	assert.Equal(t, `date must be YYYY-MM-DD, got "not-a-date"`, resp["error"]["message"])
}

// ---- PUT /logs/{date} ------------------------------------------------------

func TestSaveLog_200(t *testing.T) {
	var saved domain.DayLog
	logs := &mockLogServicer{
		save: func(_ context.Context, log domain.DayLog) (service.Snapshot, error) {
			saved = log
			return service.Snapshot{Log: log, Totals: log.Totals(), Restored: true}, nil
		},
	}

	fixture := snapshotFixture("2025-06-01", true)
	body := jsonBody(t, map[string]any{"slots": fixture.Log.Slots[:]})

	req := httptest.NewRequest(http.MethodPut, "/logs/2025-06-01", body)
	rec := httptest.NewRecorder()

	newLogHandler(logs).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-06-01", saved.Date)
	assert.Equal(t, domain.StatusDriving, saved.Slots[8].Status)
}

func TestSaveLog_422_WrongSlotCount(t *testing.T) {
	logs := &mockLogServicer{}
	body := jsonBody(t, map[string]any{
		"slots": []domain.DutySlot{{Hour: 0, Status: domain.StatusDriving}},
	})

	req := httptest.NewRequest(http.MethodPut, "/logs/2025-06-01", body)
	rec := httptest.NewRecorder()

	newLogHandler(logs).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSaveLog_422_BadJSON(t *testing.T) {
	logs := &mockLogServicer{}

	req := httptest.NewRequest(http.MethodPut, "/logs/2025-06-01", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()

	newLogHandler(logs).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- DELETE /logs/{date} ---------------------------------------------------

func TestClearLog_200(t *testing.T) {
	logs := &mockLogServicer{
		clear: func(_ context.Context, date string) (service.Snapshot, error) {
			log := domain.NewDayLog(date)
			return service.Snapshot{Log: log, Totals: log.Totals(), Restored: true}, nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/logs/2025-06-01", nil)
	rec := httptest.NewRecorder()

	newLogHandler(logs).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSnapshot(t, rec)
	totals := resp["totals"].(map[string]any)
	assert.Equal(t, float64(24), totals["empty"])
}

// ---- PATCH /logs/{date}/slots/{hour} ---------------------------------------

func TestSetLogSlot_200(t *testing.T) {
	var gotHour int
	var gotStatus domain.DutyStatus
	logs := &mockLogServicer{
		setSlot: func(_ context.Context, date string, hour int, status domain.DutyStatus, location string) (service.Snapshot, error) {
			gotHour, gotStatus = hour, status
			return snapshotFixture(date, true), nil
		},
	}

	body := jsonBody(t, map[string]any{"status": "on_duty", "location": "Yard, Omaha NE"})
	req := httptest.NewRequest(http.MethodPatch, "/logs/2025-06-01/slots/14", body)
	rec := httptest.NewRecorder()

	newLogHandler(logs).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 14, gotHour)
	assert.Equal(t, domain.StatusOnDuty, gotStatus)
}

func TestSetLogSlot_422_InvalidHour(t *testing.T) {
	logs := &mockLogServicer{
		setSlot: func(_ context.Context, _ string, _ int, _ domain.DutyStatus, _ string) (service.Snapshot, error) {
			return service.Snapshot{}, domain.ErrInvalidHour
		},
	}

	body := jsonBody(t, map[string]any{"status": "driving"})
	req := httptest.NewRequest(http.MethodPatch, "/logs/2025-06-01/slots/24", body)
	rec := httptest.NewRecorder()

	newLogHandler(logs).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSetLogSlot_422_NonIntegerHour(t *testing.T) {
	logs := &mockLogServicer{}

	body := jsonBody(t, map[string]any{"status": "driving"})
	req := httptest.NewRequest(http.MethodPatch, "/logs/2025-06-01/slots/noon", body)
	rec := httptest.NewRecorder()

	newLogHandler(logs).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- PATCH /logs/{date}/slots ----------------------------------------------

func TestSetLogRange_200(t *testing.T) {
	var gotStart, gotEnd int
	logs := &mockLogServicer{
		setRange: func(_ context.Context, date string, start, end int, _ domain.DutyStatus, _ string) (service.Snapshot, error) {
			gotStart, gotEnd = start, end
			return snapshotFixture(date, true), nil
		},
	}

	body := jsonBody(t, map[string]any{
		"start_hour": 9,
		"end_hour":   3,
		"status":     "sleeper_berth",
	})
	req := httptest.NewRequest(http.MethodPatch, "/logs/2025-06-01/slots", body)
	rec := httptest.NewRecorder()

	newLogHandler(logs).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// Bounds pass through as given; the domain layer normalizes order.
	assert.Equal(t, 9, gotStart)
	assert.Equal(t, 3, gotEnd)
}
