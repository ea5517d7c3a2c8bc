package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/openeld/eld-dashboard/internal/domain"
	"github.com/openeld/eld-dashboard/internal/service"
)

// snapshotResponse is the JSON shape for a day-log snapshot.
type snapshotResponse struct {
	Date     string             `json:"date"`
	Slots    []domain.DutySlot  `json:"slots"`
	Totals   domain.DailyTotals `json:"totals"`
	Restored bool               `json:"restored"`
}

func snapshotToResponse(snap service.Snapshot) snapshotResponse {
	return snapshotResponse{
		Date:     snap.Log.Date,
		Slots:    snap.Log.Slots[:],
		Totals:   snap.Totals,
		Restored: snap.Restored,
	}
}

// GetLog handles GET /logs/{date}.
// An absent or corrupt stored snapshot yields a fresh empty log with
// restored=false; neither is an error.
func (s *Server) GetLog(w http.ResponseWriter, r *http.Request) {
	snap, err := s.logs.Get(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotToResponse(snap))
}

// saveLogRequest is the PUT /logs/{date} body: a full 24-slot snapshot.
type saveLogRequest struct {
	Slots []domain.DutySlot `json:"slots"`
}

// SaveLog handles PUT /logs/{date}. The body must carry exactly 24 slots in
// hour order; the date comes from the path, never the body.
func (s *Server) SaveLog(w http.ResponseWriter, r *http.Request) {
	var req saveLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body must be valid JSON"))
		return
	}

	log, err := buildDayLog(chi.URLParam(r, "date"), req.Slots)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	snap, err := s.logs.Save(r.Context(), log)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotToResponse(snap))
}

// ClearLog handles DELETE /logs/{date}. It persists an empty log rather than
// deleting the key, so a subsequent GET restores 24 empty slots.
func (s *Server) ClearLog(w http.ResponseWriter, r *http.Request) {
	snap, err := s.logs.Clear(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotToResponse(snap))
}

// setSlotRequest is the PATCH /logs/{date}/slots/{hour} body.
type setSlotRequest struct {
	Status   domain.DutyStatus `json:"status"`
	Location string            `json:"location"`
}

// SetLogSlot handles PATCH /logs/{date}/slots/{hour}.
func (s *Server) SetLogSlot(w http.ResponseWriter, r *http.Request) {
	hour, err := strconv.Atoi(chi.URLParam(r, "hour"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("hour must be an integer"))
		return
	}

	var req setSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body must be valid JSON"))
		return
	}

	snap, err := s.logs.SetSlot(r.Context(), chi.URLParam(r, "date"), hour, req.Status, req.Location)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotToResponse(snap))
}

// setRangeRequest is the PATCH /logs/{date}/slots body. Bounds are inclusive
// and accepted in either order.
type setRangeRequest struct {
	StartHour int               `json:"start_hour"`
	EndHour   int               `json:"end_hour"`
	Status    domain.DutyStatus `json:"status"`
	Location  string            `json:"location"`
}

// SetLogRange handles PATCH /logs/{date}/slots.
func (s *Server) SetLogRange(w http.ResponseWriter, r *http.Request) {
	var req setRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body must be valid JSON"))
		return
	}

	snap, err := s.logs.SetRange(r.Context(), chi.URLParam(r, "date"), req.StartHour, req.EndHour, req.Status, req.Location)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotToResponse(snap))
}

// buildDayLog validates a client-supplied slot list and assembles a DayLog.
func buildDayLog(date string, slots []domain.DutySlot) (domain.DayLog, error) {
	if len(slots) != domain.HoursPerDay {
		return domain.DayLog{}, fmtValidation("expected %d slots, got %d", domain.HoursPerDay, len(slots))
	}
	log := domain.DayLog{Date: date}
	for i, slot := range slots {
		if slot.Hour != i {
			return domain.DayLog{}, fmtValidation("slot %d has hour %d", i, slot.Hour)
		}
		if !slot.Status.Valid() {
			return domain.DayLog{}, fmtValidation("slot %d has unknown status %q", i, slot.Status)
		}
		log.Slots[i] = slot
	}
	return log, nil
}
