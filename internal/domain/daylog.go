package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// HoursPerDay is the number of slots in a day log. Slot N covers the hour
// [N:00, N+1:00) and immediately precedes slot N+1.
const HoursPerDay = 24

// DateLayout is the date-only form used for day-log keys and API paths.
const DateLayout = "2006-01-02"

// logKeyPrefix namespaces day-log snapshots in the key-value store.
const logKeyPrefix = "driver-logs-"

// DutySlot is one hour of a day.
// Location is meaningful only when Status is set; it may be blank.
type DutySlot struct {
	Hour     int        `json:"hour"`
	Status   DutyStatus `json:"status"`
	Location string     `json:"location"`
}

// DayLog owns the 24 hourly duty slots for one calendar date.
// It is a value type: mutation methods return a new DayLog and never alias
// the receiver, so callers can hold old snapshots safely.
type DayLog struct {
	Date  string
	Slots [HoursPerDay]DutySlot
}

// DailyTotals is derived from a DayLog and never stored. Each slot counts as
// one hour, so a total is simply the number of slots with that status.
type DailyTotals struct {
	Driving      int `json:"driving"`
	OnDuty       int `json:"on_duty"`
	SleeperBerth int `json:"sleeper_berth"`
	OffDuty      int `json:"off_duty"`
	Empty        int `json:"empty"`
}

// NewDayLog returns an empty log for the given date: 24 slots with hours
// 0..23, StatusEmpty, and blank locations. It does not persist anything.
func NewDayLog(date string) DayLog {
	log := DayLog{Date: date}
	for i := range log.Slots {
		log.Slots[i].Hour = i
	}
	return log
}

// LogKey derives the storage key for a date string, e.g.
// "driver-logs-2025-06-01". Two logs for the same calendar date share a key,
// so saving always overwrites the prior snapshot for that date.
func LogKey(date string) string {
	return logKeyPrefix + date
}

// Key returns the storage key for this log's date.
func (l DayLog) Key() string {
	return LogKey(l.Date)
}

// SetSlot returns a copy of the log with the slot at hour replaced.
// All other slots are untouched. Returns ErrInvalidHour (unwrapping to
// ErrValidation) when hour is outside 0..23, leaving the log unchanged.
func (l DayLog) SetSlot(hour int, status DutyStatus, location string) (DayLog, error) {
	if hour < 0 || hour >= HoursPerDay {
		return l, fmt.Errorf("%w: got %d", ErrInvalidHour, hour)
	}
	if !status.Valid() {
		return l, fmt.Errorf("%w: unknown duty status %q", ErrValidation, status)
	}
	l.Slots[hour] = DutySlot{Hour: hour, Status: status, Location: location}
	return l, nil
}

// SetRange returns a copy of the log with every slot in [start, end]
// (inclusive) set to the given status and location. Reversed bounds are
// normalized by swapping, since a drag gesture may proceed in either
// direction. start == end behaves exactly like SetSlot.
func (l DayLog) SetRange(start, end int, status DutyStatus, location string) (DayLog, error) {
	if start > end {
		start, end = end, start
	}
	if start < 0 || end >= HoursPerDay {
		return l, fmt.Errorf("%w: got range %d-%d", ErrInvalidHour, start, end)
	}
	if !status.Valid() {
		return l, fmt.Errorf("%w: unknown duty status %q", ErrValidation, status)
	}
	for h := start; h <= end; h++ {
		l.Slots[h] = DutySlot{Hour: h, Status: status, Location: location}
	}
	return l, nil
}

// Clear returns an empty log for the same date.
func (l DayLog) Clear() DayLog {
	return NewDayLog(l.Date)
}

// Totals counts the hours spent in each duty status across the 24 slots.
// The four status totals plus Empty always sum to 24.
func (l DayLog) Totals() DailyTotals {
	var t DailyTotals
	for _, slot := range l.Slots {
		switch slot.Status {
		case StatusDriving:
			t.Driving++
		case StatusOnDuty:
			t.OnDuty++
		case StatusSleeperBerth:
			t.SleeperBerth++
		case StatusOffDuty:
			t.OffDuty++
		default:
			t.Empty++
		}
	}
	return t
}

// dayLogSnapshot is the persisted JSON shape of a DayLog. Slots is a slice
// rather than an array so UnmarshalDayLog can detect a wrong slot count
// instead of silently truncating or zero-filling.
type dayLogSnapshot struct {
	Date  string     `json:"date"`
	Slots []DutySlot `json:"slots"`
}

// Marshal serializes the log to its persisted JSON form.
// UnmarshalDayLog(l.Marshal()) is value-equal to l for any valid log.
func (l DayLog) Marshal() ([]byte, error) {
	snap := dayLogSnapshot{Date: l.Date, Slots: l.Slots[:]}
	b, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("domain.DayLog.Marshal: %w", err)
	}
	return b, nil
}

// UnmarshalDayLog parses and shape-validates a persisted snapshot.
// Any defect — unparseable JSON, bad date, wrong slot count, out-of-order
// hours, unknown statuses — yields ErrCorruptState rather than a panic, so
// callers can fall back to NewDayLog.
func UnmarshalDayLog(data []byte) (DayLog, error) {
	var snap dayLogSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return DayLog{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if _, err := time.Parse(DateLayout, snap.Date); err != nil {
		return DayLog{}, fmt.Errorf("%w: bad date %q", ErrCorruptState, snap.Date)
	}
	if len(snap.Slots) != HoursPerDay {
		return DayLog{}, fmt.Errorf("%w: expected %d slots, got %d", ErrCorruptState, HoursPerDay, len(snap.Slots))
	}
	log := DayLog{Date: snap.Date}
	for i, slot := range snap.Slots {
		if slot.Hour != i {
			return DayLog{}, fmt.Errorf("%w: slot %d has hour %d", ErrCorruptState, i, slot.Hour)
		}
		if !slot.Status.Valid() {
			return DayLog{}, fmt.Errorf("%w: unknown duty status %q", ErrCorruptState, slot.Status)
		}
		log.Slots[i] = slot
	}
	return log, nil
}
