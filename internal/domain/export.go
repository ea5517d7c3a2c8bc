package domain

import "fmt"

// ExportRow is a single row in a day-log export: one row per hour slot.
// It is a flat, presentation-ready view — times are preformatted HH:MM
// strings and the status carries its human-readable label.
type ExportRow struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"` // "08:00"
	EndTime   string `json:"end_time"`   // "09:00"
	Status    string `json:"status"`     // "Driving", or "" for unlogged hours
	Location  string `json:"location"`
}

// ExportRows flattens the log into 24 rows, one per slot, in hour order.
func (l DayLog) ExportRows() []ExportRow {
	rows := make([]ExportRow, 0, HoursPerDay)
	for _, slot := range l.Slots {
		rows = append(rows, ExportRow{
			Date:      l.Date,
			StartTime: fmt.Sprintf("%02d:00", slot.Hour),
			EndTime:   fmt.Sprintf("%02d:00", slot.Hour+1),
			Status:    slot.Status.Label(),
			Location:  slot.Location,
		})
	}
	return rows
}
