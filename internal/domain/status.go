// Package domain contains the core data types for the ELD Dashboard backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

// DutyStatus is the regulatory category of a logged hour.
// The zero value StatusEmpty means the hour has not been logged yet and is
// distinct from every real duty status.
type DutyStatus string

const (
	StatusDriving      DutyStatus = "driving"
	StatusOnDuty       DutyStatus = "on_duty"
	StatusSleeperBerth DutyStatus = "sleeper_berth"
	StatusOffDuty      DutyStatus = "off_duty"
	StatusEmpty        DutyStatus = ""
)

// DutyStatuses lists the four real duty statuses, in chart-row order.
// StatusEmpty is deliberately excluded: it is the absence of a status.
var DutyStatuses = []DutyStatus{StatusDriving, StatusOnDuty, StatusSleeperBerth, StatusOffDuty}

// Valid reports whether s is a known duty status, including StatusEmpty.
func (s DutyStatus) Valid() bool {
	switch s {
	case StatusDriving, StatusOnDuty, StatusSleeperBerth, StatusOffDuty, StatusEmpty:
		return true
	}
	return false
}

// IsSet reports whether s is a real duty status rather than StatusEmpty.
func (s DutyStatus) IsSet() bool {
	return s != StatusEmpty && s.Valid()
}

// Label returns the human-readable name used in exports and log lines.
func (s DutyStatus) Label() string {
	switch s {
	case StatusDriving:
		return "Driving"
	case StatusOnDuty:
		return "On Duty"
	case StatusSleeperBerth:
		return "Sleeper Berth"
	case StatusOffDuty:
		return "Off Duty"
	}
	return ""
}
