package domain

import (
	"time"

	"github.com/google/uuid"
)

// StopType categorizes a waypoint on a trip. Fuel and rest stops are
// mandatory stops: the route must pass through them, but the backend only
// records them — it never computes where they should go.
type StopType string

const (
	StopPickup  StopType = "pickup"
	StopDropoff StopType = "dropoff"
	StopFuel    StopType = "fuel"
	StopRest    StopType = "rest"
)

// Valid reports whether t is a known stop type.
func (t StopType) Valid() bool {
	switch t {
	case StopPickup, StopDropoff, StopFuel, StopRest:
		return true
	}
	return false
}

// TripStop is a waypoint on a trip, ordered by Seq.
// Stops are value objects owned by their trip; they have no independent
// lifecycle and are persisted inline with the trip record.
type TripStop struct {
	Location string     `json:"location"`
	Coord    Coordinate `json:"coord"`
	Type     StopType   `json:"type"`
	Seq      int        `json:"seq"`
}

// Trip is the dashboard's trip summary: where the driver is, where they are
// headed, how far is left, and the waypoints in between.
type Trip struct {
	ID                  uuid.UUID
	CurrentLocation     string
	Destination         string
	TotalDistanceKm     float64
	RemainingDistanceKm float64
	ETA                 *time.Time // nil when not yet estimated
	Stops               []TripStop
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
