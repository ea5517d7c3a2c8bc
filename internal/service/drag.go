package service

import (
	"fmt"

	"github.com/openeld/eld-dashboard/internal/domain"
)

// DefaultDragStatus is the status a committed drag selection proposes before
// the user picks one: painting a range starts as driving time.
const DefaultDragStatus = domain.StatusDriving

// RangeSelection is the normalized result of a completed drag gesture.
// Start <= End always holds.
type RangeSelection struct {
	Start int
	End   int
}

// DragSession models the mouse-down / mouse-over / mouse-up gesture across
// hour cells as an explicit three-phase state machine, independent of any UI:
//
//	Start(h) records the anchor; Move(h) re-sets the provisional end on every
//	pointer-over; End() commits exactly once, returning the normalized range.
//
// A session is single-use state for one gesture and is not safe for
// concurrent use — all events arrive from one interactive user.
type DragSession struct {
	anchor *int
	end    *int
}

// Start begins a gesture anchored at hour. Starting while a gesture is in
// flight re-anchors it. Returns domain.ErrInvalidHour for hours outside 0..23.
func (d *DragSession) Start(hour int) error {
	if err := checkHour(hour); err != nil {
		return err
	}
	h := hour
	d.anchor = &h
	e := hour
	d.end = &e
	return nil
}

// Move updates the provisional end anchor. It is idempotent and re-settable:
// only the last Move before End matters. Moves with no active gesture, or to
// an invalid hour, are ignored — pointer noise, not errors.
func (d *DragSession) Move(hour int) {
	if d.anchor == nil || checkHour(hour) != nil {
		return
	}
	h := hour
	d.end = &h
}

// Active reports whether a gesture is in flight.
func (d *DragSession) Active() bool {
	return d.anchor != nil
}

// End completes the gesture, returning the normalized selection and true.
// Both anchors are cleared, so a second End is a no-op. End without a prior
// Start returns ok=false — a stray mouse-up, not an error.
func (d *DragSession) End() (sel RangeSelection, ok bool) {
	if d.anchor == nil || d.end == nil {
		d.anchor, d.end = nil, nil
		return RangeSelection{}, false
	}

	start, end := *d.anchor, *d.end
	if start > end {
		start, end = end, start
	}
	d.anchor, d.end = nil, nil
	return RangeSelection{Start: start, End: end}, true
}

func checkHour(hour int) error {
	if hour < 0 || hour >= domain.HoursPerDay {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidHour, hour)
	}
	return nil
}
