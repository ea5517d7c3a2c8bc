package domain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openeld/eld-dashboard/internal/domain"
)

// ---- NewDayLog -------------------------------------------------------------

func TestNewDayLog_Empty(t *testing.T) {
	log := domain.NewDayLog("2025-06-01")

	assert.Equal(t, "2025-06-01", log.Date)
	for i, slot := range log.Slots {
		assert.Equal(t, i, slot.Hour)
		assert.Equal(t, domain.StatusEmpty, slot.Status)
		assert.Empty(t, slot.Location)
	}
}

func TestDayLog_Key(t *testing.T) {
	log := domain.NewDayLog("2025-06-01")
	assert.Equal(t, "driver-logs-2025-06-01", log.Key())
}

// ---- SetSlot ---------------------------------------------------------------

// TestDayLog_SetSlot_EveryHour verifies that setting any single slot updates
// exactly that slot and leaves the other 23 untouched.
func TestDayLog_SetSlot_EveryHour(t *testing.T) {
	for hour := 0; hour < domain.HoursPerDay; hour++ {
		got, err := domain.NewDayLog("2025-06-01").SetSlot(hour, domain.StatusDriving, "I-70 E")
		require.NoError(t, err, "hour %d", hour)

		for i, slot := range got.Slots {
			if i == hour {
				assert.Equal(t, domain.StatusDriving, slot.Status)
				assert.Equal(t, "I-70 E", slot.Location)
			} else {
				assert.Equal(t, domain.StatusEmpty, slot.Status, "slot %d should stay empty", i)
			}
		}
	}
}

func TestDayLog_SetSlot_HourOutOfRange(t *testing.T) {
	log := domain.NewDayLog("2025-06-01")

	for _, hour := range []int{-1, 24, 100} {
		got, err := log.SetSlot(hour, domain.StatusDriving, "")

		assert.ErrorIs(t, err, domain.ErrInvalidHour, "hour %d", hour)
		assert.ErrorIs(t, err, domain.ErrValidation, "ErrInvalidHour must unwrap to ErrValidation")
		assert.Equal(t, log, got, "log must be unchanged on rejected mutation")
	}
}

func TestDayLog_SetSlot_UnknownStatus(t *testing.T) {
	_, err := domain.NewDayLog("2025-06-01").SetSlot(3, domain.DutyStatus("napping"), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// TestDayLog_SetSlot_NoAliasing verifies value semantics: mutating the
// returned log must not change the original.
func TestDayLog_SetSlot_NoAliasing(t *testing.T) {
	original := domain.NewDayLog("2025-06-01")
	_, err := original.SetSlot(5, domain.StatusOnDuty, "Truck Stop, Denver CO")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusEmpty, original.Slots[5].Status)
}

// ---- SetRange --------------------------------------------------------------

// TestDayLog_SetRange_AnyOrder verifies that the bounds are normalized:
// (a, b) and (b, a) produce identical results, and only in-range slots change.
func TestDayLog_SetRange_AnyOrder(t *testing.T) {
	cases := []struct{ a, b int }{
		{3, 9},
		{9, 3}, // reverse drag
		{0, 23},
		{7, 7}, // single slot
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d-%d", tc.a, tc.b), func(t *testing.T) {
			got, err := domain.NewDayLog("2025-06-01").SetRange(tc.a, tc.b, domain.StatusSleeperBerth, "Rest Area")
			require.NoError(t, err)

			lo, hi := tc.a, tc.b
			if lo > hi {
				lo, hi = hi, lo
			}
			for i, slot := range got.Slots {
				if i >= lo && i <= hi {
					assert.Equal(t, domain.StatusSleeperBerth, slot.Status, "slot %d", i)
					assert.Equal(t, "Rest Area", slot.Location, "slot %d", i)
				} else {
					assert.Equal(t, domain.StatusEmpty, slot.Status, "slot %d should stay empty", i)
				}
			}
		})
	}
}

func TestDayLog_SetRange_SingleHourMatchesSetSlot(t *testing.T) {
	base := domain.NewDayLog("2025-06-01")

	viaRange, err := base.SetRange(7, 7, domain.StatusDriving, "I-80 W")
	require.NoError(t, err)
	viaSlot, err := base.SetSlot(7, domain.StatusDriving, "I-80 W")
	require.NoError(t, err)

	assert.Equal(t, viaSlot, viaRange)
}

func TestDayLog_SetRange_OutOfRange(t *testing.T) {
	log := domain.NewDayLog("2025-06-01")

	for _, tc := range []struct{ a, b int }{{-1, 5}, {5, 24}, {-3, 30}} {
		got, err := log.SetRange(tc.a, tc.b, domain.StatusDriving, "")
		assert.ErrorIs(t, err, domain.ErrInvalidHour, "range %d-%d", tc.a, tc.b)
		assert.Equal(t, log, got)
	}
}

// ---- Totals ----------------------------------------------------------------

// TestDayLog_Totals_Invariant verifies that the four status totals plus the
// empty count always sum to 24, across a mix of edits.
func TestDayLog_Totals_Invariant(t *testing.T) {
	log := domain.NewDayLog("2025-06-01")
	log, err := log.SetRange(0, 5, domain.StatusOffDuty, "Truck Stop, Denver CO")
	require.NoError(t, err)
	log, err = log.SetRange(6, 9, domain.StatusOnDuty, "Truck Stop, Denver CO")
	require.NoError(t, err)
	log, err = log.SetRange(10, 14, domain.StatusDriving, "I-70 E")
	require.NoError(t, err)
	log, err = log.SetSlot(22, domain.StatusSleeperBerth, "Truck Stop, Kansas City MO")
	require.NoError(t, err)

	totals := log.Totals()

	assert.Equal(t, 5, totals.Driving)
	assert.Equal(t, 4, totals.OnDuty)
	assert.Equal(t, 1, totals.SleeperBerth)
	assert.Equal(t, 6, totals.OffDuty)
	assert.Equal(t, 8, totals.Empty)
	assert.Equal(t, domain.HoursPerDay,
		totals.Driving+totals.OnDuty+totals.SleeperBerth+totals.OffDuty+totals.Empty)
}

func TestDayLog_Clear_AllEmptyTotals(t *testing.T) {
	log, err := domain.NewDayLog("2025-06-01").SetRange(0, 23, domain.StatusDriving, "I-70 E")
	require.NoError(t, err)

	cleared := log.Clear()
	totals := cleared.Totals()

	assert.Equal(t, "2025-06-01", cleared.Date, "date key must survive Clear")
	assert.Equal(t, domain.DailyTotals{Empty: domain.HoursPerDay}, totals)
}

// ---- serialization round-trip ----------------------------------------------

// TestDayLog_MarshalRoundTrip verifies deserialize(serialize(x)) == x for
// logs built through every mutation path.
func TestDayLog_MarshalRoundTrip(t *testing.T) {
	log := domain.NewDayLog("2025-06-01")
	log, err := log.SetRange(8, 12, domain.StatusDriving, "I-70 E, Mile 240")
	require.NoError(t, err)
	log, err = log.SetSlot(13, domain.StatusOnDuty, "Rest Area, Topeka KS")
	require.NoError(t, err)

	data, err := log.Marshal()
	require.NoError(t, err)

	got, err := domain.UnmarshalDayLog(data)
	require.NoError(t, err)
	assert.Equal(t, log, got)
}

func TestDayLog_MarshalRoundTrip_EmptyAndCleared(t *testing.T) {
	fresh := domain.NewDayLog("2025-12-31")

	data, err := fresh.Marshal()
	require.NoError(t, err)
	got, err := domain.UnmarshalDayLog(data)
	require.NoError(t, err)
	assert.Equal(t, fresh, got)

	edited, err := fresh.SetSlot(0, domain.StatusOffDuty, "")
	require.NoError(t, err)
	data, err = edited.Clear().Marshal()
	require.NoError(t, err)
	got, err = domain.UnmarshalDayLog(data)
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
}

// TestUnmarshalDayLog_Corrupt verifies that every malformed snapshot shape
// yields ErrCorruptState rather than a panic or a silently wrong log.
func TestUnmarshalDayLog_Corrupt(t *testing.T) {
	valid, err := domain.NewDayLog("2025-06-01").Marshal()
	require.NoError(t, err)

	cases := map[string][]byte{
		"truncated JSON": valid[:len(valid)/2],
		"not JSON":       []byte("not json at all"),
		"empty":          nil,
		"wrong type":     []byte(`[1,2,3]`),
		"bad date":       []byte(`{"date":"June 1st","slots":[]}`),
		"too few slots":  []byte(`{"date":"2025-06-01","slots":[{"hour":0,"status":"","location":""}]}`),
		"hour mismatch":  []byte(`{"date":"2025-06-01","slots":[` + slotJSON(5, "") + restEmptySlots(1) + `]}`),
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := domain.UnmarshalDayLog(data)
			assert.ErrorIs(t, err, domain.ErrCorruptState)
		})
	}
}

func TestUnmarshalDayLog_UnknownStatusValue(t *testing.T) {
	data := []byte(`{"date":"2025-06-01","slots":[` + slotJSON(0, "warp_drive") + restEmptySlots(1) + `]}`)
	_, err := domain.UnmarshalDayLog(data)
	assert.ErrorIs(t, err, domain.ErrCorruptState)
}

func slotJSON(hour int, status string) string {
	return fmt.Sprintf(`{"hour":%d,"status":%q,"location":""}`, hour, status)
}

// restEmptySlots renders empty slots for hours [from, 24) with leading commas.
func restEmptySlots(from int) string {
	out := ""
	for h := from; h < domain.HoursPerDay; h++ {
		out += "," + slotJSON(h, "")
	}
	return out
}

// ---- export rows -----------------------------------------------------------

func TestDayLog_ExportRows(t *testing.T) {
	log, err := domain.NewDayLog("2025-06-01").SetRange(8, 9, domain.StatusDriving, "I-70 E")
	require.NoError(t, err)

	rows := log.ExportRows()

	require.Len(t, rows, domain.HoursPerDay)
	assert.Equal(t, "08:00", rows[8].StartTime)
	assert.Equal(t, "09:00", rows[8].EndTime)
	assert.Equal(t, "Driving", rows[8].Status)
	assert.Equal(t, "I-70 E", rows[8].Location)
	assert.Empty(t, rows[0].Status, "unlogged hours export with empty status")
}
