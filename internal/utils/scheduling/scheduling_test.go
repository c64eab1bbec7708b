package scheduling_test

import (
	"testing"
	"time"

	"github.com/rotaworks/shift_roster_app/internal/apperrors"
	"github.com/rotaworks/shift_roster_app/internal/utils/scheduling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shiftDate = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func TestParseClock(t *testing.T) {
	testCases := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"9:05", 545, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"1200", 0, true},
		{"12:0", 0, true},
		{"", 0, true},
		{"ab:cd", 0, true},
	}

	for _, tc := range testCases {
		got, err := scheduling.ParseClock(tc.input)
		if tc.wantErr {
			assert.ErrorIs(t, err, apperrors.ErrValidation, "input %q", tc.input)
		} else {
			require.NoError(t, err, "input %q", tc.input)
			assert.Equal(t, tc.want, got, "input %q", tc.input)
		}
	}
}

func TestNormalizeShift_SameDay(t *testing.T) {
	w, err := scheduling.NormalizeShift(shiftDate, "09:00", "17:00")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-14", w.Day)
	assert.Equal(t, 540, w.StartMin)
	assert.Equal(t, 1020, w.EndMin)
	assert.Equal(t, 480, w.Duration())
}

func TestNormalizeShift_Overnight(t *testing.T) {
	// end <= start means the shift crosses midnight: end gets +1440 and the
	// interval length is (1440 - start) + end.
	w, err := scheduling.NormalizeShift(shiftDate, "22:00", "06:00")
	require.NoError(t, err)

	assert.Equal(t, 1320, w.StartMin)
	assert.Equal(t, 360+1440, w.EndMin)
	assert.Equal(t, (1440-1320)+360, w.Duration())
}

func TestNormalizeShift_EqualBoundsTreatedAsOvernight(t *testing.T) {
	w, err := scheduling.NormalizeShift(shiftDate, "10:00", "10:00")
	require.NoError(t, err)

	assert.Equal(t, 600, w.StartMin)
	assert.Equal(t, 600+1440, w.EndMin)
	assert.Equal(t, 1440, w.Duration())
}

func TestNormalizeShift_InvalidInput(t *testing.T) {
	_, err := scheduling.NormalizeShift(shiftDate, "25:00", "17:00")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = scheduling.NormalizeShift(shiftDate, "09:00", "bad")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = scheduling.NormalizeShift(time.Time{}, "09:00", "17:00")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestOverlaps(t *testing.T) {
	mustWindow := func(start, end string) scheduling.ShiftWindow {
		w, err := scheduling.NormalizeShift(shiftDate, start, end)
		require.NoError(t, err)
		return w
	}

	testCases := []struct {
		name string
		a, b scheduling.ShiftWindow
		want bool
	}{
		{"partial overlap", mustWindow("09:00", "17:00"), mustWindow("16:00", "20:00"), true},
		{"boundary touch is not overlap", mustWindow("09:00", "17:00"), mustWindow("17:00", "20:00"), false},
		{"contained", mustWindow("09:00", "17:00"), mustWindow("10:00", "11:00"), true},
		{"disjoint", mustWindow("09:00", "12:00"), mustWindow("13:00", "15:00"), false},
		{"overnight vs same-night early morning", mustWindow("22:00", "06:00"), mustWindow("05:00", "09:00"), true},
		{"overnight vs late evening", mustWindow("22:00", "06:00"), mustWindow("23:00", "23:30"), true},
		{"overnight tail clear of later morning start", mustWindow("22:00", "06:00"), mustWindow("06:00", "09:00"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			// overlap is symmetric
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestOverlaps_DifferentDays(t *testing.T) {
	a, err := scheduling.NormalizeShift(shiftDate, "09:00", "17:00")
	require.NoError(t, err)
	b, err := scheduling.NormalizeShift(shiftDate.AddDate(0, 0, 1), "09:00", "17:00")
	require.NoError(t, err)

	assert.False(t, a.Overlaps(b))
}

func TestNormalizeShift_NoAdjustmentForForwardShifts(t *testing.T) {
	// end > start must never trigger the overnight adjustment
	for _, tc := range [][2]string{{"00:00", "00:01"}, {"08:30", "16:45"}, {"23:00", "23:59"}} {
		w, err := scheduling.NormalizeShift(shiftDate, tc[0], tc[1])
		require.NoError(t, err)
		assert.Less(t, w.EndMin, 1440+1, "shift %v should stay within the day", tc)
		assert.Greater(t, w.EndMin, w.StartMin)
	}
}
