// Package scheduling provides the time arithmetic shared by conflict detection
// and checkout: parsing "HH:MM" clock strings, normalising a shift onto a
// comparable minute timeline, and interval overlap checks.
package scheduling

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/rotaworks/shift_roster_app/internal/apperrors"
)

const minutesPerDay = 24 * 60

var clockRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseClock converts an "H:MM" or "HH:MM" string into minutes past midnight.
// Hour must be in [0,23] and minute in [0,59].
func ParseClock(hm string) (int, error) {
	m := clockRe.FindStringSubmatch(hm)
	if m == nil {
		return 0, fmt.Errorf("%w: time %q is not in HH:MM format", apperrors.ErrValidation, hm)
	}
	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	if h > 23 || mi > 59 {
		return 0, fmt.Errorf("%w: time %q is out of range", apperrors.ErrValidation, hm)
	}
	return h*60 + mi, nil
}

// ShiftWindow is a shift normalised onto a single comparable timeline: the ISO
// day it starts on plus start/end offsets in minutes from that day's midnight.
// An overnight shift carries an EndMin greater than 1440.
type ShiftWindow struct {
	Day      string // YYYY-MM-DD
	StartMin int
	EndMin   int
}

// NormalizeShift builds a ShiftWindow from a calendar date and HH:MM boundary
// strings. A shift whose end does not come after its start is treated as
// crossing midnight and its end is pushed out by 24 hours, so 22:00-06:00
// becomes [1320, 1800).
func NormalizeShift(date time.Time, startTime, endTime string) (ShiftWindow, error) {
	if date.IsZero() {
		return ShiftWindow{}, fmt.Errorf("%w: valid shift date required", apperrors.ErrValidation)
	}
	start, err := ParseClock(startTime)
	if err != nil {
		return ShiftWindow{}, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return ShiftWindow{}, err
	}
	if end <= start {
		end += minutesPerDay
	}
	return ShiftWindow{
		Day:      date.Format("2006-01-02"),
		StartMin: start,
		EndMin:   end,
	}, nil
}

// Duration returns the length of the window in minutes.
func (w ShiftWindow) Duration() int {
	return w.EndMin - w.StartMin
}

// Overlaps reports whether two windows on the same day intersect. Intervals
// are half-open at minute granularity, so a shift ending 17:00 does not
// overlap one starting 17:00. A window that wraps past midnight also occupies
// the early minutes of the following morning, so each window is additionally
// compared against the other shifted by a full day: 22:00-06:00 conflicts
// with a same-night 05:00-09:00.
func (w ShiftWindow) Overlaps(other ShiftWindow) bool {
	if w.Day != other.Day {
		return false
	}
	return intersects(w.StartMin, w.EndMin, other.StartMin, other.EndMin) ||
		intersects(w.StartMin+minutesPerDay, w.EndMin+minutesPerDay, other.StartMin, other.EndMin) ||
		intersects(w.StartMin, w.EndMin, other.StartMin+minutesPerDay, other.EndMin+minutesPerDay)
}

func intersects(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}
