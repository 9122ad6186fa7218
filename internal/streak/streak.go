// Package streak computes weekly workout streaks from a user's workout
// history and renders them for display.
package streak

import (
	"fmt"
	"strings"
	"time"

	"github.com/meltforce/streakboard/internal/models"
)

// isoWeek identifies a calendar week by ISO 8601 year and week number
// (weeks start Monday; week 1 contains the year's first Thursday).
type isoWeek struct {
	year int
	week int
}

func weekOf(t time.Time) isoWeek {
	y, w := t.ISOWeek()
	return isoWeek{year: y, week: w}
}

// prev steps back exactly one calendar week. ISO years end on week 52 or
// 53, so stepping back from week 1 lands on the true last week of the
// prior year rather than a hardcoded 52.
func (w isoWeek) prev() isoWeek {
	if w.week > 1 {
		return isoWeek{year: w.year, week: w.week - 1}
	}
	return isoWeek{year: w.year - 1, week: lastWeekOfYear(w.year - 1)}
}

// lastWeekOfYear returns 52 or 53. December 28 always falls in the last
// ISO week of its year.
func lastWeekOfYear(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// Weekly returns the number of consecutive ISO calendar weeks, ending at
// (and including) the week of today, that contain at least one workout.
// Records without a valid start time are ignored. An empty set yields 0.
// Deterministic for a given (workouts, today) pair; today is explicit so
// tests can pin the clock.
func Weekly(workouts []models.Workout, today time.Time) int {
	active := make(map[isoWeek]struct{})
	for _, w := range workouts {
		start, ok := w.Start()
		if !ok {
			continue
		}
		active[weekOf(start)] = struct{}{}
	}
	if len(active) == 0 {
		return 0
	}

	streak := 0
	for w := weekOf(today.UTC()); ; w = w.prev() {
		if _, ok := active[w]; !ok {
			return streak
		}
		streak++
	}
}

// DefaultBarUnits is the display width used when the caller has no
// preference.
const DefaultBarUnits = 20

const barMarker = "●"

// Bar renders a streak as one marker per week, capped at maxUnits. A
// streak wider than the bar gets a " +N" suffix with the excess count.
func Bar(weeks, maxUnits int) string {
	if weeks <= maxUnits {
		return strings.Repeat(barMarker, weeks)
	}
	return strings.Repeat(barMarker, maxUnits) + fmt.Sprintf(" +%d", weeks-maxUnits)
}
