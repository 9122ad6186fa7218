package streak

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/meltforce/streakboard/internal/models"
)

// PageLimit is the fixed page size used when walking the remote workout
// listing.
const PageLimit = 100

// Source lists one page of a user's workout history, newest first.
// Pages are addressed by zero-based index; an empty page signals the end
// of history.
type Source interface {
	Page(ctx context.Context, page, limit int) ([]models.Workout, error)
}

// PageError reports a failed page fetch. Partial results are never
// returned alongside it.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("fetch workouts page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error { return e.Err }

// FetchForStreak retrieves the minimum prefix of the listing sufficient to
// compute the weekly streak, rather than the user's entire history.
//
// Pages are fetched sequentially and accumulated. The walk stops when a
// page comes back empty, or as soon as the accumulated workouts no longer
// cover an unbroken run of calendar days ending at today: the listing is
// newest-first, so once a day-level hole exists every older page falls in
// weeks the fetched set already determines.
func FetchForStreak(ctx context.Context, src Source, today time.Time) ([]models.Workout, error) {
	var workouts []models.Workout
	for page := 0; ; page++ {
		batch, err := src.Page(ctx, page, PageLimit)
		if err != nil {
			return nil, &PageError{Page: page, Err: err}
		}
		if len(batch) == 0 {
			return workouts, nil
		}
		workouts = append(workouts, batch...)
		if hasDailyGap(workouts, today) {
			return workouts, nil
		}
	}
}

// hasDailyGap reports whether the distinct workout dates, walked newest
// first, stop matching the sequence today, today-1, today-2, ...
func hasDailyGap(workouts []models.Workout, today time.Time) bool {
	seen := make(map[time.Time]struct{})
	for _, w := range workouts {
		start, ok := w.Start()
		if !ok {
			continue
		}
		seen[dateOf(start)] = struct{}{}
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	day := dateOf(today.UTC())
	for _, d := range dates {
		if !d.Equal(day) {
			return true
		}
		day = day.AddDate(0, 0, -1)
	}
	return false
}

// dateOf truncates a time to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
