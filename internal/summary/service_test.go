package summary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/meltforce/streakboard/internal/models"
	"github.com/meltforce/streakboard/internal/peloton"
)

var testNow = time.Date(2026, 8, 19, 12, 0, 0, 0, time.UTC)

// fakeAPI is a canned Peloton backend.
type fakeAPI struct {
	loginErr error
	userID   string
	profile  *peloton.Profile
	pages    [][]models.Workout
}

func (f *fakeAPI) Login(_ context.Context, _, _ string) (peloton.Session, error) {
	if f.loginErr != nil {
		return peloton.Session{}, f.loginErr
	}
	return peloton.Session{}, nil
}

func (f *fakeAPI) Me(_ context.Context, _ peloton.Session) (string, error) {
	return f.userID, nil
}

func (f *fakeAPI) Profile(_ context.Context, _ peloton.Session, _ string) (*peloton.Profile, error) {
	return f.profile, nil
}

func (f *fakeAPI) Workouts(_ context.Context, _ peloton.Session, _ string, page, _ int) ([]models.Workout, error) {
	if page >= len(f.pages) {
		return nil, nil
	}
	return f.pages[page], nil
}

func workoutAt(t time.Time) models.Workout {
	unix := t.Unix()
	return models.Workout{StartTime: &unix}
}

func testService(api API) *Service {
	svc := New(api, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return testNow }
	return svc
}

// TestSummarize verifies the full composition: profile count, two-week
// streak, bar rendering, and last workout date.
func TestSummarize(t *testing.T) {
	api := &fakeAPI{
		userID:  "user-123",
		profile: &peloton.Profile{TotalWorkouts: 287},
		pages: [][]models.Workout{{
			workoutAt(testNow.Add(-time.Hour)),
			workoutAt(testNow.AddDate(0, 0, -7)),
		}},
	}

	got, err := testService(api).Summarize(context.Background(), "rider", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalActivities != 287 {
		t.Errorf("total_activities = %d, want 287", got.TotalActivities)
	}
	if got.WeeklyStreak != 2 {
		t.Errorf("weekly_streak = %d, want 2", got.WeeklyStreak)
	}
	if got.StreakBar != "●●" {
		t.Errorf("streak_bar = %q, want %q", got.StreakBar, "●●")
	}
	if got.LastWorkoutDate != "2026-08-19" {
		t.Errorf("last_workout_date = %q, want 2026-08-19", got.LastWorkoutDate)
	}
}

// TestSummarizeEmptyHistory verifies that zero workouts produce streak 0,
// an empty bar, and no last workout date rather than an error.
func TestSummarizeEmptyHistory(t *testing.T) {
	api := &fakeAPI{
		userID:  "user-123",
		profile: &peloton.Profile{TotalWorkouts: 0},
	}

	got, err := testService(api).Summarize(context.Background(), "rider", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.WeeklyStreak != 0 {
		t.Errorf("weekly_streak = %d, want 0", got.WeeklyStreak)
	}
	if got.StreakBar != "" {
		t.Errorf("streak_bar = %q, want empty", got.StreakBar)
	}
	if got.LastWorkoutDate != "" {
		t.Errorf("last_workout_date = %q, want empty", got.LastWorkoutDate)
	}
}

// TestSummarizeAuthFailure verifies that rejected credentials abort the
// operation with the auth error preserved in the chain.
func TestSummarizeAuthFailure(t *testing.T) {
	api := &fakeAPI{loginErr: &peloton.AuthError{Status: 401}}

	_, err := testService(api).Summarize(context.Background(), "rider", "wrong")
	var authErr *peloton.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %v, want *peloton.AuthError in chain", err)
	}
}

// TestSummarizeLongStreakOverflow verifies bar overflow for a streak wider
// than the default display.
func TestSummarizeLongStreakOverflow(t *testing.T) {
	// 25 consecutive weeks, one workout each; daily gaps make the fetch
	// terminate after page 0.
	var page []models.Workout
	for i := 0; i < 25; i++ {
		page = append(page, workoutAt(testNow.AddDate(0, 0, -7*i)))
	}
	api := &fakeAPI{
		userID:  "user-123",
		profile: &peloton.Profile{TotalWorkouts: 400},
		pages:   [][]models.Workout{page},
	}

	got, err := testService(api).Summarize(context.Background(), "rider", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.WeeklyStreak != 25 {
		t.Errorf("weekly_streak = %d, want 25", got.WeeklyStreak)
	}
	want := "●●●●●●●●●●●●●●●●●●●● +5"
	if got.StreakBar != want {
		t.Errorf("streak_bar = %q, want %q", got.StreakBar, want)
	}
}
