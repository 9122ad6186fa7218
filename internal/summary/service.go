// Package summary composes the Peloton client with the streak core into
// the response both the HTTP endpoint and the MCP tool serve.
package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/meltforce/streakboard/internal/models"
	"github.com/meltforce/streakboard/internal/observability"
	"github.com/meltforce/streakboard/internal/peloton"
	"github.com/meltforce/streakboard/internal/streak"
)

// API is the subset of the Peloton client the service uses.
type API interface {
	Login(ctx context.Context, username, password string) (peloton.Session, error)
	Me(ctx context.Context, s peloton.Session) (string, error)
	Profile(ctx context.Context, s peloton.Session, userID string) (*peloton.Profile, error)
	Workouts(ctx context.Context, s peloton.Session, userID string, page, limit int) ([]models.Workout, error)
}

// Compile-time check: *peloton.Client satisfies API.
var _ API = (*peloton.Client)(nil)

// Summary is the computed activity snapshot for one set of credentials.
type Summary struct {
	TotalActivities int    `json:"total_activities"`
	WeeklyStreak    int    `json:"weekly_streak"`
	LastWorkoutDate string `json:"last_workout_date,omitempty"`
	StreakBar       string `json:"streak_bar"`
}

// Service computes summaries. Everything is request-scoped: credentials,
// session, and fetched workouts live only for the duration of one
// Summarize call.
type Service struct {
	api API
	log *slog.Logger
	now func() time.Time
}

// New creates a Service backed by the given Peloton API.
func New(api API, log *slog.Logger) *Service {
	return &Service{api: api, log: log, now: time.Now}
}

// Summarize logs in with the given credentials, fetches just enough
// workout history, and returns the activity summary. Any auth or fetch
// failure aborts the whole operation; partial data is never summarized.
func (s *Service) Summarize(ctx context.Context, username, password string) (*Summary, error) {
	sess, err := s.api.Login(ctx, username, password)
	if err != nil {
		var authErr *peloton.AuthError
		if errors.As(err, &authErr) {
			observability.RecordSummary(observability.OutcomeAuth)
		} else {
			observability.RecordSummary(observability.OutcomeFetch)
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	userID, err := s.api.Me(ctx, sess)
	if err != nil {
		observability.RecordSummary(observability.OutcomeFetch)
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	profile, err := s.api.Profile(ctx, sess, userID)
	if err != nil {
		observability.RecordSummary(observability.OutcomeFetch)
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	today := s.now().UTC()
	workouts, err := streak.FetchForStreak(ctx, pageSource{api: s.api, sess: sess, userID: userID}, today)
	if err != nil {
		observability.RecordSummary(observability.OutcomeFetch)
		return nil, fmt.Errorf("fetch workouts: %w", err)
	}
	observability.RecordWorkoutsFetched(len(workouts))

	weeks := streak.Weekly(workouts, today)

	observability.RecordSummary(observability.OutcomeOK)
	s.log.Info("summary computed",
		"user_id", userID,
		"workouts_fetched", len(workouts),
		"weekly_streak", weeks,
	)

	return &Summary{
		TotalActivities: profile.TotalWorkouts,
		WeeklyStreak:    weeks,
		LastWorkoutDate: lastWorkoutDate(workouts),
		StreakBar:       streak.Bar(weeks, streak.DefaultBarUnits),
	}, nil
}

// lastWorkoutDate returns the most recent workout's UTC date, or "" when
// no fetched record has a usable timestamp.
func lastWorkoutDate(workouts []models.Workout) string {
	var latest time.Time
	found := false
	for _, w := range workouts {
		start, ok := w.Start()
		if !ok {
			continue
		}
		if !found || start.After(latest) {
			latest = start
			found = true
		}
	}
	if !found {
		return ""
	}
	return latest.Format("2006-01-02")
}

// pageSource adapts the session-and-user-scoped Workouts call to the
// fetcher's page interface.
type pageSource struct {
	api    API
	sess   peloton.Session
	userID string
}

func (p pageSource) Page(ctx context.Context, page, limit int) ([]models.Workout, error) {
	return p.api.Workouts(ctx, p.sess, p.userID, page, limit)
}
