// Package peloton is a minimal client for the Peloton REST API: login,
// identity, profile, and the paginated workout listing.
package peloton

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/streakboard/internal/models"
)

// DefaultBaseURL is the production Peloton API host.
const DefaultBaseURL = "https://api.onepeloton.com"

// The login endpoint rejects requests that don't look like they came from
// the web client.
var browserHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/115.0.0.0 Safari/537.36",
	"Accept":          "application/json, text/plain, */*",
	"Accept-Language": "en-US,en;q=0.9",
	"Origin":          "https://www.onepeloton.com",
	"Referer":         "https://www.onepeloton.com/",
}

// Session is the cookie set issued by a successful login. It is an
// immutable value passed explicitly on each authenticated call; the client
// itself holds no per-user state.
type Session struct {
	cookies []*http.Cookie
}

func (s Session) apply(req *http.Request) {
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
}

// AuthError means the remote login endpoint rejected the credentials.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("peloton: login rejected (status %d)", e.Status)
}

// Client calls the Peloton API. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client targeting the given base URL. An empty baseURL
// selects DefaultBaseURL; a zero timeout defaults to 30 seconds.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Login exchanges credentials for a Session. Any non-200 response is
// treated as rejected credentials.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	body, err := json.Marshal(map[string]string{
		"username_or_email": username,
		"password":          password,
	})
	if err != nil {
		return Session{}, fmt.Errorf("peloton: marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return Session{}, fmt.Errorf("peloton: create login request: %w", err)
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("peloton: login: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return Session{}, &AuthError{Status: resp.StatusCode}
	}

	return Session{cookies: resp.Cookies()}, nil
}

// Me returns the authenticated user's ID.
func (c *Client) Me(ctx context.Context, s Session) (string, error) {
	body, err := c.get(ctx, s, "/api/me", nil)
	if err != nil {
		return "", err
	}

	var me struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &me); err != nil {
		return "", fmt.Errorf("peloton: decode /api/me: %w", err)
	}
	if me.ID == "" {
		return "", fmt.Errorf("peloton: /api/me response missing id")
	}
	return me.ID, nil
}

// Profile is the slice of the user profile the summary needs.
type Profile struct {
	TotalWorkouts int `json:"total_workouts"`
}

// Profile fetches the user's profile. A response without total_workouts is
// an error rather than a zero count.
func (c *Client) Profile(ctx context.Context, s Session, userID string) (*Profile, error) {
	body, err := c.get(ctx, s, "/api/user/"+userID, nil)
	if err != nil {
		return nil, err
	}

	var raw struct {
		TotalWorkouts *int `json:"total_workouts"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("peloton: decode profile: %w", err)
	}
	if raw.TotalWorkouts == nil {
		return nil, fmt.Errorf("peloton: profile response missing total_workouts")
	}
	return &Profile{TotalWorkouts: *raw.TotalWorkouts}, nil
}

// Workouts fetches one page of the user's workout listing, newest first.
// Records that fail to decode are kept without a start time so the caller
// can skip them; an empty data array signals the end of history.
func (c *Client) Workouts(ctx context.Context, s Session, userID string, page, limit int) ([]models.Workout, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("page", strconv.Itoa(page))

	body, err := c.get(ctx, s, "/api/user/"+userID+"/workouts", params)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("peloton: decode workouts page %d: %w", page, err)
	}

	workouts := make([]models.Workout, 0, len(raw.Data))
	for _, rec := range raw.Data {
		var w models.Workout
		if err := json.Unmarshal(rec, &w); err != nil {
			// Malformed record (e.g. non-integer start_time); keep the
			// slot, drop the timestamp.
			w = models.Workout{}
		}
		workouts = append(workouts, w)
	}
	return workouts, nil
}

func (c *Client) get(ctx context.Context, s Session, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("peloton: create request: %w", err)
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
	s.apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("peloton: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("peloton: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("peloton: %s returned %d", path, resp.StatusCode)
	}

	return body, nil
}
