package models

import "time"

// Workout is one record from the remote workout listing. The API returns
// many more fields; only the start timestamp matters here, everything else
// is passed through untouched.
type Workout struct {
	ID        string `json:"id,omitempty"`
	StartTime *int64 `json:"start_time,omitempty"`
}

// Start returns the workout start as a UTC time. ok is false when the
// record carried no usable integer start_time; such records are skipped by
// the streak calculator.
func (w Workout) Start() (t time.Time, ok bool) {
	if w.StartTime == nil {
		return time.Time{}, false
	}
	return time.Unix(*w.StartTime, 0).UTC(), true
}
