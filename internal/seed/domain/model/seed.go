package model

import "time"

// SeedReport summarizes one seeding run
type SeedReport struct {
	RunID      string    `json:"runId"`
	Model      string    `json:"model"`
	Collection string    `json:"collection"`
	Database   string    `json:"database"`
	Dropped    bool      `json:"dropped"`
	Inserted   int       `json:"inserted"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Duration returns how long the run took
func (r *SeedReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// SeedEvent is a journal record of a seeding step
type SeedEvent struct {
	ID         string    `json:"id,omitempty"`
	Type       string    `json:"type"`
	RunID      string    `json:"runId"`
	Model      string    `json:"model"`
	Collection string    `json:"collection"`
	Database   string    `json:"database,omitempty"`
	Dropped    bool      `json:"dropped"`
	Inserted   int       `json:"inserted"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
