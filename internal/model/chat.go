package model

import "time"

// ChatEntry is one logged dialogue turn.
type ChatEntry struct {
	ID         int64
	Username   string
	Query      string
	Intent     string
	Confidence float64
	Timestamp  time.Time
}
