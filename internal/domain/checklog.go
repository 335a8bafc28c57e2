package domain

import "time"

// CheckRecord is one logged /check call. The text itself is never stored,
// only its digest and size.
type CheckRecord struct {
	RequestID   string
	ClientID    string
	TextDigest  string
	Runes       int
	Paragraphs  int
	Grammar     int
	Spelling    int
	Undecodable int
	FormatText  bool
	Failed      bool
	Duration    time.Duration
	CreatedAt   time.Time
}

// CheckStats aggregates check records over a time window.
type CheckStats struct {
	Window      time.Duration
	Since       time.Time
	Checks      int
	Failures    int
	Grammar     int
	Spelling    int
	Undecodable int
	AvgDuration time.Duration
}

// Corrections returns the total number of corrections reported.
func (s CheckStats) Corrections() int { return s.Grammar + s.Spelling }
