package survivalist

import (
	"fmt"
	"strconv"
)

// Milestone is a score threshold with the flavour message shown once the
// score sits between it and the next threshold.
type Milestone struct {
	Threshold int
	Message   string
	Fired     bool
}

// Tracker walks the ordered milestone table. Each entry fires at most once
// per session; a fresh Tracker is built on restart.
type Tracker struct {
	entries []Milestone
	message string
}

// NewTracker validates the table and returns a tracker showing intro until
// the first threshold is reached.
func NewTracker(entries []Milestone, intro string) (*Tracker, error) {
	if len(entries) < 2 {
		return nil, fmt.Errorf("survivalist: milestone table needs at least 2 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Threshold <= entries[i-1].Threshold {
			return nil, fmt.Errorf("survivalist: milestone thresholds must be strictly increasing: %d after %d",
				entries[i].Threshold, entries[i-1].Threshold)
		}
	}

	t := &Tracker{
		entries: make([]Milestone, len(entries)),
		message: intro,
	}
	copy(t.entries, entries)
	for i := range t.entries {
		t.entries[i].Fired = false
	}
	return t, nil
}

// Evaluate updates the displayed message for score and fires the lower
// threshold of the containing interval if it has not fired yet. It returns
// the fired milestone, or nil. Scores below the first threshold or at or
// above the last one leave the message unchanged.
func (t *Tracker) Evaluate(score int) *Milestone {
	for i := 1; i < len(t.entries); i++ {
		lo, hi := &t.entries[i-1], t.entries[i]
		if score < lo.Threshold || score >= hi.Threshold {
			continue
		}
		t.message = lo.Message + " Next at " + strconv.Itoa(hi.Threshold)
		if lo.Fired {
			return nil
		}
		lo.Fired = true
		fired := *lo
		return &fired
	}
	return nil
}

// Message returns the text to display under the playfield.
func (t *Tracker) Message() string {
	return t.message
}

// Fired returns how many milestones have fired this session.
func (t *Tracker) Fired() int {
	n := 0
	for _, m := range t.entries {
		if m.Fired {
			n++
		}
	}
	return n
}
