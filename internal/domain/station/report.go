package station

import (
	"fmt"
	"time"
)

const (
	EventOutpostLevelUp      = "outpost_level_up"
	EventProductionMilestone = "production_milestone"
	EventPeripheralBroken    = "peripheral_broken"
	EventBioGenerationDone   = "biobox_generation_complete"
	EventBioYield            = "biobox_yield"
	EventAccountingSettled   = "accounting_settled"

	EventPeripheralRepaired = "peripheral_repaired"
	EventInstantScrub       = "peripheral_instant_scrub"
	EventBioModeChanged     = "biobox_mode_changed"
)

type Event struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Tick       int64          `json:"tick"`
	Message    string         `json:"message,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
}

type Report struct {
	StationID     string        `json:"station_id"`
	Ticks         int           `json:"ticks"`
	LastAccounted time.Time     `json:"last_accounted"`
	Remaining     time.Duration `json:"remaining"`
	MoreRemaining bool          `json:"more_remaining"`
	Log           []string      `json:"log"`
	Starved       int           `json:"starved"`
	Events        []Event       `json:"events"`
}

// logbook folds repeated notes into one line with a count so a long catch-up
// stays readable.
type logbook struct {
	order  []string
	counts map[string]int
}

func newLogbook() *logbook {
	return &logbook{counts: map[string]int{}}
}

func (l *logbook) add(note string) {
	if note == "" {
		return
	}
	if _, ok := l.counts[note]; !ok {
		l.order = append(l.order, note)
	}
	l.counts[note]++
}

func (l *logbook) lines() []string {
	out := make([]string, 0, len(l.order))
	for _, note := range l.order {
		if n := l.counts[note]; n > 1 {
			out = append(out, fmt.Sprintf("%s (x%d)", note, n))
			continue
		}
		out = append(out, note)
	}
	return out
}
