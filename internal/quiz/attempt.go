package quiz

import (
	"math"
	"time"
)

type Mode string

const (
	ModeImmediate Mode = "immediate"
	ModeBatch     Mode = "batch"
)

type StorageMode string

const (
	// StorageInline keeps the full question list in the client-visible
	// session blob.
	StorageInline StorageMode = "inline"
	// StorageSpilled keeps the question list in the server-side cache and
	// only a key client-side.
	StorageSpilled StorageMode = "spilled"
)

// Attempt is one user's run through a selected, shuffled subset of the bank.
// It is an explicit value passed through the orchestrator; the session layer
// is responsible solely for carrying it across requests.
type Attempt struct {
	Mode         Mode              `json:"mode"`
	Questions    []Question        `json:"questions,omitempty"`
	Cursor       int               `json:"cursor"`
	Answers      map[string]Answer `json:"answers"`
	CorrectCount int               `json:"correct_count"`
	StartedAt    time.Time         `json:"started_at"`

	// Storage strategy, decided once at attempt start by the session layer.
	Storage  StorageMode `json:"storage,omitempty"`
	SpillKey string      `json:"spill_key,omitempty"`
}

// Finished reports whether immediate-mode iteration has passed the last
// question. Batch attempts jump the cursor to the end on submission.
func (a *Attempt) Finished() bool {
	return a.Cursor >= len(a.Questions)
}

type Progress struct {
	Current    int     `json:"current"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// ProgressAt reports progress with the given question position shown as
// current (1-based, clamped to the total).
func (a *Attempt) ProgressAt(position int) Progress {
	total := len(a.Questions)
	current := min(position, total)
	progress := Progress{Current: current, Total: total}
	if total > 0 {
		progress.Percentage = roundOneDecimal(float64(current) / float64(total) * 100)
	}
	return progress
}

func roundOneDecimal(value float64) float64 {
	return math.Round(value*10) / 10
}
