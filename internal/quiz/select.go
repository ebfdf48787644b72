package quiz

import (
	"math/rand"
)

type SelectionType string

const (
	SelectionAll    SelectionType = "all"
	SelectionRange  SelectionType = "range"
	SelectionRandom SelectionType = "random"
)

// Selection describes which slice of the bank an attempt should cover.
// Invalid parameters never error; they just yield an empty selection, and the
// orchestrator refuses to start an attempt with zero questions.
type Selection struct {
	Type SelectionType

	// Range bounds on question numbers, inclusive.
	Start int
	End   int

	// Random sample size; capped at the bank size.
	Count int
}

func SelectAll() Selection { return Selection{Type: SelectionAll} }

func SelectRange(start, end int) Selection {
	return Selection{Type: SelectionRange, Start: start, End: end}
}

func SelectRandom(count int) Selection {
	return Selection{Type: SelectionRandom, Count: count}
}

// Select returns the subset of the bank the selection describes, in bank
// order for all/range and uniformly without replacement for random.
func (b *Bank) Select(selection Selection) []Question {
	switch selection.Type {
	case SelectionRange:
		var out []Question
		for _, question := range b.questions {
			if question.Number >= selection.Start && question.Number <= selection.End {
				out = append(out, question)
			}
		}
		return out
	case SelectionRandom:
		if selection.Count <= 0 {
			return nil
		}
		count := min(selection.Count, len(b.questions))
		out := make([]Question, 0, count)
		for _, idx := range rand.Perm(len(b.questions))[:count] {
			out = append(out, b.questions[idx])
		}
		return out
	default:
		return b.All()
	}
}
