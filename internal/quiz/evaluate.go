package quiz

import (
	"slices"
	"strings"
)

const (
	// NotAnswered is the literal marker rendered for missing submissions.
	NotAnswered = "Not answered"

	displaySeparator = " | "
)

// Answer mirrors the shape of a question's correct answer: Labels for
// standard questions, Fields for mapping questions. A zero Answer means "not
// answered", which is always a valid (incorrect) submission, never an error.
type Answer struct {
	Labels []string          `json:"labels,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (a Answer) IsEmpty() bool {
	return len(a.Labels) == 0 && len(a.Fields) == 0
}

// Evaluation carries correctness plus display text ready for rendering.
type Evaluation struct {
	Correct        bool   `json:"correct"`
	UserDisplay    string `json:"user_display"`
	CorrectDisplay string `json:"correct_display"`
}

func Evaluate(question Question, answer Answer) Evaluation {
	switch question.Kind {
	case KindMapping:
		return evaluateMapping(question, answer)
	case KindMulti:
		return evaluateMulti(question, answer)
	default:
		return evaluateSingle(question, answer)
	}
}

func evaluateSingle(question Question, answer Answer) Evaluation {
	correctLabel := question.CorrectLabels[0]
	eval := Evaluation{
		UserDisplay:    NotAnswered,
		CorrectDisplay: labelDisplay(question, correctLabel),
	}
	if len(answer.Labels) == 0 || answer.Labels[0] == "" {
		return eval
	}

	submitted := answer.Labels[0]
	eval.Correct = submitted == correctLabel
	eval.UserDisplay = labelDisplay(question, submitted)
	return eval
}

func evaluateMulti(question Question, answer Answer) Evaluation {
	submitted := slices.Clone(answer.Labels)
	slices.Sort(submitted)
	correct := slices.Clone(question.CorrectLabels)
	slices.Sort(correct)

	eval := Evaluation{
		Correct:        len(submitted) > 0 && slices.Equal(submitted, correct),
		UserDisplay:    NotAnswered,
		CorrectDisplay: joinLabelDisplays(question, correct),
	}
	if len(submitted) > 0 {
		eval.UserDisplay = joinLabelDisplays(question, submitted)
	}
	return eval
}

// evaluateMapping requires every sub-field to match; a missing sub-field
// fails the whole question. There is no partial credit.
func evaluateMapping(question Question, answer Answer) Evaluation {
	correct := true
	userParts := make([]string, 0, len(question.SubFields))
	correctParts := make([]string, 0, len(question.SubFields))

	for _, sub := range question.SubFields {
		value := answer.Fields[sub.Name]
		if value != sub.Correct {
			correct = false
		}

		name := subFieldDisplayName(sub.Name)
		userValue := value
		if userValue == "" {
			userValue = NotAnswered
		}
		userParts = append(userParts, name+": "+userValue)
		correctParts = append(correctParts, name+": "+sub.Correct)
	}

	eval := Evaluation{
		Correct:        correct,
		UserDisplay:    strings.Join(userParts, displaySeparator),
		CorrectDisplay: strings.Join(correctParts, displaySeparator),
	}
	if len(answer.Fields) == 0 {
		eval.UserDisplay = NotAnswered
	}
	return eval
}

// labelDisplay renders "B) <text>" for a known label. Labels that are not in
// the option set (malformed submissions) degrade to the bare marker.
func labelDisplay(question Question, label string) string {
	text, ok := question.optionText(label)
	if !ok {
		return NotAnswered
	}
	return label + ") " + text
}

func joinLabelDisplays(question Question, labels []string) string {
	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		if text, ok := question.optionText(label); ok {
			parts = append(parts, label+") "+text)
		}
	}
	if len(parts) == 0 {
		return NotAnswered
	}
	return strings.Join(parts, displaySeparator)
}

// subFieldDisplayName turns "target_service" into "Target Service".
func subFieldDisplayName(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for idx, word := range words {
		runes := []rune(word)
		words[idx] = strings.ToUpper(string(runes[0])) + strings.ToLower(string(runes[1:]))
	}
	return strings.Join(words, " ")
}
