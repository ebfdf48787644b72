package quiz

import (
	"strconv"

	"github.com/pkg/errors"
)

type QuestionKind string

const (
	// KindSingle is a standard question with exactly one correct label.
	KindSingle QuestionKind = "single"
	// KindMulti is a standard question whose correct answer is a set of labels.
	KindMulti QuestionKind = "multi"
	// KindMapping is a question made of independent sub-fields, each with its
	// own candidate list and correct value.
	KindMapping QuestionKind = "mapping"
)

type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type SubField struct {
	Name       string   `json:"name"`
	Candidates []string `json:"candidates"`
	Correct    string   `json:"correct"`
}

// Question is a tagged variant: Kind is decided once at load time so callers
// never re-inspect the shape of the answer data. Standard questions carry
// Options/CorrectLabels, mapping questions carry SubFields.
type Question struct {
	Number        int          `json:"number"`
	Prompt        string       `json:"prompt"`
	Explanation   string       `json:"explanation,omitempty"`
	Kind          QuestionKind `json:"kind"`
	Options       []Option     `json:"options,omitempty"`
	CorrectLabels []string     `json:"correct_labels,omitempty"`
	SubFields     []SubField   `json:"sub_fields,omitempty"`
}

func (q Question) IsMapping() bool { return q.Kind == KindMapping }

func (q Question) IsMulti() bool { return q.Kind == KindMulti }

// Key is the identity answers are recorded under; question numbers are unique
// within a bank, enforced by NewBank.
func (q Question) Key() string { return strconv.Itoa(q.Number) }

func (q Question) optionText(label string) (string, bool) {
	for _, option := range q.Options {
		if option.Label == label {
			return option.Text, true
		}
	}
	return "", false
}

// Bank is the immutable, ordered question collection loaded once at startup.
type Bank struct {
	questions []Question
	byNumber  map[int]Question
}

func NewBank(questions []Question) (*Bank, error) {
	byNumber := make(map[int]Question, len(questions))
	for _, question := range questions {
		if err := validateQuestion(question); err != nil {
			return nil, err
		}
		if _, exists := byNumber[question.Number]; exists {
			return nil, errors.Errorf("duplicate question number %d", question.Number)
		}
		byNumber[question.Number] = question
	}
	return &Bank{questions: questions, byNumber: byNumber}, nil
}

// EmptyBank is what the server runs with when the question source is missing
// or malformed: every attempt start is refused, but the process stays up.
func EmptyBank() *Bank {
	return &Bank{byNumber: make(map[int]Question)}
}

func (b *Bank) Len() int { return len(b.questions) }

func (b *Bank) All() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

func validateQuestion(question Question) error {
	if question.Number <= 0 {
		return errors.Errorf("question number must be positive, got %d", question.Number)
	}

	switch question.Kind {
	case KindMapping:
		if len(question.SubFields) == 0 {
			return errors.Errorf("question %d: mapping question has no sub-fields", question.Number)
		}
		if len(question.Options) > 0 || len(question.CorrectLabels) > 0 {
			return errors.Errorf("question %d: mapping question carries standard options", question.Number)
		}
		for _, sub := range question.SubFields {
			if sub.Name == "" || len(sub.Candidates) == 0 || sub.Correct == "" {
				return errors.Errorf("question %d: sub-field %q is incomplete", question.Number, sub.Name)
			}
		}
	case KindSingle, KindMulti:
		if len(question.Options) == 0 {
			return errors.Errorf("question %d: no options", question.Number)
		}
		if len(question.CorrectLabels) == 0 {
			return errors.Errorf("question %d: no correct answer", question.Number)
		}
		if question.Kind == KindSingle && len(question.CorrectLabels) != 1 {
			return errors.Errorf("question %d: single-choice question with %d correct labels", question.Number, len(question.CorrectLabels))
		}
		for _, label := range question.CorrectLabels {
			if _, ok := question.optionText(label); !ok {
				return errors.Errorf("question %d: correct label %q is not an option", question.Number, label)
			}
		}
	default:
		return errors.Errorf("question %d: unknown kind %q", question.Number, question.Kind)
	}
	return nil
}
