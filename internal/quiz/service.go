package quiz

import (
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrNoQuestions means the selection matched nothing (or the bank is
	// empty); the caller sends the user back to selection.
	ErrNoQuestions = errors.New("no questions selected")
	// ErrAttemptFinished means a submission arrived after the last question.
	ErrAttemptFinished = errors.New("attempt already finished")
)

// Service orchestrates the attempt lifecycle: selection, shuffle, iteration,
// scoring. It holds no per-user state; attempts are passed in explicitly.
type Service struct {
	bank   *Bank
	policy ReadinessPolicy
}

func NewService(bank *Bank, policy ReadinessPolicy) *Service {
	if bank == nil {
		bank = EmptyBank()
	}
	return &Service{bank: bank, policy: policy}
}

func (s *Service) TotalQuestions() int { return s.bank.Len() }

// StartAttempt selects questions, shuffles each one's options, and builds a
// fresh attempt. Storage strategy is left for the session layer to decide.
func (s *Service) StartAttempt(mode Mode, selection Selection) (*Attempt, error) {
	if s.bank.Len() == 0 {
		return nil, errors.Wrap(ErrNoQuestions, "question bank is empty")
	}

	selected := s.bank.Select(selection)
	if len(selected) == 0 {
		return nil, ErrNoQuestions
	}

	questions := make([]Question, 0, len(selected))
	for _, question := range selected {
		questions = append(questions, ShuffleOptions(question))
	}

	if mode != ModeBatch {
		mode = ModeImmediate
	}
	return &Attempt{
		Mode:      mode,
		Questions: questions,
		Answers:   make(map[string]Answer),
		StartedAt: time.Now().UTC(),
	}, nil
}

// CurrentQuestion returns the question at the cursor together with progress
// for rendering. ok is false once the attempt is finished.
func (s *Service) CurrentQuestion(attempt *Attempt) (question Question, progress Progress, ok bool) {
	if attempt.Finished() {
		return Question{}, Progress{}, false
	}
	return attempt.Questions[attempt.Cursor], attempt.ProgressAt(attempt.Cursor + 1), true
}

// Feedback is the immediate-mode response after one submission.
type Feedback struct {
	Question   Question   `json:"question"`
	Evaluation Evaluation `json:"evaluation"`
	Progress   Progress   `json:"progress"`
	Finished   bool       `json:"finished"`
}

// SubmitImmediate evaluates the question at the cursor, records the answer,
// and advances. A missing submission is recorded as "not answered".
func (s *Service) SubmitImmediate(attempt *Attempt, answer Answer) (Feedback, error) {
	if attempt.Finished() {
		return Feedback{}, ErrAttemptFinished
	}

	question := attempt.Questions[attempt.Cursor]
	evaluation := Evaluate(question, answer)

	attempt.Answers[question.Key()] = answer
	if evaluation.Correct {
		attempt.CorrectCount++
	}
	attempt.Cursor++

	return Feedback{
		Question:   question,
		Evaluation: evaluation,
		Progress:   attempt.ProgressAt(attempt.Cursor),
		Finished:   attempt.Finished(),
	}, nil
}

// SubmitBatch evaluates one answer per question (or omission) in attempt
// order and completes the attempt in a single step.
func (s *Service) SubmitBatch(attempt *Attempt, answers map[string]Answer) {
	if answers == nil {
		answers = make(map[string]Answer)
	}

	correctCount := 0
	for _, question := range attempt.Questions {
		if Evaluate(question, answers[question.Key()]).Correct {
			correctCount++
		}
	}

	attempt.Answers = answers
	attempt.CorrectCount = correctCount
	attempt.Cursor = len(attempt.Questions)
}

// Report aggregates the attempt into the final results structure.
func (s *Service) Report(attempt *Attempt) Report {
	details := make([]QuestionDetail, 0, len(attempt.Questions))
	for _, question := range attempt.Questions {
		evaluation := Evaluate(question, attempt.Answers[question.Key()])
		details = append(details, QuestionDetail{
			Question:       question,
			UserDisplay:    evaluation.UserDisplay,
			CorrectDisplay: evaluation.CorrectDisplay,
			Correct:        evaluation.Correct,
		})
	}

	score := ScorePercentage(attempt.CorrectCount, len(attempt.Questions))
	label, levelClass := s.policy.Level(score)
	return Report{
		CorrectCount:    attempt.CorrectCount,
		TotalQuestions:  len(attempt.Questions),
		ScorePercentage: score,
		ReadinessLabel:  label,
		LevelClass:      levelClass,
		Details:         details,
	}
}
