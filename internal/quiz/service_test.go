package quiz

import (
	"testing"

	"github.com/pkg/errors"
)

// correctAnswerFor builds a correct submission for a (possibly shuffled)
// question by reading its own correct-answer data.
func correctAnswerFor(question Question) Answer {
	if question.IsMapping() {
		fields := make(map[string]string, len(question.SubFields))
		for _, sub := range question.SubFields {
			fields[sub.Name] = sub.Correct
		}
		return Answer{Fields: fields}
	}
	return Answer{Labels: append([]string(nil), question.CorrectLabels...)}
}

// wrongAnswerFor picks a label outside the correct set.
func wrongAnswerFor(t *testing.T, question Question) Answer {
	t.Helper()
	correct := make(map[string]bool, len(question.CorrectLabels))
	for _, label := range question.CorrectLabels {
		correct[label] = true
	}
	for _, option := range question.Options {
		if !correct[option.Label] {
			return Answer{Labels: []string{option.Label}}
		}
	}
	t.Fatalf("question %d has no incorrect option", question.Number)
	return Answer{}
}

func TestStartAttemptRefusesEmptyBank(t *testing.T) {
	service := NewService(EmptyBank(), DefaultReadinessPolicy())
	if _, err := service.StartAttempt(ModeImmediate, SelectAll()); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("error = %v, want ErrNoQuestions", err)
	}
}

func TestStartAttemptRefusesEmptySelection(t *testing.T) {
	service := NewService(numberedBank(t, 50), DefaultReadinessPolicy())
	if _, err := service.StartAttempt(ModeImmediate, SelectRange(1000, 2000)); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("error = %v, want ErrNoQuestions", err)
	}
}

func TestStartAttemptShufflesEveryQuestion(t *testing.T) {
	service := NewService(numberedBank(t, 10), DefaultReadinessPolicy())
	attempt, err := service.StartAttempt(ModeBatch, SelectAll())
	if err != nil {
		t.Fatalf("StartAttempt failed: %v", err)
	}
	if attempt.Mode != ModeBatch {
		t.Fatalf("mode = %q", attempt.Mode)
	}
	if len(attempt.Questions) != 10 {
		t.Fatalf("attempt has %d questions, want 10", len(attempt.Questions))
	}
	for _, question := range attempt.Questions {
		if len(question.CorrectLabels) != 1 {
			t.Fatalf("question %d lost its correct label: %+v", question.Number, question)
		}
	}
	if attempt.Storage != "" || attempt.SpillKey != "" {
		t.Fatalf("storage decided prematurely: %q %q", attempt.Storage, attempt.SpillKey)
	}
}

func TestImmediateModeFullRun(t *testing.T) {
	service := NewService(numberedBank(t, 3), DefaultReadinessPolicy())
	attempt, err := service.StartAttempt(ModeImmediate, SelectAll())
	if err != nil {
		t.Fatalf("StartAttempt failed: %v", err)
	}

	// Question 1 correct, question 2 wrong, question 3 correct.
	answersByStep := []func(Question) Answer{
		correctAnswerFor,
		func(q Question) Answer { return wrongAnswerFor(t, q) },
		correctAnswerFor,
	}
	wantCorrect := []bool{true, false, true}

	for step, buildAnswer := range answersByStep {
		question, progress, ok := service.CurrentQuestion(attempt)
		if !ok {
			t.Fatalf("step %d: attempt finished early", step)
		}
		if progress.Current != step+1 || progress.Total != 3 {
			t.Fatalf("step %d: progress = %+v", step, progress)
		}

		feedback, err := service.SubmitImmediate(attempt, buildAnswer(question))
		if err != nil {
			t.Fatalf("step %d: SubmitImmediate failed: %v", step, err)
		}
		if feedback.Evaluation.Correct != wantCorrect[step] {
			t.Fatalf("step %d: correct = %v, want %v", step, feedback.Evaluation.Correct, wantCorrect[step])
		}
	}

	if !attempt.Finished() {
		t.Fatalf("attempt not finished after last question")
	}
	if _, err := service.SubmitImmediate(attempt, Answer{}); !errors.Is(err, ErrAttemptFinished) {
		t.Fatalf("error = %v, want ErrAttemptFinished", err)
	}

	report := service.Report(attempt)
	if report.CorrectCount != 2 || report.TotalQuestions != 3 {
		t.Fatalf("report = %d/%d, want 2/3", report.CorrectCount, report.TotalQuestions)
	}
	if report.ScorePercentage != 66.7 {
		t.Fatalf("score = %v, want 66.7", report.ScorePercentage)
	}
	if report.ReadinessLabel != StudyLabel {
		t.Fatalf("label = %q, want %q", report.ReadinessLabel, StudyLabel)
	}
}

func TestBatchModeAggregatesWithOmissions(t *testing.T) {
	service := NewService(numberedBank(t, 4), DefaultReadinessPolicy())
	attempt, err := service.StartAttempt(ModeBatch, SelectAll())
	if err != nil {
		t.Fatalf("StartAttempt failed: %v", err)
	}

	answers := make(map[string]Answer)
	answers[attempt.Questions[0].Key()] = correctAnswerFor(attempt.Questions[0])
	answers[attempt.Questions[1].Key()] = wrongAnswerFor(t, attempt.Questions[1])
	answers[attempt.Questions[2].Key()] = correctAnswerFor(attempt.Questions[2])
	// Question 4 left unanswered.

	service.SubmitBatch(attempt, answers)

	if attempt.CorrectCount != 2 {
		t.Fatalf("correct count = %d, want 2", attempt.CorrectCount)
	}
	if !attempt.Finished() {
		t.Fatalf("batch attempt not finished after submission")
	}

	report := service.Report(attempt)
	if report.ScorePercentage != 50 {
		t.Fatalf("score = %v, want 50", report.ScorePercentage)
	}
	if report.Details[3].UserDisplay != NotAnswered {
		t.Fatalf("unanswered detail display = %q", report.Details[3].UserDisplay)
	}
}

func TestReportSevenOfNineIsAlmostReady(t *testing.T) {
	service := NewService(numberedBank(t, 9), DefaultReadinessPolicy())
	attempt, err := service.StartAttempt(ModeImmediate, SelectAll())
	if err != nil {
		t.Fatalf("StartAttempt failed: %v", err)
	}

	for step := 0; step < 9; step++ {
		question, _, _ := service.CurrentQuestion(attempt)
		answer := correctAnswerFor(question)
		if step >= 7 {
			answer = wrongAnswerFor(t, question)
		}
		if _, err := service.SubmitImmediate(attempt, answer); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
	}

	report := service.Report(attempt)
	if report.ScorePercentage != 77.8 {
		t.Fatalf("score = %v, want 77.8", report.ScorePercentage)
	}
	if report.ReadinessLabel != AlmostLabel {
		t.Fatalf("label = %q, want %q", report.ReadinessLabel, AlmostLabel)
	}
}
