package quiz

import (
	"testing"
)

func singleQuestion() Question {
	return Question{
		Number: 1,
		Prompt: "pick one",
		Kind:   KindSingle,
		Options: []Option{
			{Label: "A", Text: "first"},
			{Label: "B", Text: "second"},
		},
		CorrectLabels: []string{"B"},
	}
}

func multiQuestion() Question {
	return Question{
		Number: 2,
		Prompt: "pick two",
		Kind:   KindMulti,
		Options: []Option{
			{Label: "A", Text: "one"},
			{Label: "B", Text: "two"},
			{Label: "C", Text: "three"},
		},
		CorrectLabels: []string{"A", "B"},
	}
}

func TestEvaluateSingle(t *testing.T) {
	question := singleQuestion()

	got := Evaluate(question, Answer{Labels: []string{"B"}})
	if !got.Correct {
		t.Fatalf("correct submission scored incorrect")
	}
	if got.UserDisplay != "B) second" {
		t.Fatalf("user display = %q", got.UserDisplay)
	}
	if got.CorrectDisplay != "B) second" {
		t.Fatalf("correct display = %q", got.CorrectDisplay)
	}

	got = Evaluate(question, Answer{Labels: []string{"A"}})
	if got.Correct {
		t.Fatalf("wrong submission scored correct")
	}
	if got.UserDisplay != "A) first" {
		t.Fatalf("user display = %q", got.UserDisplay)
	}
}

func TestEvaluateSingleUnanswered(t *testing.T) {
	got := Evaluate(singleQuestion(), Answer{})
	if got.Correct {
		t.Fatalf("missing submission scored correct")
	}
	if got.UserDisplay != NotAnswered {
		t.Fatalf("user display = %q, want %q", got.UserDisplay, NotAnswered)
	}
}

func TestEvaluateMultiOrderIndependent(t *testing.T) {
	question := multiQuestion()

	forward := Evaluate(question, Answer{Labels: []string{"A", "B"}})
	backward := Evaluate(question, Answer{Labels: []string{"B", "A"}})
	if !forward.Correct || !backward.Correct {
		t.Fatalf("order-dependent scoring: forward=%v backward=%v", forward.Correct, backward.Correct)
	}
	if backward.UserDisplay != "A) one | B) two" {
		t.Fatalf("user display = %q", backward.UserDisplay)
	}
}

func TestEvaluateMultiExactSetOnly(t *testing.T) {
	question := multiQuestion()

	if Evaluate(question, Answer{Labels: []string{"A"}}).Correct {
		t.Fatalf("missing label scored correct")
	}
	if Evaluate(question, Answer{Labels: []string{"A", "B", "C"}}).Correct {
		t.Fatalf("extra label scored correct")
	}
	if Evaluate(question, Answer{Labels: []string{}}).Correct {
		t.Fatalf("empty set scored correct")
	}
}

func TestEvaluateMappingAllSubFieldsRequired(t *testing.T) {
	question := Question{
		Number: 3,
		Kind:   KindMapping,
		SubFields: []SubField{
			{Name: "first_slot", Candidates: []string{"a", "b"}, Correct: "a"},
			{Name: "second_slot", Candidates: []string{"c", "d"}, Correct: "d"},
			{Name: "third_slot", Candidates: []string{"e", "f"}, Correct: "e"},
		},
	}

	allCorrect := Answer{Fields: map[string]string{"first_slot": "a", "second_slot": "d", "third_slot": "e"}}
	if !Evaluate(question, allCorrect).Correct {
		t.Fatalf("fully correct mapping scored incorrect")
	}

	// Two of three right is still incorrect: no partial credit.
	twoOfThree := Answer{Fields: map[string]string{"first_slot": "a", "second_slot": "d", "third_slot": "f"}}
	if Evaluate(question, twoOfThree).Correct {
		t.Fatalf("partially correct mapping scored correct")
	}

	missingField := Answer{Fields: map[string]string{"first_slot": "a", "second_slot": "d"}}
	if Evaluate(question, missingField).Correct {
		t.Fatalf("mapping with missing sub-field scored correct")
	}
}

func TestEvaluateMappingDisplays(t *testing.T) {
	question := Question{
		Number: 4,
		Kind:   KindMapping,
		SubFields: []SubField{
			{Name: "target_service", Candidates: []string{"one", "two"}, Correct: "one"},
			{Name: "storage_tier", Candidates: []string{"hot", "cold"}, Correct: "cold"},
		},
	}

	got := Evaluate(question, Answer{Fields: map[string]string{"target_service": "two"}})
	if got.Correct {
		t.Fatalf("partial mapping scored correct")
	}
	if got.UserDisplay != "Target Service: two | Storage Tier: Not answered" {
		t.Fatalf("user display = %q", got.UserDisplay)
	}
	if got.CorrectDisplay != "Target Service: one | Storage Tier: cold" {
		t.Fatalf("correct display = %q", got.CorrectDisplay)
	}

	unanswered := Evaluate(question, Answer{})
	if unanswered.UserDisplay != NotAnswered {
		t.Fatalf("unanswered display = %q", unanswered.UserDisplay)
	}
}
