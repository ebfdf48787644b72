package httpapi

import (
	"net/url"
	"reflect"
	"testing"

	"certquiz/internal/quiz"
)

func standardFormQuestion(number int) quiz.Question {
	return quiz.Question{
		Number: number,
		Prompt: "pick one",
		Kind:   quiz.KindSingle,
		Options: []quiz.Option{
			{Label: "A", Text: "first"},
			{Label: "B", Text: "second"},
		},
		CorrectLabels: []string{"A"},
	}
}

func mappingFormQuestion(number int) quiz.Question {
	return quiz.Question{
		Number: number,
		Prompt: "match fields",
		Kind:   quiz.KindMapping,
		SubFields: []quiz.SubField{
			{Name: "target_service", Candidates: []string{"one", "two"}, Correct: "one"},
			{Name: "storage_tier", Candidates: []string{"hot", "cold"}, Correct: "cold"},
		},
	}
}

func TestParseSelection(t *testing.T) {
	cases := []struct {
		name string
		form url.Values
		want quiz.Selection
	}{
		{"no type defaults to all", url.Values{}, quiz.SelectAll()},
		{"explicit all", url.Values{"selection_type": {"all"}}, quiz.SelectAll()},
		{
			"range with both bounds",
			url.Values{"selection_type": {"range"}, "start_range": {"5"}, "end_range": {"12"}},
			quiz.SelectRange(5, 12),
		},
		{
			"range with missing bounds fills bank extent",
			url.Values{"selection_type": {"range"}},
			quiz.SelectRange(1, 50),
		},
		{
			"range with garbage bound matches nothing",
			url.Values{"selection_type": {"range"}, "start_range": {"abc"}, "end_range": {"12"}},
			quiz.SelectRange(1, 0),
		},
		{
			"random with count",
			url.Values{"selection_type": {"random"}, "num_random": {"7"}},
			quiz.SelectRandom(7),
		},
		{
			"random without count uses default",
			url.Values{"selection_type": {"random"}},
			quiz.SelectRandom(defaultRandomCount),
		},
		{
			"random with garbage count matches nothing",
			url.Values{"selection_type": {"random"}, "num_random": {"many"}},
			quiz.SelectRandom(0),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseSelection(tc.form, 50); got != tc.want {
				t.Fatalf("parseSelection = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseImmediateAnswerStandard(t *testing.T) {
	question := standardFormQuestion(1)

	got := parseImmediateAnswer(question, url.Values{"answer": {"B", "A", ""}})
	if !reflect.DeepEqual(got.Labels, []string{"B", "A"}) {
		t.Fatalf("labels = %v", got.Labels)
	}

	if got := parseImmediateAnswer(question, url.Values{}); !got.IsEmpty() {
		t.Fatalf("empty form parsed as answered: %+v", got)
	}
}

func TestParseImmediateAnswerMapping(t *testing.T) {
	question := mappingFormQuestion(4)

	got := parseImmediateAnswer(question, url.Values{
		"mapping_target_service": {"two"},
		"mapping_storage_tier":   {""},
		"mapping_unrelated":      {"ignored"},
	})
	want := map[string]string{"target_service": "two"}
	if !reflect.DeepEqual(got.Fields, want) {
		t.Fatalf("fields = %v, want %v", got.Fields, want)
	}
}

func TestParseBatchAnswersNamespacesByNumber(t *testing.T) {
	questions := []quiz.Question{
		standardFormQuestion(1),
		standardFormQuestion(2),
		mappingFormQuestion(3),
		standardFormQuestion(4),
	}

	form := url.Values{
		"question_1":               {"A"},
		"question_2":               {"A", "B"},
		"mapping_3_target_service": {"one"},
		"mapping_3_storage_tier":   {"cold"},
		// question 4 left unanswered
	}

	answers := parseBatchAnswers(questions, form)
	if len(answers) != 3 {
		t.Fatalf("parsed %d answers, want 3: %+v", len(answers), answers)
	}
	if !reflect.DeepEqual(answers["1"].Labels, []string{"A"}) {
		t.Fatalf("question 1 labels = %v", answers["1"].Labels)
	}
	if !reflect.DeepEqual(answers["2"].Labels, []string{"A", "B"}) {
		t.Fatalf("question 2 labels = %v", answers["2"].Labels)
	}
	wantFields := map[string]string{"target_service": "one", "storage_tier": "cold"}
	if !reflect.DeepEqual(answers["3"].Fields, wantFields) {
		t.Fatalf("question 3 fields = %v", answers["3"].Fields)
	}
	if _, present := answers["4"]; present {
		t.Fatalf("skipped question recorded an answer")
	}
}
