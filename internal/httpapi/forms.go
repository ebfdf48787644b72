package httpapi

import (
	"net/url"
	"strconv"

	"certquiz/internal/quiz"
)

const defaultRandomCount = 10

// parseSelection maps the selection form onto a quiz.Selection. Invalid
// parameters are folded into selections that match nothing; the orchestrator
// then refuses to start, and the user lands back on the selection screen.
func parseSelection(form url.Values, bankSize int) quiz.Selection {
	switch form.Get("selection_type") {
	case string(quiz.SelectionRange):
		start, startErr := formInt(form, "start_range", 1)
		end, endErr := formInt(form, "end_range", bankSize)
		if startErr != nil || endErr != nil {
			return quiz.SelectRange(1, 0)
		}
		return quiz.SelectRange(start, end)
	case string(quiz.SelectionRandom):
		count, err := formInt(form, "num_random", defaultRandomCount)
		if err != nil {
			count = 0
		}
		return quiz.SelectRandom(count)
	default:
		return quiz.SelectAll()
	}
}

func formInt(form url.Values, key string, defaultValue int) (int, error) {
	value := form.Get(key)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}

// parseImmediateAnswer extracts the answer for the current question from the
// immediate-mode form: "answer" (repeated for multi-select) for standard
// questions, "mapping_<sub_field>" per sub-field for mapping questions.
func parseImmediateAnswer(question quiz.Question, form url.Values) quiz.Answer {
	if question.IsMapping() {
		return quiz.Answer{Fields: mappingFields(question, form, "mapping_")}
	}
	return quiz.Answer{Labels: nonEmpty(form["answer"])}
}

// parseBatchAnswers extracts one answer per question from the batch form,
// namespaced by question number: "question_<number>" for standard questions,
// "mapping_<number>_<sub_field>" for mapping questions. Questions the user
// skipped entirely are simply absent from the result.
func parseBatchAnswers(questions []quiz.Question, form url.Values) map[string]quiz.Answer {
	answers := make(map[string]quiz.Answer, len(questions))
	for _, question := range questions {
		if question.IsMapping() {
			fields := mappingFields(question, form, "mapping_"+question.Key()+"_")
			if len(fields) > 0 {
				answers[question.Key()] = quiz.Answer{Fields: fields}
			}
			continue
		}

		labels := nonEmpty(form["question_"+question.Key()])
		if len(labels) > 0 {
			answers[question.Key()] = quiz.Answer{Labels: labels}
		}
	}
	return answers
}

func mappingFields(question quiz.Question, form url.Values, prefix string) map[string]string {
	fields := make(map[string]string, len(question.SubFields))
	for _, sub := range question.SubFields {
		if value := form.Get(prefix + sub.Name); value != "" {
			fields[sub.Name] = value
		}
	}
	return fields
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}
