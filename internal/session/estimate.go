package session

import (
	json "github.com/goccy/go-json"

	"certquiz/internal/quiz"
)

// EstimateSize approximates the serialized session size for a question list:
// one representative question wrapped with the small progress fields,
// multiplied by the count. It does not need to be exact, only a stable
// predictor of whether the blob fits under the cookie ceiling.
func EstimateSize(questions []quiz.Question) int {
	if len(questions) == 0 {
		return 0
	}

	sample := struct {
		Questions    []quiz.Question        `json:"questions"`
		Mode         quiz.Mode              `json:"mode"`
		Cursor       int                    `json:"cursor"`
		Answers      map[string]quiz.Answer `json:"answers"`
		CorrectCount int                    `json:"correct_count"`
	}{
		Questions: questions[:1],
		Mode:      quiz.ModeImmediate,
		Answers:   map[string]quiz.Answer{},
	}

	data, err := json.Marshal(sample)
	if err != nil {
		return 0
	}
	return len(data) * len(questions)
}
