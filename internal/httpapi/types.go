package httpapi

import (
	"certquiz/internal/quiz"
)

type indexView struct {
	TotalQuestions int
}

type questionView struct {
	Question quiz.Question
	Progress quiz.Progress
}

type feedbackView struct {
	Question quiz.Question
	Feedback quiz.Feedback
}

type batchView struct {
	Questions []quiz.Question
}

type resultsView struct {
	Report quiz.Report
}

type countResponse struct {
	Total   int    `json:"total"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
