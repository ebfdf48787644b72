package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"certquiz/internal/quiz"
	"certquiz/internal/session"
)

func NewRouter(service *quiz.Service, sessions *session.Manager) (http.Handler, error) {
	api, err := NewAPI(service, sessions)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.HandleFunc("/", api.HandleIndex).Methods(http.MethodGet)
	router.HandleFunc("/start", api.HandleStart).Methods(http.MethodPost)
	router.HandleFunc("/quiz/immediate", api.HandleQuizImmediate).Methods(http.MethodGet)
	router.HandleFunc("/quiz/batch", api.HandleQuizBatch).Methods(http.MethodGet)
	router.HandleFunc("/submit/immediate", api.HandleSubmitImmediate).Methods(http.MethodPost)
	router.HandleFunc("/submit/batch", api.HandleSubmitBatch).Methods(http.MethodPost)
	router.HandleFunc("/results", api.HandleResults).Methods(http.MethodGet)
	router.HandleFunc("/restart", api.HandleRestart).Methods(http.MethodPost)
	router.HandleFunc("/api/questions/count", api.HandleQuestionCount).Methods(http.MethodGet)

	return router, nil
}
