package httpapi

import (
	"log"
	"net/http"

	"certquiz/internal/quiz"
)

// HandleIndex renders the selection screen. Returning here abandons any
// in-flight attempt, mirroring an explicit restart.
func (a *API) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Clear(w, r); err != nil {
		log.Printf("clear session failed: %v", err)
	}
	a.render(w, "index.html", indexView{TotalQuestions: a.service.TotalQuestions()})
}

func (a *API) HandleStart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectToIndex(w, r)
		return
	}

	mode := quiz.ModeImmediate
	if r.PostForm.Get("quiz_mode") == string(quiz.ModeBatch) {
		mode = quiz.ModeBatch
	}

	selection := parseSelection(r.PostForm, a.service.TotalQuestions())
	attempt, err := a.service.StartAttempt(mode, selection)
	if err != nil {
		log.Printf("cannot start attempt: %v", err)
		redirectToIndex(w, r)
		return
	}

	if !a.saveAttempt(w, r, attempt) {
		return
	}

	target := "/quiz/immediate"
	if attempt.Mode == quiz.ModeBatch {
		target = "/quiz/batch"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (a *API) HandleQuizImmediate(w http.ResponseWriter, r *http.Request) {
	attempt, ok := a.loadAttempt(w, r)
	if !ok {
		return
	}

	question, progress, ok := a.service.CurrentQuestion(attempt)
	if !ok {
		http.Redirect(w, r, "/results", http.StatusSeeOther)
		return
	}
	a.render(w, "quiz_immediate.html", questionView{Question: question, Progress: progress})
}

func (a *API) HandleSubmitImmediate(w http.ResponseWriter, r *http.Request) {
	attempt, ok := a.loadAttempt(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectToIndex(w, r)
		return
	}

	question, _, ok := a.service.CurrentQuestion(attempt)
	if !ok {
		http.Redirect(w, r, "/results", http.StatusSeeOther)
		return
	}

	feedback, err := a.service.SubmitImmediate(attempt, parseImmediateAnswer(question, r.PostForm))
	if err != nil {
		http.Redirect(w, r, "/results", http.StatusSeeOther)
		return
	}
	if !a.saveAttempt(w, r, attempt) {
		return
	}

	a.render(w, "feedback.html", feedbackView{Question: feedback.Question, Feedback: feedback})
}

func (a *API) HandleQuizBatch(w http.ResponseWriter, r *http.Request) {
	attempt, ok := a.loadAttempt(w, r)
	if !ok {
		return
	}
	a.render(w, "quiz_batch.html", batchView{Questions: attempt.Questions})
}

func (a *API) HandleSubmitBatch(w http.ResponseWriter, r *http.Request) {
	attempt, ok := a.loadAttempt(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectToIndex(w, r)
		return
	}

	a.service.SubmitBatch(attempt, parseBatchAnswers(attempt.Questions, r.PostForm))
	if !a.saveAttempt(w, r, attempt) {
		return
	}
	http.Redirect(w, r, "/results", http.StatusSeeOther)
}

func (a *API) HandleResults(w http.ResponseWriter, r *http.Request) {
	attempt, ok := a.loadAttempt(w, r)
	if !ok {
		return
	}
	a.render(w, "results.html", resultsView{Report: a.service.Report(attempt)})
}

// HandleRestart clears all attempt state regardless of where the user is in
// the lifecycle.
func (a *API) HandleRestart(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Clear(w, r); err != nil {
		log.Printf("clear session failed: %v", err)
	}
	redirectToIndex(w, r)
}

func (a *API) HandleQuestionCount(w http.ResponseWriter, r *http.Request) {
	total := a.service.TotalQuestions()
	response := countResponse{Total: total, Status: "success", Message: "questions loaded"}
	if total == 0 {
		response.Status = "error"
		response.Message = "no questions found"
	}
	writeJSON(w, http.StatusOK, response)
}
