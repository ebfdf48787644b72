package httpapi

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/pkg/errors"

	"certquiz/internal/quiz"
	"certquiz/internal/session"
)

// loadAttempt resolves the attempt for this request. Every failure mode here
// degrades to a redirect back to selection: no attempt, expired spilled
// state, or a cache read error all mean the user starts over.
func (a *API) loadAttempt(w http.ResponseWriter, r *http.Request) (*quiz.Attempt, bool) {
	attempt, err := a.sessions.Load(r)
	if err == nil {
		return attempt, true
	}

	switch {
	case errors.Is(err, session.ErrExpired):
		log.Printf("attempt state expired: %v", err)
	case errors.Is(err, session.ErrNoAttempt):
		// Nothing to log; the user simply has no quiz in flight.
	default:
		log.Printf("load attempt failed: %v", err)
	}
	redirectToIndex(w, r)
	return nil, false
}

func (a *API) saveAttempt(w http.ResponseWriter, r *http.Request, attempt *quiz.Attempt) bool {
	if err := a.sessions.Save(w, r, attempt); err != nil {
		log.Printf("save attempt failed: %v", err)
		redirectToIndex(w, r)
		return false
	}
	return true
}

func redirectToIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// render buffers template output so a failing template yields a clean 500
// instead of a half-written page.
func (a *API) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("render %s failed: %v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
