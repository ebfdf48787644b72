package httpapi

import (
	"embed"
	"html/template"

	"github.com/pkg/errors"

	"certquiz/internal/quiz"
	"certquiz/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

type API struct {
	service   *quiz.Service
	sessions  *session.Manager
	templates *template.Template
}

func NewAPI(service *quiz.Service, sessions *session.Manager) (*API, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	return &API{
		service:   service,
		sessions:  sessions,
		templates: templates,
	}, nil
}
