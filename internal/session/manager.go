package session

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"

	"certquiz/internal/quiz"
)

const (
	sessionName = "certquiz"
	attemptKey  = "attempt"

	// DefaultByteLimit stays safely under the ~4KB cookie ceiling; the
	// estimate is approximate, so the margin is deliberate.
	DefaultByteLimit = 3000
	// DefaultQuestionLimit spills long attempts even when individual
	// questions are small.
	DefaultQuestionLimit = 40
)

var (
	// ErrNoAttempt means the request carries no attempt at all.
	ErrNoAttempt = errors.New("no attempt in session")
	// ErrExpired means the attempt pointed at spilled state that is gone
	// (process restart, eviction). Recoverable by restarting the quiz.
	ErrExpired = errors.New("attempt state expired")
)

type Config struct {
	ByteLimit     int
	QuestionLimit int
}

// Manager carries attempts across request/response round-trips. Small
// attempts travel whole inside the cookie session; large ones leave their
// question list in the spill cache and only a key client-side. Callers never
// see the difference: Load always returns a fully populated attempt.
type Manager struct {
	cookies       sessions.Store
	cache         SpillCache
	byteLimit     int
	questionLimit int
}

func NewManager(secret []byte, cache SpillCache, cfg Config) *Manager {
	cookieStore := sessions.NewCookieStore(secret)
	cookieStore.Options.HttpOnly = true
	cookieStore.Options.SameSite = http.SameSiteLaxMode

	if cfg.ByteLimit <= 0 {
		cfg.ByteLimit = DefaultByteLimit
	}
	if cfg.QuestionLimit <= 0 {
		cfg.QuestionLimit = DefaultQuestionLimit
	}
	return &Manager{
		cookies:       cookieStore,
		cache:         cache,
		byteLimit:     cfg.ByteLimit,
		questionLimit: cfg.QuestionLimit,
	}
}

// DecideStorage picks the storage strategy for a fresh attempt.
func (m *Manager) DecideStorage(questions []quiz.Question) quiz.StorageMode {
	if EstimateSize(questions) > m.byteLimit || len(questions) > m.questionLimit {
		return quiz.StorageSpilled
	}
	return quiz.StorageInline
}

// Save writes the attempt to the response. The storage mode is decided once,
// on the first save, and recorded in the attempt; spilled attempts re-put
// their questions under the same key (last writer wins).
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, attempt *quiz.Attempt) error {
	if attempt.Storage == "" {
		attempt.Storage = m.DecideStorage(attempt.Questions)
	}

	blob := *attempt
	if attempt.Storage == quiz.StorageSpilled {
		if attempt.SpillKey == "" {
			attempt.SpillKey = uuid.NewString()
			blob.SpillKey = attempt.SpillKey
		}
		entry := CacheEntry{Questions: attempt.Questions, CreatedAt: time.Now().UTC()}
		if err := m.cache.Put(r.Context(), attempt.SpillKey, entry); err != nil {
			return errors.Wrap(err, "spill attempt questions")
		}
		blob.Questions = nil
	}

	data, err := json.Marshal(blob)
	if err != nil {
		return errors.Wrap(err, "serialize attempt")
	}

	sess := m.session(r)
	sess.Values[attemptKey] = string(data)
	return errors.Wrap(sess.Save(r, w), "save session")
}

// Load reads the attempt for this request, transparently refetching spilled
// questions. It returns ErrNoAttempt when the session carries none and
// ErrExpired when the spilled state is lost; both mean "redirect to
// selection", never a hard failure.
func (m *Manager) Load(r *http.Request) (*quiz.Attempt, error) {
	sess := m.session(r)
	raw, ok := sess.Values[attemptKey].(string)
	if !ok || raw == "" {
		return nil, ErrNoAttempt
	}

	var attempt quiz.Attempt
	if err := json.Unmarshal([]byte(raw), &attempt); err != nil {
		// A blob we cannot decode is as good as absent.
		return nil, ErrNoAttempt
	}
	if attempt.Answers == nil {
		attempt.Answers = make(map[string]quiz.Answer)
	}

	if attempt.Storage == quiz.StorageSpilled {
		entry, found, err := m.cache.Get(r.Context(), attempt.SpillKey)
		if err != nil {
			return nil, errors.Wrap(err, "read spill cache")
		}
		if !found {
			return nil, ErrExpired
		}
		attempt.Questions = entry.Questions
	}
	return &attempt, nil
}

// Clear drops the attempt; used on restart and on returning to selection.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess := m.session(r)
	delete(sess.Values, attemptKey)
	sess.Options.MaxAge = -1
	return errors.Wrap(sess.Save(r, w), "clear session")
}

// session ignores decode errors: a tampered or stale cookie simply yields a
// fresh session, which reads as "no attempt".
func (m *Manager) session(r *http.Request) *sessions.Session {
	sess, err := m.cookies.Get(r, sessionName)
	if err != nil || sess == nil {
		sess, _ = m.cookies.New(r, sessionName)
	}
	return sess
}
