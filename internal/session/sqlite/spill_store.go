package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"certquiz/internal/quiz"
	"certquiz/internal/session"
)

// SpillStore is a SQLite-backed session.SpillCache for operators who want
// spilled attempts to survive a process restart. The contract is still
// best-effort: callers must tolerate misses.
type SpillStore struct {
	db *sql.DB
}

func NewSpillStore(path string) (*SpillStore, error) {
	if strings.TrimSpace(path) == "" {
		path = "certquiz.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open spill store %s", path)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "configure spill store")
	}

	store := &SpillStore{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init spill store schema")
	}
	return store, nil
}

func (s *SpillStore) Close() error {
	return s.db.Close()
}

func (s *SpillStore) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS spilled_attempts (
		spill_key TEXT PRIMARY KEY,
		questions_json TEXT NOT NULL,
		created_at_unix INTEGER NOT NULL
	);`)
	return err
}

func (s *SpillStore) Put(ctx context.Context, key string, entry session.CacheEntry) error {
	if key == "" {
		return errors.New("spill key is required")
	}

	questionsJSON, err := json.Marshal(entry.Questions)
	if err != nil {
		return errors.Wrap(err, "serialize spilled questions")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO spilled_attempts (spill_key, questions_json, created_at_unix)
		 VALUES (?, ?, ?)
		 ON CONFLICT(spill_key) DO UPDATE SET
			questions_json = excluded.questions_json,
			created_at_unix = excluded.created_at_unix`,
		key,
		string(questionsJSON),
		entry.CreatedAt.UnixNano(),
	)
	return errors.Wrapf(err, "store spilled attempt %s", key)
}

func (s *SpillStore) Get(ctx context.Context, key string) (session.CacheEntry, bool, error) {
	var questionsJSON string
	var createdAtUnix int64
	err := s.db.QueryRowContext(
		ctx,
		`SELECT questions_json, created_at_unix FROM spilled_attempts WHERE spill_key = ?`,
		key,
	).Scan(&questionsJSON, &createdAtUnix)
	if errors.Is(err, sql.ErrNoRows) {
		return session.CacheEntry{}, false, nil
	}
	if err != nil {
		return session.CacheEntry{}, false, errors.Wrapf(err, "load spilled attempt %s", key)
	}

	var questions []quiz.Question
	if err := json.Unmarshal([]byte(questionsJSON), &questions); err != nil {
		return session.CacheEntry{}, false, errors.Wrapf(err, "decode spilled attempt %s", key)
	}

	return session.CacheEntry{
		Questions: questions,
		CreatedAt: time.Unix(0, createdAtUnix).UTC(),
	}, true, nil
}
