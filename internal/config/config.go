package config

import (
	"bytes"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	SpillBackendMemory = "memory"
	SpillBackendSQLite = "sqlite"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	QuestionsPath string        `yaml:"questions_path"`
	CookieSecret  string        `yaml:"cookie_secret"`
	Session       SessionConfig `yaml:"session"`
	Scoring       ScoringConfig `yaml:"scoring"`
}

type SessionConfig struct {
	ByteLimit     int           `yaml:"byte_limit"`
	QuestionLimit int           `yaml:"question_limit"`
	SpillBackend  string        `yaml:"spill_backend"`
	SQLitePath    string        `yaml:"sqlite_path"`
	SpillTTL      time.Duration `yaml:"spill_ttl"`
}

type ScoringConfig struct {
	ReadyThreshold  float64 `yaml:"ready_threshold"`
	AlmostThreshold float64 `yaml:"almost_threshold"`
}

func Default() Config {
	return Config{
		Addr:          ":8080",
		QuestionsPath: "questions.json",
		CookieSecret:  "certquiz-dev-secret",
		Session: SessionConfig{
			ByteLimit:     3000,
			QuestionLimit: 40,
			SpillBackend:  SpillBackendMemory,
		},
		Scoring: ScoringConfig{
			ReadyThreshold:  80,
			AlmostThreshold: 70,
		},
	}
}

// Load reads and validates a config file on top of the defaults. A missing
// file is not an error; the defaults stand.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}

	if err := validate(cfg); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.Session.ByteLimit <= 0 {
		return errors.New("session.byte_limit must be positive")
	}
	if cfg.Session.QuestionLimit <= 0 {
		return errors.New("session.question_limit must be positive")
	}
	if cfg.Session.SpillBackend != SpillBackendMemory && cfg.Session.SpillBackend != SpillBackendSQLite {
		return errors.Errorf("session.spill_backend must be %q or %q", SpillBackendMemory, SpillBackendSQLite)
	}
	if cfg.Scoring.ReadyThreshold < 0 || cfg.Scoring.ReadyThreshold > 100 {
		return errors.New("scoring.ready_threshold must be within 0..100")
	}
	if cfg.Scoring.AlmostThreshold < 0 || cfg.Scoring.AlmostThreshold > cfg.Scoring.ReadyThreshold {
		return errors.New("scoring.almost_threshold must be within 0..ready_threshold")
	}
	if cfg.CookieSecret == "" {
		return errors.New("cookie_secret must not be empty")
	}
	return nil
}
