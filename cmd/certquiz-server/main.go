package main

import (
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"certquiz/internal/config"
	"certquiz/internal/httpapi"
	"certquiz/internal/quiz"
	"certquiz/internal/session"
	sessionsqlite "certquiz/internal/session/sqlite"
)

func main() {
	addr := flag.String("addr", "", "HTTP listen address (overrides ADDR and config)")
	configPath := flag.String("config", "certquiz.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if secret := os.Getenv("COOKIE_SECRET"); secret != "" {
		cfg.CookieSecret = secret
	}
	listenAddr := firstNonEmpty(*addr, os.Getenv("ADDR"), cfg.Addr)

	bank, err := quiz.LoadBank(cfg.QuestionsPath)
	if err != nil {
		// A broken question source is not fatal; the server runs and the UI
		// reports that no quiz can be started.
		log.Printf("questions unavailable, starting with an empty bank: %v", err)
		bank = quiz.EmptyBank()
	}

	cache, closeCache, err := buildSpillCache(cfg.Session)
	if err != nil {
		log.Fatalf("spill cache: %v", err)
	}
	defer closeCache()

	manager := session.NewManager([]byte(cfg.CookieSecret), cache, session.Config{
		ByteLimit:     cfg.Session.ByteLimit,
		QuestionLimit: cfg.Session.QuestionLimit,
	})
	service := quiz.NewService(bank, quiz.ReadinessPolicy{
		ReadyThreshold:  cfg.Scoring.ReadyThreshold,
		AlmostThreshold: cfg.Scoring.AlmostThreshold,
	})

	handler, err := httpapi.NewRouter(service, manager)
	if err != nil {
		log.Fatalf("build router: %v", err)
	}

	server := &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("certquiz listening on %s (%d questions)", listenAddr, bank.Len())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}

func buildSpillCache(cfg config.SessionConfig) (session.SpillCache, func(), error) {
	if cfg.SpillBackend == config.SpillBackendSQLite {
		store, err := sessionsqlite.NewSpillStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}
	return session.NewMemoryCache(cfg.SpillTTL), func() {}, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ":8080"
}
