package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/secondbrain-labs/secondbrain/app/api"
	"github.com/secondbrain-labs/secondbrain/app/cfg"
	"github.com/secondbrain-labs/secondbrain/app/database"
	"github.com/secondbrain-labs/secondbrain/app/events"
	"github.com/secondbrain-labs/secondbrain/app/llm"
	"github.com/secondbrain-labs/secondbrain/app/pipeline"
	"github.com/secondbrain-labs/secondbrain/app/search"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// help was requested
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting SecondBrain server", "version", cfg.GetVersion())

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrationVersion, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", migrationVersion, "dirty", dirty)

	pageRepo := database.NewPageRepository(db)

	httpClient := &http.Client{
		Timeout: time.Duration(appCfg.PipelineHTTPTimeout) * time.Second,
	}

	pipelineClient := pipeline.NewClient(httpClient, appCfg.PipelineAPIURL,
		appCfg.PipelineAPIKey, appCfg.PipelineUserID, appCfg.PipelineID, appCfg.UserAgent)
	poller := pipeline.NewPoller(pipelineClient,
		time.Duration(appCfg.PollInterval)*time.Second, appCfg.PollMaxAttempts)
	fallback := pipeline.NewLocalExtractor(httpClient, appCfg.UserAgent)

	searchConfig, err := search.LoadConfig(appCfg.SearchConfig)
	if err != nil {
		slog.Error("Failed to load search configuration", "path", appCfg.SearchConfig, "error", err)
		os.Exit(1)
	}

	llmClient := llm.NewClient(appCfg.LLMAPIKey, appCfg.LLMBaseURL)
	if llmClient == nil {
		slog.Info("No LLM API key configured, LLM ranking and chat are disabled")
	}

	extractor := search.NewExtractor(searchConfig.ProbeKeys)
	ranker := search.NewRanker(searchConfig)
	llmRanker := search.NewLLMRanker(llmClient, appCfg.LLMModel)
	searcher := search.NewSearcher(pageRepo, extractor, ranker, llmRanker, searchConfig)
	chat := search.NewChat(llmClient, appCfg.LLMModel, extractor, ranker)

	mailer := events.NewMailer(appCfg)

	handler := api.NewHandler(pageRepo, poller, fallback, extractor, searcher, chat, mailer)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		// save-page polls the pipeline synchronously, give it room
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("HTTP server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("SecondBrain server shutdown complete")
}
