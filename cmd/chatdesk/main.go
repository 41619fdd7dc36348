package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klinikflow/chatdesk"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := chatdesk.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	leadStore, err := chatdesk.NewSQLiteLeadStore(cfg.LeadDBPath)
	if err != nil {
		logger.Error("failed to open lead store", "error", err)
		os.Exit(1)
	}
	defer leadStore.Close()

	var mailer chatdesk.Mailer
	if cfg.ResendAPIKey != "" && cfg.LeadToEmail != "" {
		mailer = chatdesk.NewResendMailer(cfg.ResendAPIKey, "", 10*time.Second)
	} else {
		logger.Warn("mail service not configured, leads will be accepted without notification")
	}

	store := chatdesk.NewSessionStore(cfg.SystemPrompt, cfg.MaxSessions)
	completions := chatdesk.NewOpenAICompletionClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model)
	manager := chatdesk.NewConversationManager(store, completions, cfg.FallbackReply, cfg.UpstreamTimeout, logger)
	leads := chatdesk.NewLeadService(leadStore, mailer, cfg.LeadToEmail, cfg.LeadFromEmail, logger)
	srv := chatdesk.NewServer(manager, leads, cfg.StaticDir, logger)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: srv.Handler(),
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
}
