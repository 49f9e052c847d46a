package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aturs3001/ai-math-tutor/internal/api"
	"github.com/aturs3001/ai-math-tutor/internal/config"
	"github.com/aturs3001/ai-math-tutor/internal/extract"
	"github.com/aturs3001/ai-math-tutor/internal/llm"
	"github.com/aturs3001/ai-math-tutor/internal/store"
	"github.com/aturs3001/ai-math-tutor/internal/study"
	"github.com/aturs3001/ai-math-tutor/internal/tutor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	llmCfg := llm.ConfigFromEnv()
	if err := llmCfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	provider, err := llm.NewProvider(ctx, llmCfg, st, logger)
	if err != nil {
		return fmt.Errorf("initializing model provider: %w", err)
	}

	svc := tutor.NewService(provider, tutor.Config{
		MaxTokens:   cfg.Tutor.MaxTokens,
		Temperature: cfg.Tutor.Temperature,
		Timeout:     cfg.Tutor.Timeout,
	})
	machine := study.NewMachine(svc, study.NewStore())
	extractor := extract.NewExtractor(provider)

	server := api.NewServer(svc, machine, extractor, logger, api.Options{
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		Model:          provider.ModelID(),
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			"port", cfg.Server.Port,
			"provider", llmCfg.Provider,
		)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
