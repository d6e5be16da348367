package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/bz888/docask/internal/api"
	"github.com/bz888/docask/internal/api/client"
	"github.com/bz888/docask/internal/config"
	"github.com/bz888/docask/internal/docs"
	"github.com/bz888/docask/internal/logger"
	"github.com/bz888/docask/internal/transcript"
	"github.com/bz888/docask/internal/ui"
	"go.uber.org/zap"
)

func Execute() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	view := ui.New(cfg.Dev)
	if err := logger.InitLogger(cfg.Dev, cfg.LogPath, view.DebugConsole()); err != nil {
		return err
	}
	defer logger.Close()

	localLogger := logger.NewLogger("main")

	apiClient, err := newClient(cfg)
	if err != nil {
		return err
	}
	localLogger.Info("document server configured",
		zap.String("upload_url", apiClient.GetUploadURL()),
		zap.String("ask_url", apiClient.GetAskURL()),
		zap.Uint("retry_attempts", cfg.Retry.Attempts),
		zap.Duration("request_timeout", cfg.RequestTimeout),
	)

	view.Attach(api.NewService(apiClient), transcript.New(), docs.NewRegistry())

	if err := view.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	localLogger.Info("shut down gracefully")
	return nil
}

func newClient(cfg *config.Config) (*client.Client, error) {
	return client.NewClient(
		client.ClientConfig{
			BaseURL:    cfg.ServerURL,
			UploadPath: cfg.UploadPath,
			AskPath:    cfg.AskPath,
		},
		client.WithRequestTimeout(cfg.RequestTimeout),
		client.WithRetry(cfg.Retry.Attempts, cfg.Retry.Delay),
		client.WithAuthToken(cfg.Token),
		client.WithRequestLogging(logger.NewLogger("http")),
	)
}
