package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerURL      string        `env:"SERVER_URL" envDefault:"http://localhost:8000"`
	UploadPath     string        `env:"UPLOAD_PATH" envDefault:"/upload"`
	AskPath        string        `env:"ASK_PATH" envDefault:"/ask"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"0s"`
	Token          string        `env:"TOKEN"`

	Retry RetryConfig `envPrefix:"RETRY_"`

	Dev     bool   `env:"DEV" envDefault:"false"`
	LogPath string `env:"LOG_PATH"`
}

type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"1"`
	Delay    time.Duration `env:"DELAY" envDefault:"200ms"`
}

const envPrefix = "DOCASK_"

// Load reads an optional env file, then DOCASK_* variables, then command line
// flags. Later sources win.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("docask", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	envFile := fs.String("env", ".env", "Path to an env file")
	dev := fs.Bool("dev", false, "Development mode")
	logPath := fs.String("logPath", "", "Path to save the log file")
	serverURL := fs.String("server", "", "Base URL of the document server")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", *envFile, err)
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dev":
			cfg.Dev = *dev
		case "logPath":
			cfg.LogPath = *logPath
		case "server":
			cfg.ServerURL = *serverURL
		}
	})

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.ServerURL)
	if err != nil {
		return fmt.Errorf("server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server url must be http or https, got %q", cfg.ServerURL)
	}
	if u.Host == "" {
		return fmt.Errorf("server url has no host: %q", cfg.ServerURL)
	}
	if cfg.Retry.Attempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", cfg.Retry.Attempts)
	}
	if cfg.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative, got %s", cfg.RequestTimeout)
	}
	if cfg.LogPath != "" {
		info, err := os.Stat(cfg.LogPath)
		if err != nil {
			return fmt.Errorf("log path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("log path is not a directory: %s", cfg.LogPath)
		}
	}
	return nil
}
