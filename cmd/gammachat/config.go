package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gammalabs/gamma-chat/internal/providers"
	"github.com/gammalabs/gamma-chat/internal/store"
	"gopkg.in/yaml.v3"
)

type apiKeyConfig struct {
	APIKey string `yaml:"apiKey"`
}

type ollamaConfig struct {
	Host string `yaml:"host"`
}

type config struct {
	Port      string `yaml:"port"`
	StorePath string `yaml:"storePath"`
	LogLevel  string `yaml:"logLevel"`

	// FallbackToSimulated substitutes a locally generated response when a model is not
	// supported or a provider call fails. Off by default: errors surface to the user.
	FallbackToSimulated bool `yaml:"fallbackToSimulated"`

	OpenAI    apiKeyConfig `yaml:"openai"`
	Anthropic apiKeyConfig `yaml:"anthropic"`
	Google    apiKeyConfig `yaml:"google"`
	Ollama    ollamaConfig `yaml:"ollama"`
}

// loadConfig reads the YAML config file, falling back to defaults when the file is
// absent. Credentials left empty in the file are resolved from the environment.
func loadConfig(path string) (config, error) {
	cfg := config{}

	if path == "" {
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			return cfg, fmt.Errorf("error getting user config dir: %w", err)
		}
		path = filepath.Join(cfgDir, "gammachat", "config.yaml")
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg.withFallbacks(), nil
		}
		return cfg, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("error decoding config file: %w", err)
	}

	return cfg.withFallbacks(), nil
}

func (c config) withFallbacks() config {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Anthropic.APIKey == "" {
		c.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if c.Google.APIKey == "" {
		c.Google.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if c.Ollama.Host == "" {
		c.Ollama.Host = os.Getenv("OLLAMA_HOST")
	}
	return c
}

func (c config) dispatcherConfig() providers.Config {
	return providers.Config{
		OpenAIAPIKey:        c.OpenAI.APIKey,
		AnthropicAPIKey:     c.Anthropic.APIKey,
		GoogleAPIKey:        c.Google.APIKey,
		OllamaHost:          c.Ollama.Host,
		FallbackToSimulated: c.FallbackToSimulated,
	}
}

// parseLogLevel maps the configured level name to a slog level. Unknown names fall back
// to info with an error so the caller can report the misconfiguration.
func parseLogLevel(name string) (slog.Level, error) {
	level := slog.LevelInfo
	if name == "" {
		return level, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

func (c config) logger() *slog.Logger {
	level, err := parseLogLevel(c.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if err != nil {
		logger.Warn("Unknown log level, using info", slog.String("logLevel", c.LogLevel))
	}
	return logger
}

// openStore opens the session store. With --ephemeral sessions live in memory and are
// lost on exit. Otherwise the --store flag wins over the config file; with neither set
// the database lives under the user config dir.
func openStore(cfg config, logger *slog.Logger) (store.Store, func(), error) {
	if ephemeral {
		return store.New(store.NewMemoryKV(), logger), func() {}, nil
	}

	path := storePath
	if path == "" {
		path = cfg.StorePath
	}
	if path == "" {
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			return store.Store{}, nil, fmt.Errorf("error getting user config dir: %w", err)
		}
		path = filepath.Join(cfgDir, "gammachat", "sessions.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return store.Store{}, nil, fmt.Errorf("error creating store directory: %w", err)
	}

	kv, err := store.NewBoltKV(path)
	if err != nil {
		return store.Store{}, nil, err
	}

	closer := func() {
		if err := kv.Close(); err != nil {
			logger.Error("Failed to close store", slog.String("err", err.Error()))
		}
	}
	return store.New(kv, logger), closer, nil
}
