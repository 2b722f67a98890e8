package main

import (
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    slog.Level
		wantErr bool
	}{
		{
			name:  "empty defaults to info",
			input: "",
			want:  slog.LevelInfo,
		},
		{
			name:  "debug",
			input: "debug",
			want:  slog.LevelDebug,
		},
		{
			name:  "warn",
			input: "warn",
			want:  slog.LevelWarn,
		},
		{
			name:  "error",
			input: "error",
			want:  slog.LevelError,
		},
		{
			name:    "unknown falls back to info",
			input:   "verbose",
			want:    slog.LevelInfo,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLogLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLogLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestConfigWithFallbacks(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-openai")
	t.Setenv("ANTHROPIC_API_KEY", "env-anthropic")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OLLAMA_HOST", "http://localhost:11434")

	cfg := config{
		Anthropic: apiKeyConfig{APIKey: "file-anthropic"},
	}.withFallbacks()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want the default 8080", cfg.Port)
	}
	if cfg.OpenAI.APIKey != "env-openai" {
		t.Errorf("OpenAI.APIKey = %q, want the environment value", cfg.OpenAI.APIKey)
	}
	// A key set in the config file wins over the environment.
	if cfg.Anthropic.APIKey != "file-anthropic" {
		t.Errorf("Anthropic.APIKey = %q, want the config file value", cfg.Anthropic.APIKey)
	}
	if cfg.Google.APIKey != "" {
		t.Errorf("Google.APIKey = %q, want empty", cfg.Google.APIKey)
	}
	if cfg.Ollama.Host != "http://localhost:11434" {
		t.Errorf("Ollama.Host = %q, want the environment value", cfg.Ollama.Host)
	}
}
