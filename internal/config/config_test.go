package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/notescribe/internal/apperr"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  Config{Region: "us-east-1", ModelChoice: "openai/whisper-large-v3"},
			wantErr: false,
		},
		{
			name:    "missing region",
			config:  Config{ModelChoice: "openai/whisper-large-v3"},
			wantErr: true,
		},
		{
			name:    "missing model choice",
			config:  Config{Region: "us-east-1"},
			wantErr: true,
		},
		{
			name: "unknown backend",
			config: Config{
				Region:      "us-east-1",
				ModelChoice: "m",
				Transcriber: TranscriberConfig{Backend: "vosk"},
			},
			wantErr: true,
		},
		{
			name: "unknown provider",
			config: Config{
				Region:      "us-east-1",
				ModelChoice: "m",
				Generator:   GeneratorConfig{Provider: "cohere"},
			},
			wantErr: true,
		},
		{
			name: "unknown device",
			config: Config{
				Region:      "us-east-1",
				ModelChoice: "m",
				Transcriber: TranscriberConfig{Device: "tpu"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, apperr.Config) {
				t.Errorf("Validate() error kind = %v, want %v", apperr.KindOf(err), apperr.KindConfig)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Region: "us-west-2", ModelChoice: "models/ggml-base.en.bin"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Generator.Provider != ProviderBedrock {
		t.Errorf("Provider = %v, want %v", cfg.Generator.Provider, ProviderBedrock)
	}
	if cfg.Generator.ModelID != "anthropic.claude-3-sonnet-20240229-v1:0" {
		t.Errorf("ModelID = %v", cfg.Generator.ModelID)
	}
	if cfg.Generator.MaxTokens != 4086 {
		t.Errorf("MaxTokens = %v, want 4086", cfg.Generator.MaxTokens)
	}
	if cfg.Transcriber.Backend != BackendWhisperCLI {
		t.Errorf("Backend = %v, want %v", cfg.Transcriber.Backend, BackendWhisperCLI)
	}
	if cfg.Transcriber.Language != "english" {
		t.Errorf("Language = %v, want english", cfg.Transcriber.Language)
	}
	if cfg.Paths.Output != "." {
		t.Errorf("Output = %v, want .", cfg.Paths.Output)
	}
	if cfg.Watch.MaxConcurrent != 1 {
		t.Errorf("MaxConcurrent = %v, want 1", cfg.Watch.MaxConcurrent)
	}
}

func TestValidateProviderModelDefault(t *testing.T) {
	cfg := Config{Region: "us-central1", ModelChoice: "m", Generator: GeneratorConfig{Provider: ProviderOllama}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Generator.ModelID != "llama3" {
		t.Errorf("ModelID = %v, want llama3", cfg.Generator.ModelID)
	}
	if cfg.Generator.BaseURL != "http://localhost:11434" {
		t.Errorf("BaseURL = %v", cfg.Generator.BaseURL)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
	"region": "us-east-1",
	"model_choice": "openai/whisper-large-v3",
	"transcriber": {"backend": "whisper-server", "timeout": "90s"},
	"output": {"docx": true}
}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Region != "us-east-1" {
		t.Errorf("Region = %v, want us-east-1", cfg.Region)
	}
	if cfg.ModelChoice != "openai/whisper-large-v3" {
		t.Errorf("ModelChoice = %v", cfg.ModelChoice)
	}
	if cfg.Transcriber.Backend != BackendWhisperServer {
		t.Errorf("Backend = %v", cfg.Transcriber.Backend)
	}
	if cfg.Transcriber.Timeout.Duration != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.Transcriber.Timeout)
	}
	if !cfg.Output.Docx {
		t.Error("Output.Docx = false, want true")
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
region: "eu-west-1"
model_choice: "models/ggml-base.en.bin"
generator:
  provider: "gemini"
  project: "clinic-notes"
transcriber:
  timeout: "2m"
logging:
  level: "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Generator.Provider != ProviderGemini {
		t.Errorf("Provider = %v", cfg.Generator.Provider)
	}
	if cfg.Generator.ModelID != "gemini-2.5-flash" {
		t.Errorf("ModelID = %v", cfg.Generator.ModelID)
	}
	if cfg.Transcriber.Timeout.Duration != 2*time.Minute {
		t.Errorf("Timeout = %v, want 2m", cfg.Transcriber.Timeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %v", cfg.Logging.Level)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.json")
	if err == nil {
		t.Fatal("Load() should return error for nonexistent file")
	}
	if !errors.Is(err, apperr.Config) {
		t.Errorf("error kind = %v, want %v", apperr.KindOf(err), apperr.KindConfig)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeFile(t, "config.json", `{"region": "us-east-1",`)
	_, err := Load(path)
	if !errors.Is(err, apperr.Config) {
		t.Errorf("Load() error = %v, want config error", err)
	}
}

func TestLoadMissingKeys(t *testing.T) {
	path := writeFile(t, "config.json", `{"region": "us-east-1"}`)
	_, err := Load(path)
	if !errors.Is(err, apperr.Config) {
		t.Errorf("Load() error = %v, want config error", err)
	}
}
