package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/notescribe/internal/apperr"
	"gopkg.in/yaml.v3"
)

const (
	BackendWhisperCLI    = "whisper-cli"
	BackendWhisperServer = "whisper-server"

	ProviderBedrock = "bedrock"
	ProviderGemini  = "gemini"
	ProviderOpenAI  = "openai"
	ProviderOllama  = "ollama"

	DefaultMaxTokens        = 4086
	DefaultAnthropicVersion = "bedrock-2023-05-31"
)

var defaultModelIDs = map[string]string{
	ProviderBedrock: "anthropic.claude-3-sonnet-20240229-v1:0",
	ProviderGemini:  "gemini-2.5-flash",
	ProviderOpenAI:  "gpt-4o",
	ProviderOllama:  "llama3",
}

type Config struct {
	Region      string            `json:"region" yaml:"region"`
	ModelChoice string            `json:"model_choice" yaml:"model_choice"`
	Transcriber TranscriberConfig `json:"transcriber" yaml:"transcriber"`
	Generator   GeneratorConfig   `json:"generator" yaml:"generator"`
	Paths       PathsConfig       `json:"paths" yaml:"paths"`
	Output      OutputConfig      `json:"output" yaml:"output"`
	Logging     LoggingConfig     `json:"logging" yaml:"logging"`
	Watch       WatchConfig       `json:"watch" yaml:"watch"`
}

type TranscriberConfig struct {
	Backend    string   `json:"backend" yaml:"backend"`
	BinaryPath string   `json:"binary_path" yaml:"binary_path"`
	FFmpegPath string   `json:"ffmpeg_path" yaml:"ffmpeg_path"`
	ServerURL  string   `json:"server_url" yaml:"server_url"`
	Device     string   `json:"device" yaml:"device"`
	Language   string   `json:"language" yaml:"language"`
	Threads    int      `json:"threads" yaml:"threads"`
	Timeout    Duration `json:"timeout" yaml:"timeout"`
}

type GeneratorConfig struct {
	Provider         string `json:"provider" yaml:"provider"`
	ModelID          string `json:"model_id" yaml:"model_id"`
	MaxTokens        int    `json:"max_tokens" yaml:"max_tokens"`
	AnthropicVersion string `json:"anthropic_version" yaml:"anthropic_version"`
	Project          string `json:"project" yaml:"project"`
	BaseURL          string `json:"base_url" yaml:"base_url"`
}

type PathsConfig struct {
	Output string `json:"output" yaml:"output"`
	Temp   string `json:"temp" yaml:"temp"`
}

type OutputConfig struct {
	Docx bool `json:"docx" yaml:"docx"`
}

type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// WatchConfig drives folder watch mode.
type WatchConfig struct {
	SOAP          bool   `json:"soap" yaml:"soap"`
	BIRP          bool   `json:"birp" yaml:"birp"`
	Instructions  string `json:"instructions" yaml:"instructions"`
	MaxConcurrent int    `json:"max_concurrent" yaml:"max_concurrent"`
}

// Duration accepts "90s" style strings in both JSON and YAML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"90s\": %w", err)
	}
	return d.set(s)
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.set(node.Value)
}

func (d *Duration) set(s string) error {
	if s == "" {
		d.Duration = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Load reads the config file at path. YAML is used for .yaml/.yml files,
// JSON for everything else.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfig, err, "read config %s", path)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfig, err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and fills defaults.
func (c *Config) Validate() error {
	if c.Region == "" {
		return apperr.New(apperr.KindConfig, "region is required")
	}
	if c.ModelChoice == "" {
		return apperr.New(apperr.KindConfig, "model_choice is required")
	}

	if c.Transcriber.Backend == "" {
		c.Transcriber.Backend = BackendWhisperCLI
	}
	switch c.Transcriber.Backend {
	case BackendWhisperCLI, BackendWhisperServer:
	default:
		return apperr.New(apperr.KindConfig, "transcriber.backend must be %q or %q, got %q",
			BackendWhisperCLI, BackendWhisperServer, c.Transcriber.Backend)
	}
	if c.Transcriber.Device == "" {
		c.Transcriber.Device = "auto"
	}
	switch c.Transcriber.Device {
	case "auto", "cuda", "mps", "cpu":
	default:
		return apperr.New(apperr.KindConfig, "transcriber.device must be auto, cuda, mps or cpu, got %q", c.Transcriber.Device)
	}
	if c.Transcriber.BinaryPath == "" {
		c.Transcriber.BinaryPath = "whisper-cli"
	}
	if c.Transcriber.FFmpegPath == "" {
		c.Transcriber.FFmpegPath = "ffmpeg"
	}
	if c.Transcriber.ServerURL == "" {
		c.Transcriber.ServerURL = "http://localhost:8387"
	}
	if c.Transcriber.Language == "" {
		c.Transcriber.Language = "english"
	}
	if c.Transcriber.Threads == 0 {
		c.Transcriber.Threads = 8
	}
	if c.Transcriber.Timeout.Duration == 0 {
		c.Transcriber.Timeout.Duration = 10 * time.Minute
	}

	if c.Generator.Provider == "" {
		c.Generator.Provider = ProviderBedrock
	}
	defaultModel, ok := defaultModelIDs[c.Generator.Provider]
	if !ok {
		return apperr.New(apperr.KindConfig, "generator.provider must be bedrock, gemini, openai or ollama, got %q", c.Generator.Provider)
	}
	if c.Generator.ModelID == "" {
		c.Generator.ModelID = defaultModel
	}
	if c.Generator.MaxTokens == 0 {
		c.Generator.MaxTokens = DefaultMaxTokens
	}
	if c.Generator.MaxTokens < 0 {
		return apperr.New(apperr.KindConfig, "generator.max_tokens must be > 0")
	}
	if c.Generator.AnthropicVersion == "" {
		c.Generator.AnthropicVersion = DefaultAnthropicVersion
	}
	if c.Generator.Provider == ProviderOllama && c.Generator.BaseURL == "" {
		c.Generator.BaseURL = "http://localhost:11434"
	}

	if c.Paths.Output == "" {
		c.Paths.Output = "."
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = os.TempDir()
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}

	if c.Watch.MaxConcurrent == 0 {
		c.Watch.MaxConcurrent = 1
	}

	return nil
}
