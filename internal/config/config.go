package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultHFRouterURL is the OpenAI-compatible chat endpoint of the
// HuggingFace inference router.
const DefaultHFRouterURL = "https://router.huggingface.co/novita/v3/openai"

const DefaultModel = "meta-llama/llama-3.3-70b-instruct"

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type ReportConfig struct {
	TemplateDir string `toml:"template_dir"`
}

// ClassifyPrompts holds the hybrid classifier's model-fallback template.
// Slots: combined document text, filename list, unresolved field list.
type ClassifyPrompts struct {
	Fallback string `toml:"fallback"`
}

// ExtractionPrompts holds the DSM-5 quote extraction template. Slot: document
// text.
type ExtractionPrompts struct {
	Evidence   string `toml:"evidence"`
	Functional string `toml:"functional"`
}

// TwoStagePrompts holds the two-stage categorizer templates. Quotes slot:
// document text. Categorize slot: the quote listing.
type TwoStagePrompts struct {
	Quotes     string `toml:"quotes"`
	Categorize string `toml:"categorize"`
}

type Config struct {
	LLM        LLMConfig         `toml:"llm"`
	Server     ServerConfig      `toml:"server"`
	Reports    ReportConfig      `toml:"reports"`
	Classify   ClassifyPrompts   `toml:"classify"`
	Extraction ExtractionPrompts `toml:"extraction"`
	TwoStage   TwoStagePrompts   `toml:"two_stage"`
}

// Default returns a configuration with built-in prompt templates and the
// HuggingFace router as provider. The API key still has to come from config
// or environment.
func Default() *Config {
	cfg := &Config{
		LLM: LLMConfig{
			Provider: "huggingface",
			Model:    DefaultModel,
		},
		Server: ServerConfig{Port: "8080"},
		Reports: ReportConfig{
			TemplateDir: "templates",
		},
	}
	cfg.applyPromptDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "huggingface"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultModel
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Reports.TemplateDir == "" {
		cfg.Reports.TemplateDir = "templates"
	}
	cfg.applyPromptDefaults()

	return &cfg, nil
}

// Validate checks startup requirements. A missing credential is a
// configuration error surfaced here, not a runtime failure deep in a call
// path. Ollama runs without one.
func (c *Config) Validate() error {
	if c.LLM.Provider != "ollama" && c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required for provider %q", c.LLM.Provider)
	}
	return nil
}

func (c *Config) applyPromptDefaults() {
	if c.Classify.Fallback == "" {
		c.Classify.Fallback = defaultClassifyFallbackPrompt
	}
	if c.Extraction.Evidence == "" {
		c.Extraction.Evidence = defaultEvidencePrompt
	}
	if c.Extraction.Functional == "" {
		c.Extraction.Functional = defaultFunctionalPrompt
	}
	if c.TwoStage.Quotes == "" {
		c.TwoStage.Quotes = defaultQuotesPrompt
	}
	if c.TwoStage.Categorize == "" {
		c.TwoStage.Categorize = defaultCategorizePrompt
	}
}
