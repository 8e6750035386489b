package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/noticepilot/internal/llm"
	"github.com/alexanderramin/noticepilot/internal/logging"
)

// Validate checks the configuration for errors. It does not require a
// secret; the auth gate reports that on its own.
func (c *Config) Validate() error {
	if c.PDF.PageLimit <= 0 {
		return fmt.Errorf("pdf.page_limit must be positive, got %d", c.PDF.PageLimit)
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		return errors.New("output.dir cannot be empty")
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	provider, err := llm.ParseProvider(c.LLM.Provider)
	if err != nil {
		return fmt.Errorf("llm.provider: %w", err)
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.TimeoutMs < 0 || c.LLM.AnalyzeTimeoutMs < 0 || c.LLM.DraftTimeoutMs < 0 {
		return errors.New("llm timeouts cannot be negative")
	}

	switch provider {
	case llm.ProviderOllama:
		if c.LLM.Endpoint == "" {
			return errors.New("llm.endpoint cannot be empty when provider is ollama")
		}
	case llm.ProviderVertex:
		if c.LLM.Vertex.Project == "" {
			return errors.New("llm.vertex.project cannot be empty when provider is vertex")
		}
		if c.LLM.Vertex.Location == "" {
			return errors.New("llm.vertex.location cannot be empty when provider is vertex")
		}
	}

	return nil
}
