// Package config loads noticepilot settings from .env, an optional
// noticepilot.yaml and NOTICEPILOT_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/noticepilot/internal/llm"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// NOTICEPILOT_LLM_PROVIDER.
const EnvPrefix = "NOTICEPILOT"

// Config is the complete tool configuration.
type Config struct {
	Auth   AuthConfig   `mapstructure:"auth"`
	PDF    PDFConfig    `mapstructure:"pdf"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
	LLM    LLMConfig    `mapstructure:"llm"`

	// Source is the config file that was read, empty when none was found.
	Source string `mapstructure:"-"`
}

// AuthConfig holds the shared secret guarding the tool. Either field may be
// set; PasswordHash is a bcrypt hash.
type AuthConfig struct {
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password_hash"`
}

type PDFConfig struct {
	PageLimit int `mapstructure:"page_limit"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LLMConfig mirrors llm.LLMConfig in file/env form.
type LLMConfig struct {
	Provider         string       `mapstructure:"provider"`
	Model            string       `mapstructure:"model"`
	Endpoint         string       `mapstructure:"endpoint"`
	TimeoutMs        int          `mapstructure:"timeout_ms"`
	AnalyzeTimeoutMs int          `mapstructure:"analyze_timeout_ms"`
	DraftTimeoutMs   int          `mapstructure:"draft_timeout_ms"`
	LogCalls         bool         `mapstructure:"log_calls"`
	Vertex           VertexConfig `mapstructure:"vertex"`
}

type VertexConfig struct {
	Project         string `mapstructure:"project"`
	Location        string `mapstructure:"location"`
	CredentialsFile string `mapstructure:"credentials_file"`
	CredentialsJSON string `mapstructure:"credentials_json"`
}

// Load reads configuration. When configFile is empty, noticepilot.yaml is
// looked up in the working directory and $HOME/.noticepilot; a missing file
// is not an error. An explicit configFile must exist.
func Load(configFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("noticepilot")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.noticepilot")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()
	return &cfg, nil
}

// setDefaults registers every key so environment overrides are seen by
// Unmarshal even when no config file mentions them.
func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()

	v.SetDefault("auth.password", "")
	v.SetDefault("auth.password_hash", "")

	v.SetDefault("pdf.page_limit", 51)
	v.SetDefault("output.dir", ".")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("llm.provider", string(d.Provider))
	v.SetDefault("llm.model", d.Model)
	v.SetDefault("llm.endpoint", d.Endpoint)
	v.SetDefault("llm.timeout_ms", d.TimeoutMs)
	v.SetDefault("llm.analyze_timeout_ms", d.Tasks[llm.TaskAnalyze].TimeoutMs)
	v.SetDefault("llm.draft_timeout_ms", d.Tasks[llm.TaskDraft].TimeoutMs)
	v.SetDefault("llm.log_calls", false)
	v.SetDefault("llm.vertex.project", d.Vertex.Project)
	v.SetDefault("llm.vertex.location", d.Vertex.Location)
	v.SetDefault("llm.vertex.credentials_file", d.Vertex.CredentialsFile)
	v.SetDefault("llm.vertex.credentials_json", "")
}

// ModelConfig converts the file/env settings into the llm package's config.
// Validate must have passed.
func (c *Config) ModelConfig() llm.LLMConfig {
	out := llm.DefaultConfig()
	out.Provider = llm.Provider(c.LLM.Provider)
	out.Model = c.LLM.Model
	out.Endpoint = strings.TrimRight(c.LLM.Endpoint, "/")
	out.TimeoutMs = c.LLM.TimeoutMs
	out.LogCalls = c.LLM.LogCalls
	out.Vertex = llm.VertexConfig{
		Project:         c.LLM.Vertex.Project,
		Location:        c.LLM.Vertex.Location,
		CredentialsFile: c.LLM.Vertex.CredentialsFile,
		CredentialsJSON: c.LLM.Vertex.CredentialsJSON,
	}

	analyze := out.Tasks[llm.TaskAnalyze]
	analyze.TimeoutMs = c.LLM.AnalyzeTimeoutMs
	out.Tasks[llm.TaskAnalyze] = analyze

	draft := out.Tasks[llm.TaskDraft]
	draft.TimeoutMs = c.LLM.DraftTimeoutMs
	out.Tasks[llm.TaskDraft] = draft

	return out
}
