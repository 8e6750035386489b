package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/noticepilot/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into an empty directory so no stray
// noticepilot.yaml or .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Empty(t, cfg.Source)
	assert.Equal(t, 51, cfg.PDF.PageLimit)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "vertex", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.0-flash-001", cfg.LLM.Model)
	assert.Equal(t, "cc-claims", cfg.LLM.Vertex.Project)
	assert.Equal(t, "us-central1", cfg.LLM.Vertex.Location)
	assert.Equal(t, "key.json", cfg.LLM.Vertex.CredentialsFile)
	assert.Zero(t, cfg.LLM.TimeoutMs)
	assert.Zero(t, cfg.LLM.AnalyzeTimeoutMs)
	assert.Zero(t, cfg.LLM.DraftTimeoutMs)
	assert.Zero(t, cfg.ModelConfig().TaskTimeout(llm.TaskAnalyze))
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("NOTICEPILOT_AUTH_PASSWORD", "hunter2")
	t.Setenv("NOTICEPILOT_LLM_PROVIDER", "ollama")
	t.Setenv("NOTICEPILOT_LLM_ENDPOINT", "http://models.internal:11434/")
	t.Setenv("NOTICEPILOT_LLM_VERTEX_CREDENTIALS_JSON", `{"type":"service_account"}`)
	t.Setenv("NOTICEPILOT_PDF_PAGE_LIMIT", "10")

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "hunter2", cfg.Auth.Password)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, 10, cfg.PDF.PageLimit)
	assert.Equal(t, `{"type":"service_account"}`, cfg.LLM.Vertex.CredentialsJSON)

	mc := cfg.ModelConfig()
	assert.Equal(t, llm.ProviderOllama, mc.Provider)
	assert.Equal(t, "http://models.internal:11434", mc.Endpoint)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := chdirTemp(t)
	yaml := []byte(`
auth:
  password_hash: "$2a$10$abcdefghijklmnopqrstuv"
output:
  dir: out
log:
  level: debug
  format: json
llm:
  model: gemini-2.5-pro
  analyze_timeout_ms: 0
  draft_timeout_ms: 30000
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "noticepilot.yaml"), yaml, 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Contains(t, cfg.Source, "noticepilot.yaml")
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	mc := cfg.ModelConfig()
	assert.Equal(t, "gemini-2.5-pro", mc.Model)
	assert.Equal(t, 0, mc.Tasks[llm.TaskAnalyze].TimeoutMs)
	assert.Equal(t, mc.TimeoutMs, mc.TaskTimeout(llm.TaskAnalyze))
	assert.Equal(t, 30000, mc.TaskTimeout(llm.TaskDraft))
	assert.Equal(t, 0.4, mc.Tasks[llm.TaskDraft].Temperature)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	dir := chdirTemp(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		chdirTemp(t)
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad provider", func(c *Config) { c.LLM.Provider = "openai" }, "llm.provider"},
		{"zero page limit", func(c *Config) { c.PDF.PageLimit = 0 }, "page_limit"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"empty model", func(c *Config) { c.LLM.Model = "" }, "llm.model"},
		{"negative timeout", func(c *Config) { c.LLM.DraftTimeoutMs = -1 }, "negative"},
		{"vertex without project", func(c *Config) { c.LLM.Vertex.Project = "" }, "llm.vertex.project"},
		{"ollama without endpoint", func(c *Config) {
			c.LLM.Provider = "ollama"
			c.LLM.Endpoint = ""
		}, "llm.endpoint"},
		{"empty output dir", func(c *Config) { c.Output.Dir = " " }, "output.dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
