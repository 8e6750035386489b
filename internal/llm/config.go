package llm

import "fmt"

// TaskType identifies which pipeline stage is calling the model.
type TaskType string

const (
	TaskAnalyze TaskType = "analyze"
	TaskDraft   TaskType = "draft"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Provider selects the model transport.
type Provider string

const (
	// ProviderVertex calls Gemini on Vertex AI.
	ProviderVertex Provider = "vertex"
	// ProviderOllama calls a hosted endpoint speaking the Ollama generate API.
	ProviderOllama Provider = "ollama"
)

// VertexConfig locates the Vertex AI project and its service account.
type VertexConfig struct {
	Project         string
	Location        string
	CredentialsFile string
	// CredentialsJSON is an inline service-account key; it wins over
	// CredentialsFile when both are set.
	CredentialsJSON string
}

// LLMConfig holds all configuration for the model subsystem.
type LLMConfig struct {
	Provider  Provider
	LogCalls  bool
	Endpoint  string
	Model     string
	TimeoutMs int
	Vertex    VertexConfig
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns the Vertex AI Gemini setup the copilot ships with.
// No timeouts are set: a call waits as long as the service does unless a
// timeout is configured.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider: ProviderVertex,
		Endpoint: "http://localhost:11434",
		Model:    "gemini-2.0-flash-001",
		Vertex: VertexConfig{
			Project:         "cc-claims",
			Location:        "us-central1",
			CredentialsFile: "key.json",
		},
		Tasks: map[TaskType]TaskConfig{
			TaskAnalyze: {Temperature: 0.1, MaxTokens: 8192},
			TaskDraft:   {Temperature: 0.4, MaxTokens: 2048},
		},
	}
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// ParseProvider validates a provider name from configuration.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(s); p {
	case ProviderVertex, ProviderOllama:
		return p, nil
	default:
		return "", fmt.Errorf("unknown llm provider %q (want %q or %q)", s, ProviderVertex, ProviderOllama)
	}
}
