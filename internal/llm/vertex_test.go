package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	resp     *genai.GenerateContentResponse
	err      error
	wait     bool
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	f.config = config
	if f.wait {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(text, genai.RoleModel),
		}},
	}
}

func TestVertexClient_Generate_Success(t *testing.T) {
	models := &fakeModels{resp: textResponse("Dear Project Manager,")}
	client := newVertexClient(DefaultConfig(), models, nil)

	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskDraft,
		SystemPrompt: "You are a Senior Construction Lawyer.",
		UserPrompt:   "Write the notice.",
	})

	require.NoError(t, err)
	assert.Equal(t, "Dear Project Manager,", resp.Text)
	assert.Equal(t, "gemini-2.0-flash-001", resp.Model)
	assert.Equal(t, "gemini-2.0-flash-001", models.model)
	require.Len(t, models.contents, 1)
	assert.Equal(t, "Write the notice.", models.contents[0].Parts[0].Text)
	require.NotNil(t, models.config.SystemInstruction)
	assert.Equal(t, "You are a Senior Construction Lawyer.", models.config.SystemInstruction.Parts[0].Text)
	assert.InDelta(t, 0.4, float64(*models.config.Temperature), 1e-6)
	assert.Equal(t, int32(2048), models.config.MaxOutputTokens)
}

func TestVertexClient_Generate_EmptyResponse(t *testing.T) {
	models := &fakeModels{resp: &genai.GenerateContentResponse{}}
	client := newVertexClient(DefaultConfig(), models, nil)

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskAnalyze, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestVertexClient_Generate_ServiceError(t *testing.T) {
	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}
	models := &fakeModels{err: errors.New("permission denied")}
	client := newVertexClient(DefaultConfig(), models, obs)

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskAnalyze, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.False(t, captured.Success)
	assert.Equal(t, ProviderVertex, captured.Provider)
	assert.Equal(t, "REQUEST_FAILED", captured.ErrorCode)
}

func TestVertexClient_Generate_Timeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tasks[TaskAnalyze] = TaskConfig{Temperature: 0.1, MaxTokens: 8192, TimeoutMs: 20}
	client := newVertexClient(cfg, &fakeModels{wait: true}, nil)

	start := time.Now()
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskAnalyze, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestVertexClient_Generate_CallerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := newVertexClient(DefaultConfig(), &fakeModels{wait: true}, nil)

	_, err := client.Generate(ctx, GenerateRequest{Task: TaskDraft, UserPrompt: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}
