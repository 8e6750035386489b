package llm

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
	"google.golang.org/genai"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// contentGenerator is the part of *genai.Models the client calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// vertexClient implements LLMClient with Gemini on Vertex AI.
type vertexClient struct {
	cfg      LLMConfig
	models   contentGenerator
	observer Observer
}

// NewVertexClient resolves service-account credentials and connects to
// Vertex AI. Credential or client errors wrap ErrUnavailable.
func NewVertexClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	creds, err := vertexCredentials(cfg.Vertex)
	if err != nil {
		return nil, fmt.Errorf("%w: loading vertex credentials: %w", ErrUnavailable, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:     genai.BackendVertexAI,
		Project:     cfg.Vertex.Project,
		Location:    cfg.Vertex.Location,
		Credentials: creds,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating vertex client: %w", ErrUnavailable, err)
	}
	return newVertexClient(cfg, client.Models, observer), nil
}

func newVertexClient(cfg LLMConfig, models contentGenerator, observer Observer) *vertexClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &vertexClient{cfg: cfg, models: models, observer: observer}
}

func vertexCredentials(v VertexConfig) (*auth.Credentials, error) {
	opts := &credentials.DetectOptions{Scopes: []string{cloudPlatformScope}}
	switch {
	case v.CredentialsJSON != "":
		opts.CredentialsJSON = []byte(v.CredentialsJSON)
	case v.CredentialsFile != "":
		opts.CredentialsFile = v.CredentialsFile
	}
	return credentials.DetectDefault(opts)
}

func (c *vertexClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	temp, maxTok := c.cfg.taskParams(req)

	ctx, cancel := withTaskTimeout(ctx, c.cfg, req.Task)
	defer cancel()

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(temp)),
	}
	if maxTok > 0 {
		genCfg.MaxOutputTokens = int32(maxTok)
	}
	if req.SystemPrompt != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	resp, err := c.models.GenerateContent(ctx, c.cfg.Model, genai.Text(req.UserPrompt), genCfg)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		err = classify(ctx, err)
		c.observe(req.Task, latency, err)
		return nil, err
	}

	text := resp.Text()
	if text == "" {
		err = fmt.Errorf("%w: empty response", ErrRequestFailed)
		c.observe(req.Task, latency, err)
		return nil, err
	}

	c.observe(req.Task, latency, nil)
	model := resp.ModelVersion
	if model == "" {
		model = c.cfg.Model
	}
	return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
}

func (c *vertexClient) observe(task TaskType, latency int64, err error) {
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      task,
		Provider:  ProviderVertex,
		Model:     c.cfg.Model,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
}
