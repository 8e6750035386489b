package intelligence

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/noticepilot/internal/llm"
	"github.com/alexanderramin/noticepilot/internal/notice"
)

// ErrAnalysisFailed marks a failed extraction attempt. The accompanying
// Analysis is always the empty-valid value.
var ErrAnalysisFailed = errors.New("contract analysis failed")

// ExtractionService turns contract text into project metadata and clauses.
type ExtractionService interface {
	// Analyze makes one model call. On any failure it returns
	// notice.EmptyAnalysis() together with an error wrapping ErrAnalysisFailed.
	Analyze(ctx context.Context, contractText string) (notice.Analysis, error)
}

type extractionService struct {
	client llm.LLMClient
}

// NewExtractionService creates an ExtractionService backed by an LLM client.
func NewExtractionService(client llm.LLMClient) ExtractionService {
	return &extractionService{client: client}
}

func (s *extractionService) Analyze(ctx context.Context, contractText string) (notice.Analysis, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskAnalyze,
		SystemPrompt: analystSystemPrompt,
		UserPrompt:   contractTextHeader + contractText,
	})
	if err != nil {
		return notice.EmptyAnalysis(), fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	env, err := llm.ExtractJSON[analysisEnvelope](resp.Text, requireAnalysisKeys)
	if err != nil {
		return notice.EmptyAnalysis(), fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	analysis := notice.EmptyAnalysis()
	if env.Metadata != nil {
		analysis.Metadata = *env.Metadata
	}
	if env.Clauses != nil {
		analysis.Clauses = env.Clauses
	}
	return analysis, nil
}

// analysisEnvelope records which top-level keys the model actually sent.
type analysisEnvelope struct {
	Metadata *notice.ProjectMetadata `json:"metadata"`
	Clauses  []notice.Clause         `json:"clauses"`
}

// requireAnalysisKeys rejects objects carrying neither metadata nor clauses,
// such as an error payload or the first element of a bare clause array.
func requireAnalysisKeys(env analysisEnvelope) error {
	if env.Metadata == nil && env.Clauses == nil {
		return errors.New("response has neither metadata nor clauses")
	}
	return nil
}
