package intelligence

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/noticepilot/internal/llm"
	"github.com/alexanderramin/noticepilot/internal/notice"
)

// ErrDraftFailed wraps any failure of the drafting call.
var ErrDraftFailed = errors.New("notice drafting failed")

// DraftingService writes a notice letter for a single clause.
type DraftingService interface {
	// Draft makes one model call and returns its text unmodified.
	Draft(ctx context.Context, clause notice.Clause, to notice.RecipientInfo, in notice.NoticeInputs) (notice.Draft, error)
}

type draftingService struct {
	client llm.LLMClient
}

// NewDraftingService creates a DraftingService backed by an LLM client.
func NewDraftingService(client llm.LLMClient) DraftingService {
	return &draftingService{client: client}
}

func (s *draftingService) Draft(ctx context.Context, clause notice.Clause, to notice.RecipientInfo, in notice.NoticeInputs) (notice.Draft, error) {
	prompt := renderDrafterPrompt(draftFields{
		Date:        in.DateString(),
		Owner:       to.Owner,
		Recipient:   to.Recipient,
		Project:     to.Project,
		ContractNum: to.ContractNum,
		ClauseID:    clause.ClauseID,
		Topic:       clause.Topic,
		Cause:       in.Cause,
		Effect:      in.Effect,
	})

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:       llm.TaskDraft,
		UserPrompt: prompt,
	})
	if err != nil {
		return notice.Draft{}, fmt.Errorf("%w for %s: %w", ErrDraftFailed, clause.ClauseID, err)
	}

	return notice.Draft{ClauseID: clause.ClauseID, Text: resp.Text}, nil
}
