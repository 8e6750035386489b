package intelligence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/noticepilot/internal/llm"
	"github.com/alexanderramin/noticepilot/internal/notice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func delayClause() notice.Clause {
	return notice.Clause{
		ClauseID:     "GC 6.5.1",
		Topic:        "Delays",
		TriggerEvent: "Delay by Owner",
		TimeLimit:    "10 Working Days",
		RiskLevel:    notice.RiskHigh,
	}
}

func sampleRecipient() notice.RecipientInfo {
	return notice.RecipientInfo{
		Owner:       "City of Halifax",
		Recipient:   "Project Manager",
		Project:     "Harbour Bridge Rehabilitation",
		ContractNum: "HB-2026-014",
	}
}

func sampleInputs() notice.NoticeInputs {
	return notice.NoticeInputs{
		EventDate: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		Cause:     "Owner-supplied steel arrived three weeks late.",
		Effect:    "Erection crew idle; critical path slipped.",
	}
}

func TestDraftingService_Draft_RendersEveryField(t *testing.T) {
	client := &mockClient{response: "October 14, 2026\n\nCity of Halifax\n..."}
	svc := NewDraftingService(client)

	_, err := svc.Draft(context.Background(), delayClause(), sampleRecipient(), sampleInputs())
	require.NoError(t, err)

	prompt := client.lastReq.UserPrompt
	assert.Equal(t, llm.TaskDraft, client.lastReq.Task)
	assert.Contains(t, prompt, "- Date: 2026-10-14")
	assert.Contains(t, prompt, "- Owner: City of Halifax")
	assert.Contains(t, prompt, "- Attention: Project Manager")
	assert.Contains(t, prompt, "- Project: Harbour Bridge Rehabilitation")
	assert.Contains(t, prompt, "- Contract #: HB-2026-014")
	assert.Contains(t, prompt, "- Clause: GC 6.5.1")
	assert.Contains(t, prompt, "- User Cause: Owner-supplied steel arrived three weeks late.")
	assert.Contains(t, prompt, "- User Effect: Erection crew idle; critical path slipped.")
	assert.Contains(t, prompt, "Re: Notice of Delays - Harbour Bridge Rehabilitation (HB-2026-014)")
	assert.Contains(t, prompt, "Cite GC 6.5.1 as the basis for the notice.")
	assert.NotContains(t, prompt, "{")
}

func TestDraftingService_Draft_ReturnsRawText(t *testing.T) {
	raw := "  Please be advised...\n\n```not stripped```\n"
	svc := NewDraftingService(&mockClient{response: raw})

	d, err := svc.Draft(context.Background(), delayClause(), sampleRecipient(), sampleInputs())
	require.NoError(t, err)
	assert.Equal(t, raw, d.Text)
	assert.Equal(t, "GC 6.5.1", d.ClauseID)
}

func TestDraftingService_Draft_InputsAreVerbatim(t *testing.T) {
	client := &mockClient{response: "ok"}
	svc := NewDraftingService(client)

	in := sampleInputs()
	in.Cause = "Crane failure {owner} <script>"

	_, err := svc.Draft(context.Background(), delayClause(), sampleRecipient(), in)
	require.NoError(t, err)
	assert.Contains(t, client.lastReq.UserPrompt, "- User Cause: Crane failure {owner} <script>")
}

func TestDraftingService_Draft_PropagatesError(t *testing.T) {
	client := &mockClient{err: errors.New("quota exceeded")}
	svc := NewDraftingService(client)

	d, err := svc.Draft(context.Background(), delayClause(), sampleRecipient(), sampleInputs())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDraftFailed)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Contains(t, err.Error(), "GC 6.5.1")
	assert.Empty(t, d.Text)
	assert.Equal(t, 1, client.calls)
}

func TestRenderDrafterPrompt_EmptyFields(t *testing.T) {
	out := renderDrafterPrompt(draftFields{})
	assert.Contains(t, out, "- Owner: \n")
	assert.NotContains(t, out, "{date_str}")
}
