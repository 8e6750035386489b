package intelligence

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alexanderramin/noticepilot/internal/llm"
	"github.com/alexanderramin/noticepilot/internal/notice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAnalysisJSON = `{
  "metadata": {
    "owner_name": "City of Halifax",
    "project_name": "Harbour Bridge Rehabilitation",
    "contract_number": "HB-2026-014"
  },
  "clauses": [
    {
      "clause_id": "GC 6.5.1",
      "topic": "Delays",
      "trigger_event": "Delay by Owner",
      "time_limit": "10 Working Days",
      "risk_level": "High"
    },
    {
      "clause_id": "GC 6.6",
      "topic": "Claims for a Change in Contract Price",
      "trigger_event": "Event giving rise to a claim",
      "time_limit": "Immediately",
      "risk_level": "Medium"
    }
  ]
}`

func TestExtractionService_Analyze_ParsesResponse(t *testing.T) {
	client := &mockClient{response: sampleAnalysisJSON}
	svc := NewExtractionService(client)

	got, err := svc.Analyze(context.Background(), "GC 6.5.1 ... within ten (10) Working Days")

	require.NoError(t, err)
	assert.Equal(t, "City of Halifax", got.Metadata.OwnerName)
	assert.Equal(t, "HB-2026-014", got.Metadata.ContractNumber)
	require.Len(t, got.Clauses, 2)
	assert.Equal(t, "GC 6.5.1", got.Clauses[0].ClauseID)
	assert.Equal(t, "GC 6.6", got.Clauses[1].ClauseID)
	assert.Equal(t, notice.RiskHigh, got.Clauses[0].RiskLevel)
	assert.Equal(t, 1, client.calls)
}

func TestExtractionService_Analyze_PromptShape(t *testing.T) {
	client := &mockClient{response: sampleAnalysisJSON}
	svc := NewExtractionService(client)

	_, err := svc.Analyze(context.Background(), "CONTRACT BODY")
	require.NoError(t, err)

	assert.Equal(t, llm.TaskAnalyze, client.lastReq.Task)
	assert.Equal(t, analystSystemPrompt, client.lastReq.SystemPrompt)
	assert.Equal(t, "INPUT CONTRACT TEXT:\nCONTRACT BODY", client.lastReq.UserPrompt)
	assert.Contains(t, client.lastReq.SystemPrompt, "Output ONLY the JSON")
	assert.Contains(t, client.lastReq.SystemPrompt, "or '"+notice.ContractNumberTBD+"'")
}

func TestExtractionService_Analyze_StripsFences(t *testing.T) {
	fenced := "```json\n" + sampleAnalysisJSON + "\n```"
	svc := NewExtractionService(&mockClient{response: fenced})

	got, err := svc.Analyze(context.Background(), "text")
	require.NoError(t, err)

	var want notice.Analysis
	require.NoError(t, json.Unmarshal([]byte(sampleAnalysisJSON), &want))
	assert.Equal(t, want, got)
}

func TestExtractionService_Analyze_MalformedJSONYieldsEmpty(t *testing.T) {
	svc := NewExtractionService(&mockClient{response: `{"metadata": {"owner_name": "X"}, "clauses": [`})

	got, err := svc.Analyze(context.Background(), "text")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAnalysisFailed)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
	assert.Equal(t, notice.EmptyAnalysis(), got)
	assert.NotNil(t, got.Clauses)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"metadata":{},"clauses":[]}`, string(data))
}

func TestExtractionService_Analyze_ModelFailureYieldsEmpty(t *testing.T) {
	client := &mockClient{err: llm.ErrTimeout}
	svc := NewExtractionService(client)

	got, err := svc.Analyze(context.Background(), "text")

	assert.ErrorIs(t, err, ErrAnalysisFailed)
	assert.ErrorIs(t, err, llm.ErrTimeout)
	assert.True(t, got.IsEmpty())
	assert.Equal(t, 1, client.calls, "no retry after a failed call")
}

func TestExtractionService_Analyze_MissingClausesIsEmptySlice(t *testing.T) {
	svc := NewExtractionService(&mockClient{response: `{"metadata":{"project_name":"Depot"}}`})

	got, err := svc.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "Depot", got.Metadata.ProjectName)
	assert.NotNil(t, got.Clauses)
	assert.Empty(t, got.Clauses)
}

func TestExtractionService_Analyze_RejectsWrongShape(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"bare clause array", `[{"clause_id":"GC 6.5.1","topic":"Delays","trigger_event":"Delay by Owner","time_limit":"10 Working Days","risk_level":"High"}]`},
		{"foreign object", `{"error":"input too long"}`},
		{"null keys", `{"metadata":null,"clauses":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewExtractionService(&mockClient{response: tt.response})

			got, err := svc.Analyze(context.Background(), "text")

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrAnalysisFailed)
			assert.ErrorIs(t, err, llm.ErrInvalidOutput)
			assert.Equal(t, notice.EmptyAnalysis(), got)
		})
	}
}

func TestExtractionService_Analyze_EmptyClauseListIsValid(t *testing.T) {
	svc := NewExtractionService(&mockClient{response: `{"clauses":[]}`})

	got, err := svc.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, notice.EmptyAnalysis(), got)
}

func TestExtractionService_Analyze_NumericTimeLimit(t *testing.T) {
	raw := `{"metadata":{},"clauses":[{"clause_id":"GC 6.5.1","topic":"Delays","trigger_event":"Delay by Owner","time_limit":10,"risk_level":"High"}]}`
	svc := NewExtractionService(&mockClient{response: raw})

	got, err := svc.Analyze(context.Background(), "text")
	require.NoError(t, err)
	require.Len(t, got.Clauses, 1)
	assert.Equal(t, "10", got.Clauses[0].TimeLimit)
}

func TestExtractionService_Analyze_ProseAroundJSON(t *testing.T) {
	raw := "Sure, here is the extraction.\n" + sampleAnalysisJSON + "\nLet me know if you need more."
	svc := NewExtractionService(&mockClient{response: raw})

	got, err := svc.Analyze(context.Background(), strings.Repeat("x", 10))
	require.NoError(t, err)
	assert.Len(t, got.Clauses, 2)
}
