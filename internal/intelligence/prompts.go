package intelligence

import (
	"strings"

	"github.com/alexanderramin/noticepilot/internal/notice"
)

// analystSystemPrompt instructs the model to pull project metadata and
// notice clauses out of contract text.
const analystSystemPrompt = `ROLE: Senior Contract Administrator (Canadian Construction Law).
OBJECTIVE: Scan the contract and extract TWO things:
1. Project Metadata (Owner Name, Project Name, Contract Number).
2. Notification Requirements (The clauses).

OUTPUT FORMAT:
Return a SINGLE VALID JSON object with this structure:
{
  "metadata": {
    "owner_name": "Name of Owner/Client",
    "project_name": "Name of Project",
    "contract_number": "Contract Ref Number or '` + notice.ContractNumberTBD + `'"
  },
  "clauses": [
    {
      "clause_id": "GC 6.5.1",
      "topic": "Delays",
      "trigger_event": "Delay by Owner",
      "time_limit": "10 Working Days",
      "risk_level": "High"
    }
  ]
}
Output ONLY the JSON. No markdown.`

// contractTextHeader precedes the contract body in the analysis prompt.
const contractTextHeader = "INPUT CONTRACT TEXT:\n"

// drafterPromptTemplate is rendered once per notice. Placeholders are
// substituted verbatim.
const drafterPromptTemplate = `ROLE: Expert Construction Claims Consultant (Canada).
OBJECTIVE: Draft a formal contractual notice.
INPUT DATA:
- Date: {date_str}
- Owner: {owner}
- Attention: {recipient}
- Project: {project}
- Contract #: {contract_num}
- Clause: {clause_id}
- User Cause: {cause}
- User Effect: {effect}

RULES:
1. TONE: Professional, firm, but collaborative. Avoid overly litigious language. Use "Please be advised..."
2. FORMAT: Standard Business Letter.
3. STRUCTURE:
   - Header: {date_str}
   - To: {owner}
   - Attention: {recipient}
   - Re: Notice of {topic} - {project} ({contract_num})
   - Opening: State clearly that on {date_str}, an issue was identified.
   - Body Paragraph 1 (The Facts): Describe what happened versus what was in the contract.
   - Body Paragraph 2 (The Impact): Use bullet points for Schedule/Cost impacts.
   - Contractual Reference: Cite {clause_id} as the basis for the notice.
   - Closing: "We request your direction..." and mention that detailed costs are being tracked.`

// draftFields are the values substituted into drafterPromptTemplate.
type draftFields struct {
	Date        string
	Owner       string
	Recipient   string
	Project     string
	ContractNum string
	ClauseID    string
	Topic       string
	Cause       string
	Effect      string
}

// renderDrafterPrompt fills every placeholder in one pass; placeholder text
// inside a value is left as typed.
func renderDrafterPrompt(f draftFields) string {
	return strings.NewReplacer(
		"{date_str}", f.Date,
		"{owner}", f.Owner,
		"{recipient}", f.Recipient,
		"{project}", f.Project,
		"{contract_num}", f.ContractNum,
		"{clause_id}", f.ClauseID,
		"{topic}", f.Topic,
		"{cause}", f.Cause,
		"{effect}", f.Effect,
	).Replace(drafterPromptTemplate)
}
