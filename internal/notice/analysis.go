package notice

// ProjectMetadata identifies the contract a set of clauses came from.
type ProjectMetadata struct {
	OwnerName      string `json:"owner_name,omitempty"`
	ProjectName    string `json:"project_name,omitempty"`
	ContractNumber string `json:"contract_number,omitempty"`
}

// ContractNumberTBD is the sentinel the model is instructed to use when no
// contract reference appears in the document.
const ContractNumberTBD = "TBD"

// DisplayProject returns the project name, or a placeholder when unknown.
func (m ProjectMetadata) DisplayProject() string {
	return CoalesceStr(m.ProjectName, "Unknown Project")
}

// DisplayOwner returns the owner name, or a placeholder when unknown.
func (m ProjectMetadata) DisplayOwner() string {
	return CoalesceStr(m.OwnerName, "Unknown")
}

// DisplayContract returns the contract number, or "N/A" when unknown.
func (m ProjectMetadata) DisplayContract() string {
	return CoalesceStr(m.ContractNumber, "N/A")
}

// Analysis is the result of one extraction pass over a contract. A new
// analysis always replaces the previous one wholesale.
type Analysis struct {
	Metadata ProjectMetadata `json:"metadata"`
	Clauses  []Clause        `json:"clauses"`
}

// EmptyAnalysis returns the empty-but-valid result used when extraction fails.
func EmptyAnalysis() Analysis {
	return Analysis{Clauses: []Clause{}}
}

// IsEmpty reports whether the analysis found no clauses.
func (a Analysis) IsEmpty() bool {
	return len(a.Clauses) == 0
}

// FindClause returns the index of the first clause with the given id.
func (a Analysis) FindClause(clauseID string) (int, bool) {
	for i, c := range a.Clauses {
		if c.ClauseID == clauseID {
			return i, true
		}
	}
	return -1, false
}
