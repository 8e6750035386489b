package notice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RiskLevel is the model's free-form risk rating for a clause. The known
// values below are what the analyst prompt asks for; anything else is kept
// verbatim.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "High"
	RiskMedium RiskLevel = "Medium"
	RiskLow    RiskLevel = "Low"
)

// Normalized maps case variants of the known levels onto their constants.
func (r RiskLevel) Normalized() RiskLevel {
	switch strings.ToLower(strings.TrimSpace(string(r))) {
	case "high", "critical":
		return RiskHigh
	case "medium", "moderate":
		return RiskMedium
	case "low":
		return RiskLow
	default:
		return r
	}
}

// Clause is one notice-triggering provision extracted from a contract.
type Clause struct {
	ClauseID     string    `json:"clause_id"`
	Topic        string    `json:"topic"`
	TriggerEvent string    `json:"trigger_event"`
	TimeLimit    string    `json:"time_limit"`
	RiskLevel    RiskLevel `json:"risk_level"`
}

// Label renders the clause as "<id>: <topic> (<time limit>)".
func (c Clause) Label() string {
	return fmt.Sprintf("%s: %s (%s)", c.ClauseID, c.Topic, c.TimeLimit)
}

// MissingFields lists the names of the calendar-required fields that are empty.
func (c Clause) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(c.Topic) == "" {
		missing = append(missing, "topic")
	}
	if strings.TrimSpace(c.ClauseID) == "" {
		missing = append(missing, "clause_id")
	}
	if strings.TrimSpace(c.TriggerEvent) == "" {
		missing = append(missing, "trigger_event")
	}
	if strings.TrimSpace(c.TimeLimit) == "" {
		missing = append(missing, "time_limit")
	}
	return missing
}

// UnmarshalJSON accepts a number or boolean where clause_id or time_limit
// should be a string, keeping its literal text ("time_limit": 10 becomes
// "10").
func (c *Clause) UnmarshalJSON(data []byte) error {
	type plain Clause
	aux := struct {
		*plain
		ClauseID  scalarText `json:"clause_id"`
		TimeLimit scalarText `json:"time_limit"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.ClauseID = string(aux.ClauseID)
	c.TimeLimit = string(aux.TimeLimit)
	return nil
}

// scalarText decodes any JSON scalar as its text. null leaves it empty.
type scalarText string

func (t *scalarText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = scalarText(s)
		return nil
	case data[0] == '{', data[0] == '[':
		return fmt.Errorf("expected a string, got %s", data)
	default:
		*t = scalarText(data)
		return nil
	}
}
