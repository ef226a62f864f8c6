package models

import "time"

// EffortLevel is an agent's estimate of how much work a task needs.
type EffortLevel string

const (
	EffortLow    EffortLevel = "low"
	EffortMedium EffortLevel = "medium"
	EffortHigh   EffortLevel = "high"
)

// Opinion is one agent's independent verdict on a task. Opinions are
// immutable once created; re-reviewing a task produces fresh records.
type Opinion struct {
	Agent            AgentRole   `json:"agent"`
	TaskID           string      `json:"task_id"`
	Approval         bool        `json:"approval"`
	Confidence       float64     `json:"confidence"`
	Reasoning        string      `json:"reasoning"`
	SuggestedChanges []string    `json:"suggested_changes,omitempty"`
	EstimatedEffort  EffortLevel `json:"estimated_effort"`
	RiskAssessment   string      `json:"risk_assessment,omitempty"`
	Timestamp        time.Time   `json:"timestamp"`
}

// Complete reports whether the opinion carries enough to take part in a
// consensus evaluation. A zero-value opinion indicates a provider that
// violated its contract.
func (o Opinion) Complete() bool {
	return o.Agent != "" && o.TaskID != ""
}
