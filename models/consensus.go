package models

// ConsensusType classifies how the two opinions relate to each other.
type ConsensusType string

const (
	StrongConsensus ConsensusType = "strong_consensus"
	WeakConsensus   ConsensusType = "weak_consensus"
	StrongRejection ConsensusType = "strong_rejection"
	ConflictOutcome ConsensusType = "conflict"
)

// Recommendation is the actionable outcome of a consensus evaluation.
type Recommendation string

const (
	Proceed            Recommendation = "proceed"
	ProceedWithCaution Recommendation = "proceed_with_caution"
	DoNotProceed       Recommendation = "do_not_proceed"
	NeedsMediation     Recommendation = "needs_mediation"
)

// Consensus is the reduction of two opinions into one recommendation. It is
// recomputed on every review and embedded in the review result; only the
// consensus type is persisted back onto the task record.
type Consensus struct {
	Type                   ConsensusType  `json:"consensus_type"`
	Recommendation         Recommendation `json:"recommendation"`
	AgentAApproval         bool           `json:"agent_a_approval"`
	AgentBApproval         bool           `json:"agent_b_approval"`
	AvgConfidence          float64        `json:"avg_confidence"`
	RiskFactors            []string       `json:"risk_factors,omitempty"`
	SuggestedModifications []string       `json:"suggested_modifications,omitempty"`
}
