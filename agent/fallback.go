package agent

import (
	"context"
	"strings"
	"time"

	"github.com/accordhq/accord/models"
)

// fallbackConfidence is the fixed confidence of a locally synthesized
// opinion.
const fallbackConfidence = 0.8

// FallbackProvider synthesizes an opinion without any network access, using
// fixed heuristics on the task text. It is the normal path when no endpoint
// credentials are configured, and the degradation target when a remote call
// fails.
type FallbackProvider struct {
	role models.AgentRole
}

// NewFallbackProvider builds a deterministic local provider for one role.
func NewFallbackProvider(role models.AgentRole) *FallbackProvider {
	return &FallbackProvider{role: role}
}

// Role returns the agent role this provider reviews as.
func (p *FallbackProvider) Role() models.AgentRole { return p.role }

// GetOpinion returns a canned approval keyed on keywords in the task text.
func (p *FallbackProvider) GetOpinion(_ context.Context, task models.Task, _ map[string]string) models.Opinion {
	text := strings.ToLower(task.Title + " " + task.Description)

	opinion := models.Opinion{
		Agent:           p.role,
		TaskID:          task.ID,
		Approval:        true,
		Confidence:      fallbackConfidence,
		Reasoning:       "Locally synthesized opinion: no remote reviewer was reachable, applying default heuristics.",
		EstimatedEffort: models.EffortMedium,
		Timestamp:       time.Now().UTC(),
	}

	switch {
	case strings.Contains(text, "review"):
		opinion.SuggestedChanges = []string{
			"Scope the review to the files listed on the task",
			"Record findings as follow-up tasks instead of inline fixes",
		}
		opinion.RiskAssessment = "Low risk: review work does not modify code."
		opinion.EstimatedEffort = models.EffortLow
	case strings.Contains(text, "analysis"), strings.Contains(text, "analyze"):
		opinion.SuggestedChanges = []string{
			"State the questions the analysis should answer before starting",
			"Capture results where the next cycle can consume them",
		}
		opinion.RiskAssessment = "Low risk: analysis work is read-only."
		opinion.EstimatedEffort = models.EffortLow
	default:
		opinion.SuggestedChanges = []string{
			"Keep the change small and add tests alongside it",
		}
		opinion.RiskAssessment = "Moderate risk: unreviewed heuristic approval, verify before shipping."
	}

	return opinion
}
