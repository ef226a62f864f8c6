package agent

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/accordhq/accord/llm"
	"github.com/accordhq/accord/models"
)

// opinionPayload is the JSON shape the role prompts ask the model to emit.
type opinionPayload struct {
	Approval         bool     `json:"approval"`
	Confidence       float64  `json:"confidence"`
	Reasoning        string   `json:"reasoning"`
	SuggestedChanges []string `json:"suggested_changes"`
	EstimatedEffort  string   `json:"estimated_effort"`
	RiskAssessment   string   `json:"risk_assessment"`
}

// RemoteProvider asks a remote completion endpoint for an opinion. Any remote
// failure (transport error, timeout, or a response with no parseable JSON)
// degrades to the deterministic fallback so the pipeline always receives a
// well-formed opinion.
type RemoteProvider struct {
	role      models.AgentRole
	completer llm.Completer
	fallback  *FallbackProvider
	timeout   time.Duration
	verbose   bool
}

// NewRemoteProvider builds a provider for one agent role. A non-positive
// timeout selects llm.DefaultRequestTimeout.
func NewRemoteProvider(role models.AgentRole, completer llm.Completer, timeout time.Duration, verbose bool) *RemoteProvider {
	if timeout <= 0 {
		timeout = llm.DefaultRequestTimeout
	}
	return &RemoteProvider{
		role:      role,
		completer: completer,
		fallback:  NewFallbackProvider(role),
		timeout:   timeout,
		verbose:   verbose,
	}
}

// Role returns the agent role this provider reviews as.
func (p *RemoteProvider) Role() models.AgentRole { return p.role }

// GetOpinion requests a review from the remote endpoint, extracting a JSON
// object from its free-text answer. It never returns a malformed opinion.
func (p *RemoteProvider) GetOpinion(ctx context.Context, task models.Task, extra map[string]string) models.Opinion {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	response, err := p.completer.Complete(ctx, llm.Request{
		System: systemPromptFor(p.role),
		Prompt: buildReviewPrompt(task, extra),
	})
	if err != nil {
		p.warnf("remote opinion for task %s failed, using fallback: %v", task.ID, err)
		return p.fallback.GetOpinion(ctx, task, extra)
	}

	payload, ok := llm.ExtractJSON[opinionPayload](response)
	if !ok {
		p.warnf("no JSON object in response for task %s, using fallback", task.ID)
		return p.fallback.GetOpinion(ctx, task, extra)
	}

	return models.Opinion{
		Agent:            p.role,
		TaskID:           task.ID,
		Approval:         payload.Approval,
		Confidence:       clampConfidence(payload.Confidence),
		Reasoning:        payload.Reasoning,
		SuggestedChanges: payload.SuggestedChanges,
		EstimatedEffort:  parseEffort(payload.EstimatedEffort),
		RiskAssessment:   payload.RiskAssessment,
		Timestamp:        time.Now().UTC(),
	}
}

func (p *RemoteProvider) warnf(format string, args ...interface{}) {
	if p.verbose {
		fmt.Fprintf(os.Stderr, "[%s] "+format+"\n", append([]interface{}{p.role}, args...)...)
	}
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

func parseEffort(s string) models.EffortLevel {
	switch models.EffortLevel(s) {
	case models.EffortLow:
		return models.EffortLow
	case models.EffortHigh:
		return models.EffortHigh
	default:
		return models.EffortMedium
	}
}
