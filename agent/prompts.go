package agent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/accordhq/accord/models"
)

// Role system prompts. Agent A reviews for design and correctness; agent B
// reviews for implementation pragmatics. Both are instructed to answer with a
// single JSON object so the response can be parsed mechanically.
const (
	agentAReviewSystemPrompt = `You are a senior software architect reviewing a proposed code change.
Judge it on correctness, design coherence, and long-term maintainability.
Be skeptical of changes that touch many files or alter behavior without tests.

Respond with ONLY a single JSON object in this exact shape:
{
  "approval": true,
  "confidence": 0.0,
  "reasoning": "one or two sentences",
  "suggested_changes": ["..."],
  "estimated_effort": "low|medium|high",
  "risk_assessment": "one sentence, empty string if negligible"
}`

	agentBReviewSystemPrompt = `You are a pragmatic staff engineer reviewing a proposed code change.
Judge it on implementation cost, blast radius, and whether it ships value now.
Prefer small reversible changes over sweeping refactors.

Respond with ONLY a single JSON object in this exact shape:
{
  "approval": true,
  "confidence": 0.0,
  "reasoning": "one or two sentences",
  "suggested_changes": ["..."],
  "estimated_effort": "low|medium|high",
  "risk_assessment": "one sentence, empty string if negligible"
}`
)

// systemPromptFor returns the role persona prompt.
func systemPromptFor(role models.AgentRole) string {
	if role == models.AgentB {
		return agentBReviewSystemPrompt
	}
	return agentAReviewSystemPrompt
}

// buildReviewPrompt renders the task and any caller-supplied context into the
// user prompt.
func buildReviewPrompt(task models.Task, extra map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Proposed task: %s\n\n", task.Title)
	fmt.Fprintf(&b, "Description:\n%s\n\n", task.Description)
	fmt.Fprintf(&b, "Priority: %s\nProposed by: %s\n", task.Priority, task.ProposedBy)
	if len(task.FilesAffected) > 0 {
		fmt.Fprintf(&b, "Files affected:\n- %s\n", strings.Join(task.FilesAffected, "\n- "))
	}
	if len(extra) > 0 {
		keys := make([]string, 0, len(extra))
		for k := range extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("\nAdditional context:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %s\n", k, extra[k])
		}
	}
	b.WriteString("\nReview this task and answer with the JSON object only.")
	return b.String()
}
