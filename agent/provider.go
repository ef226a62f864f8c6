// Package agent implements the two reviewing agents that each produce an
// independent opinion on a task.
package agent

import (
	"context"

	"github.com/accordhq/accord/models"
)

// OpinionProvider produces one opinion for one task from the point of view of
// one agent role. The extra map is an arbitrary bag of caller context (for
// example a repository summary) the agent may consider.
//
// Implementations must not mutate the task and must always return a
// well-formed opinion: remote failures degrade to a deterministic local
// fallback rather than surfacing an error.
type OpinionProvider interface {
	Role() models.AgentRole
	GetOpinion(ctx context.Context, task models.Task, extra map[string]string) models.Opinion
}
