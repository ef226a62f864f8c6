package workflow

import "context"

// The cycle runner depends on three external collaborators through narrow
// interfaces. Implementations live outside the core; local defaults good
// enough for standalone use are provided in local.go.

// Analyzer inspects the repository and returns an opaque analysis payload
// that is passed through to the proposal generator and into the cycle report.
type Analyzer interface {
	Analyze(ctx context.Context, focusAreas []string) (map[string]interface{}, error)
}

// TaskProposal is one candidate task descriptor from the proposal generator.
// Files carries generated file contents for the applier, keyed by path.
type TaskProposal struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Priority      string            `json:"priority,omitempty"`
	FilesAffected []string          `json:"files_affected,omitempty"`
	Files         map[string]string `json:"files,omitempty"`
}

// ProposalGenerator turns an analysis payload into candidate tasks.
type ProposalGenerator interface {
	Propose(ctx context.Context, analysis map[string]interface{}) ([]TaskProposal, error)
}

// CodeApplier applies generated file contents for one approved task. Errors
// are surfaced to the caller, who records them on the task outcome rather
// than propagating.
type CodeApplier interface {
	Apply(ctx context.Context, files map[string]string, commitMessage, actorLabel string) error
}
