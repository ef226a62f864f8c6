package workflow

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/accordhq/accord/models"
)

// MaxProposalsPerCycle caps how many candidate tasks one cycle will review.
const MaxProposalsPerCycle = 5

// CycleOptions configures one run of the development cycle.
type CycleOptions struct {
	FocusAreas    []string
	MinConfidence float64
	DryRun        bool
	Verbose       bool
}

// TaskOutcome is the per-task line item of a cycle summary.
type TaskOutcome struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	ConsensusType models.ConsensusType `json:"consensus_type,omitempty"`
	Implemented   bool                 `json:"implemented"`
	Error         string               `json:"error,omitempty"`
}

// CycleSummary is the result of one analyze -> propose -> review -> apply
// batch.
type CycleSummary struct {
	ID          string                 `json:"id"`
	StartedAt   time.Time              `json:"started_at"`
	DryRun      bool                   `json:"dry_run"`
	Proposed    int                    `json:"proposed_tasks"`
	Approved    int                    `json:"approved_tasks"`
	Implemented int                    `json:"implemented_tasks"`
	Analysis    map[string]interface{} `json:"analysis,omitempty"`
	Tasks       []TaskOutcome          `json:"tasks"`
}

// CycleRunner drives an end-to-end batch: analyze the repository, generate
// proposals, review each through the coordinator, apply the approved ones,
// and summarize.
type CycleRunner struct {
	coordinator *Coordinator
	analyzer    Analyzer
	proposer    ProposalGenerator
	applier     CodeApplier
}

// NewCycleRunner wires the coordinator and the three collaborators together.
func NewCycleRunner(coordinator *Coordinator, analyzer Analyzer, proposer ProposalGenerator, applier CodeApplier) *CycleRunner {
	return &CycleRunner{coordinator: coordinator, analyzer: analyzer, proposer: proposer, applier: applier}
}

// RunCycle executes one batch. Collaborator failures never abort the cycle:
// a failed analysis or proposal round yields zero proposals, and a failed
// review or application is recorded on that task's outcome while the rest of
// the batch continues. A summary is always produced.
func (r *CycleRunner) RunCycle(ctx context.Context, opts CycleOptions) CycleSummary {
	if opts.MinConfidence <= 0 {
		opts.MinConfidence = DefaultMinConfidence
	}

	summary := CycleSummary{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		DryRun:    opts.DryRun,
	}

	analysis, err := r.analyzer.Analyze(ctx, opts.FocusAreas)
	if err != nil {
		warnf(opts, "repository analysis failed, continuing without it: %v", err)
		analysis = map[string]interface{}{}
	}
	summary.Analysis = analysis

	proposals, err := r.proposer.Propose(ctx, analysis)
	if err != nil {
		warnf(opts, "proposal generation failed, treating as zero proposals: %v", err)
		proposals = nil
	}
	proposals = sanitizeProposals(proposals)
	summary.Proposed = len(proposals)

	type approvedTask struct {
		task  models.Task
		files map[string]string
	}
	var approved []approvedTask

	for _, proposal := range proposals {
		outcome := TaskOutcome{Title: proposal.Title}

		priority, err := models.ParsePriority(proposal.Priority)
		if err != nil {
			priority = models.PriorityMedium
		}

		task, err := r.coordinator.CreateTask(CreateTaskParams{
			Title:         proposal.Title,
			Description:   proposal.Description,
			Priority:      priority,
			ProposedBy:    models.AgentA,
			FilesAffected: proposal.FilesAffected,
		})
		if err != nil {
			outcome.Error = err.Error()
			summary.Tasks = append(summary.Tasks, outcome)
			warnf(opts, "creating task %q failed: %v", proposal.Title, err)
			continue
		}
		outcome.ID = task.ID

		result, err := r.coordinator.Review(ctx, task.ID, opts.MinConfidence, analysisContext(analysis))
		if err != nil {
			outcome.Error = err.Error()
			summary.Tasks = append(summary.Tasks, outcome)
			warnf(opts, "reviewing task %s failed: %v", task.ID, err)
			continue
		}
		outcome.ConsensusType = result.Consensus.Type

		if approvedForCycle(result.Consensus, opts.MinConfidence) {
			summary.Approved++
			approved = append(approved, approvedTask{task: result.Task, files: proposal.Files})
		}
		summary.Tasks = append(summary.Tasks, outcome)
	}

	if opts.DryRun || len(approved) == 0 {
		return summary
	}

	// Applications run sequentially: later ones may depend on file state left
	// by earlier ones.
	for _, a := range approved {
		outcome := findOutcome(summary.Tasks, a.task.ID)
		if len(a.files) == 0 {
			continue
		}
		if _, err := r.coordinator.MarkInProgress(a.task.ID); err != nil {
			outcome.Error = err.Error()
			continue
		}
		commitMessage := fmt.Sprintf("accord: %s", a.task.Title)
		if err := r.applier.Apply(ctx, a.files, commitMessage, string(a.task.ProposedBy)); err != nil {
			outcome.Error = err.Error()
			warnf(opts, "applying task %s failed: %v", a.task.ID, err)
			continue
		}
		if _, err := r.coordinator.MarkCompleted(a.task.ID); err != nil {
			outcome.Error = err.Error()
			continue
		}
		outcome.Implemented = true
		summary.Implemented++
	}

	return summary
}

// approvedForCycle applies the cycle's acceptance rule: a plain proceed, or a
// cautious proceed whose confidence clears the caller threshold.
func approvedForCycle(verdict models.Consensus, minConfidence float64) bool {
	if verdict.Recommendation == models.Proceed {
		return true
	}
	return verdict.Recommendation == models.ProceedWithCaution && verdict.AvgConfidence >= minConfidence
}

// sanitizeProposals drops descriptors without a title and caps the batch.
func sanitizeProposals(proposals []TaskProposal) []TaskProposal {
	var out []TaskProposal
	for _, p := range proposals {
		if p.Title == "" {
			continue
		}
		if p.Description == "" {
			p.Description = p.Title
		}
		out = append(out, p)
		if len(out) == MaxProposalsPerCycle {
			break
		}
	}
	return out
}

// analysisContext flattens string-valued analysis entries into the opinion
// provider context bag.
func analysisContext(analysis map[string]interface{}) map[string]string {
	if len(analysis) == 0 {
		return nil
	}
	out := make(map[string]string, len(analysis))
	for k, v := range analysis {
		out[k] = fmt.Sprintf("%v", v)
	}
	return out
}

func findOutcome(outcomes []TaskOutcome, id string) *TaskOutcome {
	for i := range outcomes {
		if outcomes[i].ID == id {
			return &outcomes[i]
		}
	}
	return &TaskOutcome{}
}

func warnf(opts CycleOptions, format string, args ...interface{}) {
	if opts.Verbose {
		fmt.Fprintf(os.Stderr, "[cycle] "+format+"\n", args...)
	}
}
