// Package workflow orchestrates the task review lifecycle and the
// end-to-end development cycle.
package workflow

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sourcegraph/conc"

	"github.com/accordhq/accord/agent"
	"github.com/accordhq/accord/consensus"
	"github.com/accordhq/accord/models"
	"github.com/accordhq/accord/store"
)

// DefaultMinConfidence is the approval threshold applied to cautious
// consensus outcomes when the caller does not supply one.
const DefaultMinConfidence = 0.7

// CreateTaskParams carries the caller input for a new task.
type CreateTaskParams struct {
	Title         string
	Description   string
	Priority      models.TaskPriority
	ProposedBy    models.AgentRole
	FilesAffected []string
}

// ReviewResult bundles everything one review produced.
type ReviewResult struct {
	Task      models.Task      `json:"task"`
	OpinionA  models.Opinion   `json:"opinion_a"`
	OpinionB  models.Opinion   `json:"opinion_b"`
	Consensus models.Consensus `json:"consensus"`
}

// CoordinatorStats extends store stats with the consensus histogram derived
// from the last persisted consensus per task.
type CoordinatorStats = store.Stats

// Coordinator drives a task through create -> review -> decide, persisting
// status transitions through the task store.
type Coordinator struct {
	store     store.TaskStore
	providerA agent.OpinionProvider
	providerB agent.OpinionProvider
}

// NewCoordinator wires the store and the two opinion providers together.
func NewCoordinator(ts store.TaskStore, providerA, providerB agent.OpinionProvider) *Coordinator {
	return &Coordinator{store: ts, providerA: providerA, providerB: providerB}
}

// newTaskID generates a time-ordered identifier with random tail.
func newTaskID() string {
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader).String())
}

// CreateTask validates the input, generates an id, and persists a new task in
// the proposed state.
func (c *Coordinator) CreateTask(params CreateTaskParams) (models.Task, error) {
	if strings.TrimSpace(params.Title) == "" {
		return models.Task{}, fmt.Errorf("%w: title is required", models.ErrValidation)
	}
	if strings.TrimSpace(params.Description) == "" {
		return models.Task{}, fmt.Errorf("%w: description is required", models.ErrValidation)
	}

	now := time.Now().UTC()
	task := models.Task{
		ID:            newTaskID(),
		Title:         params.Title,
		Description:   params.Description,
		Priority:      params.Priority,
		ProposedBy:    params.ProposedBy,
		FilesAffected: params.FilesAffected,
		Status:        models.StatusProposed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := models.ValidateStruct(task); err != nil {
		return models.Task{}, err
	}
	return c.store.CreateTask(task)
}

// Review loads the task, collects one opinion from each agent, reduces them
// to a consensus, applies the status transition, and persists the result.
//
// The two opinion calls have no ordering dependency and run concurrently, so
// review latency is bounded by the slower provider rather than the sum.
// Re-running a review produces a fresh independent verdict; opinions are
// never cached.
func (c *Coordinator) Review(ctx context.Context, taskID string, minConfidence float64, extra map[string]string) (ReviewResult, error) {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}

	task, err := c.store.GetTask(taskID)
	if err != nil {
		return ReviewResult{}, err
	}

	// Implemented work cannot be demoted by a fresh verdict; completed and
	// in-progress have no edge back into review.
	if task.Status == models.StatusInProgress || task.Status == models.StatusCompleted {
		return ReviewResult{}, fmt.Errorf("%w: task %s is %s and no longer reviewable", models.ErrValidation, taskID, task.Status)
	}

	task.Status = models.StatusUnderReview
	task, err = c.store.UpdateTask(task)
	if err != nil {
		return ReviewResult{}, err
	}

	var opinionA, opinionB models.Opinion
	var wg conc.WaitGroup
	wg.Go(func() { opinionA = c.providerA.GetOpinion(ctx, task, extra) })
	wg.Go(func() { opinionB = c.providerB.GetOpinion(ctx, task, extra) })
	wg.Wait()

	verdict, err := consensus.Evaluate(task, opinionA, opinionB)
	if err != nil {
		return ReviewResult{}, err
	}

	task.Status = statusFor(verdict, minConfidence)
	task.LastConsensus = verdict.Type
	task, err = c.store.UpdateTask(task)
	if err != nil {
		return ReviewResult{}, err
	}

	return ReviewResult{Task: task, OpinionA: opinionA, OpinionB: opinionB, Consensus: verdict}, nil
}

// statusFor maps a consensus verdict onto the task state machine.
func statusFor(verdict models.Consensus, minConfidence float64) models.TaskStatus {
	switch verdict.Recommendation {
	case models.Proceed:
		return models.StatusApproved
	case models.ProceedWithCaution:
		if verdict.AvgConfidence >= minConfidence {
			return models.StatusApproved
		}
		return models.StatusRejected
	case models.NeedsMediation:
		return models.StatusConflict
	default:
		return models.StatusRejected
	}
}

// MarkInProgress transitions an approved task to in-progress, recording that
// an external applier picked it up.
func (c *Coordinator) MarkInProgress(taskID string) (models.Task, error) {
	return c.transition(taskID, models.StatusApproved, models.StatusInProgress)
}

// MarkCompleted transitions an in-progress task to completed after external
// post-checks pass.
func (c *Coordinator) MarkCompleted(taskID string) (models.Task, error) {
	return c.transition(taskID, models.StatusInProgress, models.StatusCompleted)
}

func (c *Coordinator) transition(taskID string, from, to models.TaskStatus) (models.Task, error) {
	task, err := c.store.GetTask(taskID)
	if err != nil {
		return models.Task{}, err
	}
	if task.Status != from {
		return models.Task{}, fmt.Errorf("%w: task %s is %s, expected %s", models.ErrValidation, taskID, task.Status, from)
	}
	task.Status = to
	return c.store.UpdateTask(task)
}

// ListTasks exposes the store listing, optionally filtered by status.
func (c *Coordinator) ListTasks(status models.TaskStatus) ([]models.Task, error) {
	var filterFn func(models.Task) bool
	if status != "" {
		filterFn = func(t models.Task) bool { return t.Status == status }
	}
	return c.store.ListTasks(filterFn)
}

// Stats reports store counts plus the consensus histogram.
func (c *Coordinator) Stats() (CoordinatorStats, error) {
	return c.store.Stats()
}
