package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TaskStatus represents the review lifecycle state of a task.
type TaskStatus string

const (
	StatusProposed    TaskStatus = "proposed"
	StatusUnderReview TaskStatus = "under-review"
	StatusApproved    TaskStatus = "approved"
	StatusRejected    TaskStatus = "rejected"
	StatusConflict    TaskStatus = "conflict"
	StatusInProgress  TaskStatus = "in-progress"
	StatusCompleted   TaskStatus = "completed"
)

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// AgentRole identifies one of the two reviewing agents.
type AgentRole string

const (
	AgentA AgentRole = "agent-a"
	AgentB AgentRole = "agent-b"
)

// ParsePriority converts a free string into a TaskPriority, defaulting to
// medium for empty input.
func ParsePriority(s string) (TaskPriority, error) {
	switch p := TaskPriority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown priority %q", ErrValidation, s)
	}
}

// ParseAgentRole converts a string token into an AgentRole.
func ParseAgentRole(s string) (AgentRole, error) {
	switch r := AgentRole(strings.ToLower(strings.TrimSpace(s))); r {
	case AgentA, AgentB:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown agent role %q", ErrValidation, s)
	}
}

// ParseStatus converts a string token into a TaskStatus.
func ParseStatus(s string) (TaskStatus, error) {
	switch st := TaskStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusProposed, StatusUnderReview, StatusApproved, StatusRejected,
		StatusConflict, StatusInProgress, StatusCompleted:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}
}

// Task is a unit of proposed work moving through the two-agent review
// lifecycle. JSON field names follow the persisted document format.
type Task struct {
	ID            string        `json:"id" validate:"required"`
	Title         string        `json:"title" validate:"required,min=1,max=255"`
	Description   string        `json:"description" validate:"required"`
	Priority      TaskPriority  `json:"priority" validate:"required,oneof=low medium high critical"`
	ProposedBy    AgentRole     `json:"proposed_by" validate:"required,oneof=agent-a agent-b"`
	FilesAffected []string      `json:"files_affected,omitempty"`
	Status        TaskStatus    `json:"status" validate:"required,oneof=proposed under-review approved rejected conflict in-progress completed"`
	LastConsensus ConsensusType `json:"last_consensus,omitempty" validate:"omitempty,oneof=strong_consensus weak_consensus strong_rejection conflict"`
	CreatedAt     time.Time     `json:"created_at" validate:"required"`
	UpdatedAt     time.Time     `json:"updated_at" validate:"required,gtefield=CreatedAt"`
}

// TaskDocument is the shape of the backing store document.
type TaskDocument struct {
	Tasks []Task `json:"tasks"`
}

var validate = validator.New()

// ValidateStruct performs validation on any struct carrying validation tags.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var msgs []string
		for _, e := range err.(validator.ValidationErrors) {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed rule '%s'", e.StructNamespace(), e.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
	}
	return nil
}
