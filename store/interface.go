package store

import (
	"time"

	"github.com/accordhq/accord/models"
)

// Stats summarizes the state of the store for reporting.
type Stats struct {
	TotalCount          int                           `json:"total_count"`
	RecentActivityCount int                           `json:"recent_activity_count"`
	StatusHistogram     map[models.TaskStatus]int     `json:"status_histogram"`
	ConsensusHistogram  map[models.ConsensusType]int  `json:"consensus_histogram"`
}

// RecentActivityWindow is how far back a task's updated_at may lie to count
// as recent activity in Stats. Policy value, adjustable.
const RecentActivityWindow = 24 * time.Hour

// TaskStore defines the contract for task persistence: a durable key-value
// collection of task records backed by a single document.
//
// Stores are safe for concurrent use within one process. Cross-process
// concurrent writers are a known limitation, not a guarantee; the file lock
// only serializes whole operations.
type TaskStore interface {
	// Initialize configures the store with backend-specific settings such as
	// the document path and format. It must be called before any other
	// operation.
	Initialize(config map[string]string) error

	// CreateTask appends a new task. The id must not already be present.
	CreateTask(task models.Task) (models.Task, error)

	// GetTask retrieves a task by id, or models.ErrTaskNotFound.
	GetTask(id string) (models.Task, error)

	// UpdateTask replaces the stored record matching task.ID and refreshes
	// its updated_at timestamp.
	UpdateTask(task models.Task) (models.Task, error)

	// ListTasks returns tasks, optionally filtered, ordered by updated_at
	// descending. A corrupt backing document yields an empty result and a
	// logged warning rather than an error.
	ListTasks(filterFn func(models.Task) bool) ([]models.Task, error)

	// Stats reports counts over the stored tasks. Like ListTasks, it treats
	// a corrupt document as empty.
	Stats() (Stats, error)

	// DeleteAllTasks removes every task. Destructive.
	DeleteAllTasks() error

	// Close releases the file lock and any other held resources.
	Close() error
}
