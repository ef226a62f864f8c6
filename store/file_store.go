package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	yaml "gopkg.in/yaml.v3"

	"github.com/accordhq/accord/models"
)

const (
	defaultDataFile   = "tasks.json"
	dataFileKey       = "dataFile"
	dataFileFormatKey = "dataFileFormat"
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	checksumSuffix    = ".checksum"
)

// FileTaskStore implements the TaskStore interface over a single document on
// disk. It supports JSON, YAML, and TOML formats, guards read-modify-write
// cycles with an in-process mutex, and holds a file lock per operation so two
// logical operations in the same process cannot lose updates.
type FileTaskStore struct {
	mu       sync.Mutex
	filePath string
	tasks    map[string]models.Task
	flk      *flock.Flock
	format   string
}

// NewFileTaskStore creates a new instance of FileTaskStore.
// It does not initialize the store; Initialize must be called separately.
func NewFileTaskStore() *FileTaskStore {
	return &FileTaskStore{
		tasks: make(map[string]models.Task),
	}
}

// Initialize configures the FileTaskStore. It expects a 'dataFile' key in the
// config map with the document path; without one it defaults to 'tasks.json'
// in the current working directory. Existing tasks are loaded if the file
// exists.
func (s *FileTaskStore) Initialize(config map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if val, ok := config[dataFileKey]; ok && val != "" {
		s.filePath = val
	} else {
		s.filePath = defaultDataFile
	}

	if val, ok := config[dataFileFormatKey]; ok && val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case formatJSON, formatYAML, formatTOML:
			s.format = formatLower
		default:
			return fmt.Errorf("unsupported dataFileFormat: %s. Supported formats are json, yaml, toml", val)
		}
	} else {
		s.format = defaultDataFormat
	}

	if s.filePath == defaultDataFile && s.format != formatJSON {
		ext := filepath.Ext(s.filePath)
		s.filePath = strings.TrimSuffix(s.filePath, ext) + "." + s.format
	}

	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s.flk = flock.New(s.filePath)
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("failed to acquire initial lock for %s: %w", s.filePath, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	s.tasks = make(map[string]models.Task)
	return s.loadInternal()
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}

// loadInternal reads the document from disk, verifies its checksum, and
// unmarshals it into the in-memory map. Caller must hold s.mu and the file
// lock.
func (s *FileTaskStore) loadInternal() error {
	checksumFilePath := s.filePath + checksumSuffix

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.tasks = make(map[string]models.Task)
			_ = os.Remove(checksumFilePath)
			f, createErr := os.OpenFile(s.filePath, os.O_CREATE|os.O_RDWR, 0o644)
			if createErr != nil {
				return fmt.Errorf("failed to create data file %s: %w", s.filePath, createErr)
			}
			_ = f.Close()
			if err := os.WriteFile(checksumFilePath, []byte(calculateChecksum([]byte{})), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not write initial checksum file %s: %v\n", checksumFilePath, err)
			}
			return nil
		}
		return fmt.Errorf("failed to read data file %s: %w", s.filePath, err)
	}

	if _, err := os.Stat(checksumFilePath); err == nil {
		expectedChecksumBytes, readErr := os.ReadFile(checksumFilePath)
		if readErr != nil {
			return fmt.Errorf("failed to read checksum file %s: %w", checksumFilePath, readErr)
		}
		expectedChecksum := strings.TrimSpace(string(expectedChecksumBytes))
		if actual := calculateChecksum(data); actual != expectedChecksum {
			return fmt.Errorf("checksum mismatch for %s - expected %s, got %s - file is corrupt or tampered", s.filePath, expectedChecksum, actual)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error checking checksum file %s: %w", checksumFilePath, err)
	}

	if len(data) == 0 {
		_ = os.WriteFile(checksumFilePath, []byte(calculateChecksum([]byte{})), 0o644)
		s.tasks = make(map[string]models.Task)
		return nil
	}

	var doc models.TaskDocument
	switch s.format {
	case formatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to unmarshal JSON from %s: %w", s.filePath, err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to unmarshal YAML from %s: %w", s.filePath, err)
		}
	case formatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to unmarshal TOML from %s: %w", s.filePath, err)
		}
	default:
		return fmt.Errorf("unsupported data format for loading: %s", s.format)
	}

	s.tasks = make(map[string]models.Task, len(doc.Tasks))
	for _, task := range doc.Tasks {
		s.tasks[task.ID] = task
	}
	return nil
}

// saveInternal writes the document and its checksum via temp files and atomic
// renames. Caller must hold s.mu and the file lock.
func (s *FileTaskStore) saveInternal() error {
	doc := models.TaskDocument{
		Tasks: make([]models.Task, 0, len(s.tasks)),
	}
	for _, task := range s.tasks {
		doc.Tasks = append(doc.Tasks, task)
	}
	// Stable on-disk ordering keeps diffs readable.
	sort.Slice(doc.Tasks, func(i, j int) bool { return doc.Tasks[i].CreatedAt.Before(doc.Tasks[j].CreatedAt) })

	var marshaledData []byte
	var err error

	switch s.format {
	case formatJSON:
		marshaledData, err = json.MarshalIndent(doc, "", "  ")
	case formatYAML:
		marshaledData, err = yaml.Marshal(doc)
	case formatTOML:
		buf := new(bytes.Buffer)
		if encodeErr := toml.NewEncoder(buf).Encode(doc); encodeErr == nil {
			marshaledData = buf.Bytes()
		} else {
			err = fmt.Errorf("failed to marshal TOML: %w", encodeErr)
		}
	default:
		return fmt.Errorf("unsupported data format for saving: %s", s.format)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal tasks to %s: %w", s.format, err)
	}

	tempFilePath := s.filePath + ".tmp"
	checksumFilePath := s.filePath + checksumSuffix
	tempChecksumFilePath := checksumFilePath + ".tmp"

	defer func() { _ = os.Remove(tempFilePath) }()
	defer func() { _ = os.Remove(tempChecksumFilePath) }()

	if err := os.WriteFile(tempFilePath, marshaledData, 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary data file %s: %w", tempFilePath, err)
	}
	if err := os.WriteFile(tempChecksumFilePath, []byte(calculateChecksum(marshaledData)), 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary checksum file %s: %w", tempChecksumFilePath, err)
	}

	if err := os.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temporary data file %s to %s: %w", tempFilePath, s.filePath, err)
	}
	if err := os.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		return fmt.Errorf("CRITICAL: data file %s updated, but failed to update checksum file %s: %w - store may be inconsistent", s.filePath, checksumFilePath, err)
	}

	return nil
}

// CreateTask appends a new task to the store. The caller supplies the id;
// an already-present id is rejected with models.ErrDuplicateTaskID.
func (s *FileTaskStore) CreateTask(task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flk.Lock(); err != nil {
		return models.Task{}, fmt.Errorf("%w: could not lock file for create: %v", models.ErrPersistence, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	// Reload so the read-modify-write cycle sees the latest on-disk state. A
	// corrupt document must not block new work: warn and start from empty,
	// the same degradation ListTasks applies.
	if err := s.loadInternal(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: task history unreadable, starting with an empty document: %v\n", err)
		s.tasks = make(map[string]models.Task)
	}

	if task.ID == "" {
		return models.Task{}, fmt.Errorf("%w: task id is required", models.ErrValidation)
	}
	if _, exists := s.tasks[task.ID]; exists {
		return models.Task{}, fmt.Errorf("%w: %s", models.ErrDuplicateTaskID, task.ID)
	}

	if task.CreatedAt.IsZero() {
		now := time.Now().UTC()
		task.CreatedAt = now
		task.UpdatedAt = now
	}

	if err := models.ValidateStruct(task); err != nil {
		return models.Task{}, fmt.Errorf("validation failed for new task: %w", err)
	}

	s.tasks[task.ID] = task

	if err := s.saveInternal(); err != nil {
		// Reloading from the unchanged file is the simplest rollback.
		_ = s.loadInternal()
		return models.Task{}, fmt.Errorf("%w: failed to save new task: %v", models.ErrPersistence, err)
	}
	return task, nil
}

// GetTask retrieves a task by its unique identifier.
func (s *FileTaskStore) GetTask(id string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flk.Lock(); err != nil {
		return models.Task{}, fmt.Errorf("%w: failed to acquire lock for get: %v", models.ErrPersistence, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadInternal(); err != nil {
		return models.Task{}, fmt.Errorf("%w: failed to load tasks: %v", models.ErrPersistence, err)
	}

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("%w: %s", models.ErrTaskNotFound, id)
	}
	return task, nil
}

// UpdateTask replaces the stored record matching task.ID and refreshes its
// updated_at timestamp.
func (s *FileTaskStore) UpdateTask(task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flk.Lock(); err != nil {
		return models.Task{}, fmt.Errorf("%w: could not lock file for update: %v", models.ErrPersistence, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	// Same degradation as CreateTask: an unreadable document is treated as
	// empty, so the update resolves to ErrTaskNotFound instead of wedging.
	if err := s.loadInternal(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: task history unreadable, starting with an empty document: %v\n", err)
		s.tasks = make(map[string]models.Task)
	}

	original, exists := s.tasks[task.ID]
	if !exists {
		return models.Task{}, fmt.Errorf("%w: %s", models.ErrTaskNotFound, task.ID)
	}

	task.CreatedAt = original.CreatedAt
	task.UpdatedAt = time.Now().UTC()

	if err := models.ValidateStruct(task); err != nil {
		return models.Task{}, fmt.Errorf("validation failed for updated task: %w", err)
	}

	s.tasks[task.ID] = task

	if err := s.saveInternal(); err != nil {
		s.tasks[task.ID] = original
		return models.Task{}, fmt.Errorf("%w: failed to save updated task: %v", models.ErrPersistence, err)
	}
	return task, nil
}

// ListTasks returns tasks ordered by updated_at descending, optionally
// filtered. A corrupt or unreadable document yields an empty result and a
// warning so the store stays usable for new tasks.
func (s *FileTaskStore) ListTasks(filterFn func(models.Task) bool) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flk.Lock(); err != nil {
		return nil, fmt.Errorf("%w: failed to acquire lock for list: %v", models.ErrPersistence, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadInternal(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: task history unreadable, continuing with empty list: %v\n", err)
		s.tasks = make(map[string]models.Task)
		return []models.Task{}, nil
	}

	tasks := make([]models.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if filterFn == nil || filterFn(task) {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].UpdatedAt.After(tasks[j].UpdatedAt) })
	return tasks, nil
}

// Stats reports counts over the stored tasks. Recent activity is any task
// updated within RecentActivityWindow.
func (s *FileTaskStore) Stats() (Stats, error) {
	tasks, err := s.ListTasks(nil)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		TotalCount:         len(tasks),
		StatusHistogram:    make(map[models.TaskStatus]int),
		ConsensusHistogram: make(map[models.ConsensusType]int),
	}
	cutoff := time.Now().UTC().Add(-RecentActivityWindow)
	for _, task := range tasks {
		stats.StatusHistogram[task.Status]++
		if task.LastConsensus != "" {
			stats.ConsensusHistogram[task.LastConsensus]++
		}
		if task.UpdatedAt.After(cutoff) {
			stats.RecentActivityCount++
		}
	}
	return stats, nil
}

// DeleteAllTasks removes every task from the store.
func (s *FileTaskStore) DeleteAllTasks() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("%w: could not lock file for delete: %v", models.ErrPersistence, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	s.tasks = make(map[string]models.Task)
	if err := s.saveInternal(); err != nil {
		return fmt.Errorf("%w: failed to persist empty store: %v", models.ErrPersistence, err)
	}
	return nil
}

// Close releases the file lock.
func (s *FileTaskStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
