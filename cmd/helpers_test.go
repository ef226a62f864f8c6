package cmd

import (
	"path/filepath"
	"testing"

	"github.com/fatih/color"

	"github.com/accordhq/accord/models"
	"github.com/accordhq/accord/types"
)

func TestGetTaskFilePath(t *testing.T) {
	original := appConfig
	t.Cleanup(func() { appConfig = original })

	appConfig = types.AppConfig{
		Project: types.ProjectConfig{RootDir: ".accord", TasksDir: "tasks"},
		Data:    types.DataConfig{File: "tasks.json", Format: "json"},
	}

	want := filepath.Join(".accord", "tasks", "tasks.json")
	if got := GetTaskFilePath(); got != want {
		t.Errorf("GetTaskFilePath() = %q, want %q", got, want)
	}
}

func TestGetStore_InitializesUnderTempRoot(t *testing.T) {
	original := appConfig
	t.Cleanup(func() { appConfig = original })

	appConfig = types.AppConfig{
		Project: types.ProjectConfig{RootDir: t.TempDir(), TasksDir: "tasks"},
		Data:    types.DataConfig{File: "tasks.json", Format: "json"},
	}

	s, err := GetStore()
	if err != nil {
		t.Fatalf("GetStore failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	tasks, err := s.ListTasks(nil)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("fresh store should be empty, got %d tasks", len(tasks))
	}
}

func TestColorStatus_CoversAllStatuses(t *testing.T) {
	// Disable ANSI escapes so the rendered text equals the raw token.
	originalNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = originalNoColor })

	for _, status := range []models.TaskStatus{
		models.StatusProposed, models.StatusUnderReview, models.StatusApproved,
		models.StatusRejected, models.StatusConflict, models.StatusInProgress,
		models.StatusCompleted,
	} {
		if got := colorStatus(status); got != string(status) {
			t.Errorf("colorStatus(%q) = %q with colors disabled", status, got)
		}
	}
}
