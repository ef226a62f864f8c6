package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TaskPriority
		wantErr bool
	}{
		{name: "empty defaults to medium", input: "", want: PriorityMedium},
		{name: "low", input: "low", want: PriorityLow},
		{name: "mixed case", input: "High", want: PriorityHigh},
		{name: "whitespace trimmed", input: "  critical  ", want: PriorityCritical},
		{name: "unknown token", input: "urgent", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePriority(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePriority(%q) expected error, got %q", tt.input, got)
				}
				if !errors.Is(err, ErrValidation) {
					t.Errorf("error should wrap ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePriority(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePriority(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAgentRole(t *testing.T) {
	tests := []struct {
		input   string
		want    AgentRole
		wantErr bool
	}{
		{input: "agent-a", want: AgentA},
		{input: "AGENT-B", want: AgentB},
		{input: "agent-c", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseAgentRole(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAgentRole(%q) expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAgentRole(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAgentRole(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []TaskStatus{
		StatusProposed, StatusUnderReview, StatusApproved, StatusRejected,
		StatusConflict, StatusInProgress, StatusCompleted,
	} {
		got, err := ParseStatus(string(valid))
		if err != nil {
			t.Errorf("ParseStatus(%q) failed: %v", valid, err)
		}
		if got != valid {
			t.Errorf("ParseStatus(%q) = %q", valid, got)
		}
	}

	if _, err := ParseStatus("done"); !errors.Is(err, ErrValidation) {
		t.Errorf("ParseStatus(\"done\") should wrap ErrValidation, got %v", err)
	}
}

func validTask() Task {
	now := time.Now().UTC()
	return Task{
		ID:          "01jx3d8e9qnb6s0p7m2k4t8v1w",
		Title:       "Refactor config loading",
		Description: "Split environment and file-based config resolution.",
		Priority:    PriorityMedium,
		ProposedBy:  AgentA,
		Status:      StatusProposed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestTask_ValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr bool
	}{
		{name: "valid task", mutate: func(*Task) {}},
		{name: "empty id", mutate: func(tk *Task) { tk.ID = "" }, wantErr: true},
		{name: "empty title", mutate: func(tk *Task) { tk.Title = "" }, wantErr: true},
		{name: "empty description", mutate: func(tk *Task) { tk.Description = "" }, wantErr: true},
		{name: "invalid status", mutate: func(tk *Task) { tk.Status = "todo" }, wantErr: true},
		{name: "invalid priority", mutate: func(tk *Task) { tk.Priority = "urgent" }, wantErr: true},
		{name: "invalid proposer", mutate: func(tk *Task) { tk.ProposedBy = "agent-c" }, wantErr: true},
		{name: "invalid consensus token", mutate: func(tk *Task) { tk.LastConsensus = "split" }, wantErr: true},
		{name: "valid consensus token", mutate: func(tk *Task) { tk.LastConsensus = WeakConsensus }},
		{
			name:    "updated before created",
			mutate:  func(tk *Task) { tk.UpdatedAt = tk.CreatedAt.Add(-time.Hour) },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := validTask()
			tt.mutate(&task)
			err := ValidateStruct(task)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				if !errors.Is(err, ErrValidation) {
					t.Errorf("error should wrap ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestTask_JSONFieldNames(t *testing.T) {
	task := validTask()
	task.FilesAffected = []string{"store/file_store.go"}
	task.LastConsensus = StrongConsensus

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	for _, key := range []string{
		"id", "title", "description", "priority", "proposed_by",
		"files_affected", "status", "last_consensus", "created_at", "updated_at",
	} {
		if _, ok := doc[key]; !ok {
			t.Errorf("serialized task missing field %q", key)
		}
	}
	if doc["proposed_by"] != "agent-a" {
		t.Errorf("proposed_by = %v, want agent-a", doc["proposed_by"])
	}
	if doc["last_consensus"] != "strong_consensus" {
		t.Errorf("last_consensus = %v, want strong_consensus", doc["last_consensus"])
	}
}

func TestOpinion_Complete(t *testing.T) {
	if (Opinion{}).Complete() {
		t.Error("zero opinion should not be complete")
	}
	if (Opinion{Agent: AgentA}).Complete() {
		t.Error("opinion without task id should not be complete")
	}
	o := Opinion{Agent: AgentB, TaskID: "t1"}
	if !o.Complete() {
		t.Error("opinion with agent and task id should be complete")
	}
}
