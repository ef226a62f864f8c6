package consensus

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/accordhq/accord/models"
)

func reviewedTask() models.Task {
	now := time.Now().UTC()
	return models.Task{
		ID:          "task-under-test",
		Title:       "Tighten input validation",
		Description: "Reject unknown enum tokens at the CLI boundary.",
		Priority:    models.PriorityMedium,
		ProposedBy:  models.AgentA,
		Status:      models.StatusUnderReview,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func opinion(role models.AgentRole, approval bool, confidence float64) models.Opinion {
	return models.Opinion{
		Agent:           role,
		TaskID:          "task-under-test",
		Approval:        approval,
		Confidence:      confidence,
		Reasoning:       "test reasoning",
		EstimatedEffort: models.EffortMedium,
		Timestamp:       time.Now().UTC(),
	}
}

func TestEvaluate_Classification(t *testing.T) {
	tests := []struct {
		name         string
		approvalA    bool
		confidenceA  float64
		approvalB    bool
		confidenceB  float64
		wantType     models.ConsensusType
		wantRec      models.Recommendation
		wantAvg      float64
	}{
		{
			name:      "both approve high confidence",
			approvalA: true, confidenceA: 0.9,
			approvalB: true, confidenceB: 0.8,
			wantType: models.StrongConsensus,
			wantRec:  models.Proceed,
			wantAvg:  0.85,
		},
		{
			name:      "threshold boundary is inclusive",
			approvalA: true, confidenceA: 0.75,
			approvalB: true, confidenceB: 0.75,
			wantType: models.StrongConsensus,
			wantRec:  models.Proceed,
			wantAvg:  0.75,
		},
		{
			name:      "both approve low confidence",
			approvalA: true, confidenceA: 0.70,
			approvalB: true, confidenceB: 0.79,
			wantType: models.WeakConsensus,
			wantRec:  models.ProceedWithCaution,
			wantAvg:  0.745,
		},
		{
			name:      "both reject",
			approvalA: false, confidenceA: 0.9,
			approvalB: false, confidenceB: 0.95,
			wantType: models.StrongRejection,
			wantRec:  models.DoNotProceed,
			wantAvg:  0.925,
		},
		{
			name:      "disagreement is conflict regardless of confidence",
			approvalA: true, confidenceA: 0.99,
			approvalB: false, confidenceB: 0.99,
			wantType: models.ConflictOutcome,
			wantRec:  models.NeedsMediation,
			wantAvg:  0.99,
		},
		{
			name:      "disagreement the other way",
			approvalA: false, confidenceA: 0.2,
			approvalB: true, confidenceB: 0.2,
			wantType: models.ConflictOutcome,
			wantRec:  models.NeedsMediation,
			wantAvg:  0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := opinion(models.AgentA, tt.approvalA, tt.confidenceA)
			b := opinion(models.AgentB, tt.approvalB, tt.confidenceB)

			got, err := Evaluate(reviewedTask(), a, b)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if got.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", got.Type, tt.wantType)
			}
			if got.Recommendation != tt.wantRec {
				t.Errorf("Recommendation = %q, want %q", got.Recommendation, tt.wantRec)
			}
			if math.Abs(got.AvgConfidence-tt.wantAvg) > 1e-9 {
				t.Errorf("AvgConfidence = %v, want %v", got.AvgConfidence, tt.wantAvg)
			}
			if got.AgentAApproval != tt.approvalA || got.AgentBApproval != tt.approvalB {
				t.Errorf("approval flags not carried through: %+v", got)
			}
		})
	}
}

func TestEvaluate_Pure(t *testing.T) {
	task := reviewedTask()
	a := opinion(models.AgentA, true, 0.8)
	a.RiskAssessment = "Touches the persistence layer."
	a.SuggestedChanges = []string{"Add a rollback test"}
	b := opinion(models.AgentB, true, 0.7)

	first, err := Evaluate(task, a, b)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	second, err := Evaluate(task, a, b)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different outputs:\n%+v\n%+v", first, second)
	}
}

func TestEvaluate_AggregatesRisksAndSuggestions(t *testing.T) {
	a := opinion(models.AgentA, true, 0.9)
	a.RiskAssessment = "Schema change is hard to roll back."
	a.SuggestedChanges = []string{"Add a migration test", "Split into two commits"}

	b := opinion(models.AgentB, true, 0.9)
	b.RiskAssessment = "Schema change is hard to roll back."
	b.SuggestedChanges = []string{"Split into two commits", "Gate behind a flag"}

	got, err := Evaluate(reviewedTask(), a, b)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	wantRisks := []string{"Schema change is hard to roll back."}
	if !reflect.DeepEqual(got.RiskFactors, wantRisks) {
		t.Errorf("RiskFactors = %v, want %v", got.RiskFactors, wantRisks)
	}

	// Agent A's entries come first; duplicates collapse to the first sighting.
	wantMods := []string{"Add a migration test", "Split into two commits", "Gate behind a flag"}
	if !reflect.DeepEqual(got.SuggestedModifications, wantMods) {
		t.Errorf("SuggestedModifications = %v, want %v", got.SuggestedModifications, wantMods)
	}
}

func TestEvaluate_EmptyRiskIgnored(t *testing.T) {
	a := opinion(models.AgentA, true, 0.9)
	b := opinion(models.AgentB, true, 0.9)
	b.RiskAssessment = "Only one agent flagged a risk."

	got, err := Evaluate(reviewedTask(), a, b)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(got.RiskFactors) != 1 || got.RiskFactors[0] != b.RiskAssessment {
		t.Errorf("RiskFactors = %v", got.RiskFactors)
	}
}

func TestEvaluate_IncompleteOpinion(t *testing.T) {
	complete := opinion(models.AgentA, true, 0.9)

	for _, incomplete := range []models.Opinion{
		{},
		{Agent: models.AgentB},
		{TaskID: "task-under-test"},
	} {
		if _, err := Evaluate(reviewedTask(), complete, incomplete); !errors.Is(err, models.ErrIncompleteReview) {
			t.Errorf("expected ErrIncompleteReview, got %v", err)
		}
		if _, err := Evaluate(reviewedTask(), incomplete, complete); !errors.Is(err, models.ErrIncompleteReview) {
			t.Errorf("expected ErrIncompleteReview, got %v", err)
		}
	}
}
