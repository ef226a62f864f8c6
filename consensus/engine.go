// Package consensus reduces two independent agent opinions into a single
// ship/no-ship verdict.
package consensus

import (
	"fmt"

	"github.com/accordhq/accord/models"
)

// StrongConfidenceThreshold separates strong from weak consensus when both
// agents approve. The boundary is inclusive.
const StrongConfidenceThreshold = 0.75

// Evaluate is a pure function over a task and its two opinions. Identical
// inputs always yield identical output.
//
// Classification:
//   - both approve, avg confidence >= 0.75 -> strong consensus / proceed
//   - both approve, avg confidence <  0.75 -> weak consensus / proceed with caution
//   - both reject                          -> strong rejection / do not proceed
//   - otherwise                            -> conflict / needs mediation
func Evaluate(task models.Task, opinionA, opinionB models.Opinion) (models.Consensus, error) {
	if !opinionA.Complete() || !opinionB.Complete() {
		return models.Consensus{}, fmt.Errorf("%w: task %s", models.ErrIncompleteReview, task.ID)
	}

	bothApprove := opinionA.Approval && opinionB.Approval
	bothReject := !opinionA.Approval && !opinionB.Approval
	avgConfidence := (opinionA.Confidence + opinionB.Confidence) / 2

	c := models.Consensus{
		AgentAApproval: opinionA.Approval,
		AgentBApproval: opinionB.Approval,
		AvgConfidence:  avgConfidence,
	}

	switch {
	case bothApprove && avgConfidence >= StrongConfidenceThreshold:
		c.Type = models.StrongConsensus
		c.Recommendation = models.Proceed
	case bothApprove:
		c.Type = models.WeakConsensus
		c.Recommendation = models.ProceedWithCaution
	case bothReject:
		c.Type = models.StrongRejection
		c.Recommendation = models.DoNotProceed
	default:
		c.Type = models.ConflictOutcome
		c.Recommendation = models.NeedsMediation
	}

	c.RiskFactors = dedupe(riskFactors(opinionA), riskFactors(opinionB))
	c.SuggestedModifications = dedupe(opinionA.SuggestedChanges, opinionB.SuggestedChanges)

	return c, nil
}

// riskFactors surfaces any non-empty risk assessment text.
func riskFactors(o models.Opinion) []string {
	if o.RiskAssessment == "" {
		return nil
	}
	return []string{o.RiskAssessment}
}

// dedupe concatenates the slices, dropping exact-string duplicates while
// preserving order (agent A's entries first).
func dedupe(slices ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range slices {
		for _, v := range s {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
