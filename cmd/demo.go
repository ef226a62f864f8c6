package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/accordhq/accord/agent"
	"github.com/accordhq/accord/models"
	"github.com/accordhq/accord/workflow"
)

// demoCmd exercises the review pipeline end to end with the deterministic
// local reviewers, so it works with no credentials configured.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a sample task through the full review pipeline",
	Run: func(cmd *cobra.Command, args []string) {
		taskStore, err := GetStore()
		if err != nil {
			HandleError("Failed to open the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		coordinator := workflow.NewCoordinator(
			taskStore,
			agent.NewFallbackProvider(models.AgentA),
			agent.NewFallbackProvider(models.AgentB),
		)

		task, err := coordinator.CreateTask(workflow.CreateTaskParams{
			Title:       "Review error handling in the store package",
			Description: "Demo task: check that persistence errors are wrapped before they reach the CLI.",
			Priority:    models.PriorityHigh,
			ProposedBy:  models.AgentA,
		})
		if err != nil {
			HandleError("Failed to create the demo task.", err)
		}
		fmt.Printf("Created demo task %s\n\n", task.ID)

		result, err := coordinator.Review(cmd.Context(), task.ID, workflow.DefaultMinConfidence, nil)
		if err != nil {
			HandleError("Demo review failed.", err)
		}
		printReviewResult(result)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
