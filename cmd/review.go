package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/accordhq/accord/models"
	"github.com/accordhq/accord/workflow"
)

// ErrNoTasksFound is returned when an interactive selection is attempted but
// no reviewable tasks are available.
var ErrNoTasksFound = errors.New("no tasks found matching your criteria")

var reviewMinConfidence float64

// reviewCmd runs a two-agent review on one task. Without an id argument it
// offers an interactive picker over proposed tasks.
var reviewCmd = &cobra.Command{
	Use:   "review [task-id]",
	Short: "Collect both agent opinions on a task and record the consensus",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		coordinator, taskStore, err := buildCoordinator(cmd.Context())
		if err != nil {
			HandleError("Failed to open the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		var taskID string
		if len(args) == 1 {
			taskID = args[0]
		} else {
			task, err := selectTaskInteractive(coordinator)
			if err != nil {
				if errors.Is(err, ErrNoTasksFound) {
					fmt.Println("No proposed tasks to review.")
					return
				}
				HandleError("Task selection failed.", err)
			}
			taskID = task.ID
		}

		result, err := coordinator.Review(cmd.Context(), taskID, reviewMinConfidence, nil)
		if err != nil {
			if errors.Is(err, models.ErrTaskNotFound) {
				HandleError(fmt.Sprintf("Task %s does not exist.", taskID), err)
			}
			HandleError("Review failed.", err)
		}

		printReviewResult(result)
	},
}

// selectTaskInteractive presents a prompt to pick a proposed task.
func selectTaskInteractive(coordinator *workflow.Coordinator) (models.Task, error) {
	tasks, err := coordinator.ListTasks(models.StatusProposed)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to list tasks for selection: %w", err)
	}
	if len(tasks) == 0 {
		return models.Task{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Title | cyan }} (ID: {{ .ID }}, Priority: {{ .Priority }})`,
		Inactive: `  {{ .Title | faint }} (ID: {{ .ID }}, Priority: {{ .Priority }})`,
		Selected: `{{ "✔" | green }} {{ .Title | faint }} (ID: {{ .ID }})`,
	}

	searcher := func(input string, index int) bool {
		task := tasks[index]
		input = strings.ToLower(input)
		return strings.Contains(strings.ToLower(task.Title), input) || strings.Contains(task.ID, input)
	}

	prompt := promptui.Select{
		Label:     "Select a task to review",
		Items:     tasks,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.Task{}, err
	}
	return tasks[i], nil
}

// printReviewResult renders one review bundle to stdout.
func printReviewResult(result workflow.ReviewResult) {
	fmt.Printf("Task %s: %s\n\n", result.Task.ID, result.Task.Title)
	printOpinion("Agent A", result.OpinionA)
	printOpinion("Agent B", result.OpinionB)

	fmt.Printf("Consensus: %s\n", result.Consensus.Type)
	fmt.Printf("Recommendation: %s (avg confidence %.2f)\n", result.Consensus.Recommendation, result.Consensus.AvgConfidence)
	if len(result.Consensus.RiskFactors) > 0 {
		fmt.Println("Risk factors:")
		for _, r := range result.Consensus.RiskFactors {
			fmt.Printf("  - %s\n", r)
		}
	}
	if len(result.Consensus.SuggestedModifications) > 0 {
		fmt.Println("Suggested modifications:")
		for _, s := range result.Consensus.SuggestedModifications {
			fmt.Printf("  - %s\n", s)
		}
	}
	fmt.Printf("\nTask status: %s\n", result.Task.Status)
}

func printOpinion(label string, opinion models.Opinion) {
	verdict := "reject"
	if opinion.Approval {
		verdict = "approve"
	}
	fmt.Printf("%s: %s (confidence %.2f, effort %s)\n", label, verdict, opinion.Confidence, opinion.EstimatedEffort)
	if opinion.Reasoning != "" {
		fmt.Printf("  %s\n", opinion.Reasoning)
	}
	fmt.Println()
}

func init() {
	reviewCmd.Flags().Float64Var(&reviewMinConfidence, "min-confidence", workflow.DefaultMinConfidence, "confidence threshold for cautious approvals")
	rootCmd.AddCommand(reviewCmd)
}
