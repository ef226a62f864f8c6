package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/accordhq/accord/models"
	"github.com/accordhq/accord/workflow"
)

var (
	createDescription string
	createPriority    string
	createProposedBy  string
	createFiles       []string
)

// createCmd adds a new task in the proposed state.
var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new task awaiting review",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		priority, err := models.ParsePriority(createPriority)
		if err != nil {
			HandleError("Invalid priority. Use low, medium, high, or critical.", err)
		}
		proposedBy, err := models.ParseAgentRole(createProposedBy)
		if err != nil {
			HandleError("Invalid agent role. Use agent-a or agent-b.", err)
		}

		coordinator, taskStore, err := buildCoordinator(cmd.Context())
		if err != nil {
			HandleError("Failed to open the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		task, err := coordinator.CreateTask(workflow.CreateTaskParams{
			Title:         args[0],
			Description:   createDescription,
			Priority:      priority,
			ProposedBy:    proposedBy,
			FilesAffected: createFiles,
		})
		if err != nil {
			HandleError("Failed to create task.", err)
		}

		fmt.Printf("Created task %s (%s, priority %s)\n", task.ID, task.Status, task.Priority)
	},
}

func init() {
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "task description (required)")
	createCmd.Flags().StringVarP(&createPriority, "priority", "p", "medium", "task priority (low|medium|high|critical)")
	createCmd.Flags().StringVar(&createProposedBy, "proposed-by", "agent-a", "originating agent (agent-a|agent-b)")
	createCmd.Flags().StringSliceVarP(&createFiles, "file", "f", nil, "affected file path (repeatable)")
	_ = createCmd.MarkFlagRequired("description")
	rootCmd.AddCommand(createCmd)
}
