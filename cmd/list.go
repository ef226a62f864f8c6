package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/accordhq/accord/models"
)

var listStatus string

// listCmd prints tasks ordered by most recent activity.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, optionally filtered by status",
	Run: func(cmd *cobra.Command, args []string) {
		var status models.TaskStatus
		if listStatus != "" {
			parsed, err := models.ParseStatus(listStatus)
			if err != nil {
				HandleError("Invalid status filter.", err)
			}
			status = parsed
		}

		coordinator, taskStore, err := buildCoordinator(cmd.Context())
		if err != nil {
			HandleError("Failed to open the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		tasks, err := coordinator.ListTasks(status)
		if err != nil {
			HandleError("Failed to list tasks.", err)
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tUPDATED\tTITLE")
		for _, task := range tasks {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				task.ID,
				colorStatus(task.Status),
				task.Priority,
				task.UpdatedAt.Format("2006-01-02 15:04"),
				task.Title,
			)
		}
		_ = w.Flush()
	},
}

// colorStatus renders a status token with a terminal color.
func colorStatus(status models.TaskStatus) string {
	switch status {
	case models.StatusApproved, models.StatusCompleted:
		return color.GreenString(string(status))
	case models.StatusRejected:
		return color.RedString(string(status))
	case models.StatusConflict:
		return color.YellowString(string(status))
	case models.StatusUnderReview, models.StatusInProgress:
		return color.CyanString(string(status))
	default:
		return string(status)
	}
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (proposed|under-review|approved|rejected|conflict|in-progress|completed)")
	rootCmd.AddCommand(listCmd)
}
