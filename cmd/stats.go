package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/accordhq/accord/models"
)

// statsCmd summarizes the task store.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts, recent activity, and consensus history",
	Run: func(cmd *cobra.Command, args []string) {
		coordinator, taskStore, err := buildCoordinator(cmd.Context())
		if err != nil {
			HandleError("Failed to open the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		stats, err := coordinator.Stats()
		if err != nil {
			HandleError("Failed to compute stats.", err)
		}

		fmt.Printf("Total tasks: %d\n", stats.TotalCount)
		fmt.Printf("Updated in the last 24h: %d\n", stats.RecentActivityCount)

		if len(stats.StatusHistogram) > 0 {
			fmt.Println("\nBy status:")
			statuses := make([]models.TaskStatus, 0, len(stats.StatusHistogram))
			for k := range stats.StatusHistogram {
				statuses = append(statuses, k)
			}
			sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })
			for _, k := range statuses {
				fmt.Printf("  %-14s %d\n", k, stats.StatusHistogram[k])
			}
		}

		if len(stats.ConsensusHistogram) > 0 {
			fmt.Println("\nBy last consensus:")
			outcomes := make([]models.ConsensusType, 0, len(stats.ConsensusHistogram))
			for k := range stats.ConsensusHistogram {
				outcomes = append(outcomes, k)
			}
			sort.Slice(outcomes, func(i, j int) bool { return outcomes[i] < outcomes[j] })
			for _, k := range outcomes {
				fmt.Printf("  %-18s %d\n", k, stats.ConsensusHistogram[k])
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
