package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/accordhq/accord/workflow"
)

var (
	cycleDryRun        bool
	cycleNoDryRun      bool
	cycleAutoPush      bool
	cycleMinConfidence float64
	cycleFocus         []string
	cycleReport        bool
	cycleBranch        string
)

// devCycleCmd runs one analyze -> propose -> review -> apply batch.
var devCycleCmd = &cobra.Command{
	Use:   "dev-cycle",
	Short: "Run one full proposal and review cycle",
	Long: `Analyze the repository, generate candidate tasks, review each through
both agents, and apply the approved ones unless running dry. The cycle always
completes and always produces a summary, even when external calls fail.`,
	Run: func(cmd *cobra.Command, args []string) {
		config := GetConfig()

		dryRun := config.Cycle.DryRun
		if cmd.Flags().Changed("dry-run") {
			dryRun = cycleDryRun
		}
		if cycleNoDryRun {
			dryRun = false
		}
		minConfidence := cycleMinConfidence
		if !cmd.Flags().Changed("min-confidence") && config.Cycle.MinConfidence > 0 {
			minConfidence = config.Cycle.MinConfidence
		}

		coordinator, taskStore, err := buildCoordinator(cmd.Context())
		if err != nil {
			HandleError("Failed to open the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		runner := buildRunner(cmd.Context(), coordinator)
		summary := runner.RunCycle(cmd.Context(), workflow.CycleOptions{
			FocusAreas:    cycleFocus,
			MinConfidence: minConfidence,
			DryRun:        dryRun,
			Verbose:       verbose,
		})

		if cycleBranch != "" {
			LogError(fmt.Sprintf("branch %q requested; branch management is left to the surrounding tooling", cycleBranch), nil)
		}
		if cycleAutoPush || config.Cycle.AutoPush {
			LogError("auto-push requested; pushing is left to the surrounding tooling", nil)
		}

		if cycleReport {
			fmt.Print(workflow.GenerateReport(summary))
			return
		}
		fmt.Printf("Cycle %s: proposed %d, approved %d, implemented %d\n",
			summary.ID, summary.Proposed, summary.Approved, summary.Implemented)
		for _, t := range summary.Tasks {
			line := fmt.Sprintf("  - %s", t.Title)
			if t.ConsensusType != "" {
				line += fmt.Sprintf(" [%s]", t.ConsensusType)
			}
			if t.Implemented {
				line += " (implemented)"
			}
			if t.Error != "" {
				line += fmt.Sprintf(" (error: %s)", t.Error)
			}
			fmt.Println(line)
		}
	},
}

func init() {
	devCycleCmd.Flags().BoolVar(&cycleDryRun, "dry-run", true, "review without applying changes")
	devCycleCmd.Flags().BoolVar(&cycleNoDryRun, "no-dry-run", false, "apply approved changes")
	devCycleCmd.Flags().BoolVar(&cycleAutoPush, "auto-push", false, "push applied changes (delegated to surrounding tooling)")
	devCycleCmd.Flags().Float64Var(&cycleMinConfidence, "min-confidence", workflow.DefaultMinConfidence, "confidence threshold for cautious approvals")
	devCycleCmd.Flags().StringSliceVar(&cycleFocus, "focus", nil, "focus area for the analyzer (repeatable)")
	devCycleCmd.Flags().BoolVar(&cycleReport, "report", false, "print the full Markdown report")
	devCycleCmd.Flags().StringVar(&cycleBranch, "branch", "", "working branch name (informational)")
	rootCmd.AddCommand(devCycleCmd)
}
