package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kwabena/prepdeck/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "prepdeck",
	Short: "Terminal exam prep for BECE/JHS/SHS students",
	Long:  "Prepdeck: practice quizzes, daily exams and mock exams from your own question bank, in the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("bank", "", "Path to the question bank JSON file (overrides PREPDECK_BANK)")
	rootCmd.PersistentFlags().String("scores", "", "Path to the score log JSON file (overrides PREPDECK_SCORES)")

	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveBankPath returns the question-bank path using the --bank flag
// (highest priority), then the PREPDECK_BANK env var, then the default
// XDG path.
func resolveBankPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.BankPath()
}

// resolveScoresPath returns the score-log path, same priority order.
func resolveScoresPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("scores"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.ScoresPath()
}
