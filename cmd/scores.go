package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kwabena/prepdeck/internal/leaderboard"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveScoresPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve scores path: %w", err)
		}

		n, _ := cmd.Flags().GetInt("top")
		top, err := leaderboard.NewRecorder(path).TopN(n)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Warning: score log unreadable, treating as empty:", err)
		}
		if len(top) == 0 {
			fmt.Println("No scores yet.")
			return nil
		}

		for i, rec := range top {
			fmt.Printf("%2d. %s  %d/%d  %s %s  %s\n",
				i+1, rec.Username, rec.Score, rec.Total, rec.Subject, rec.Level, rec.Timestamp)
		}
		return nil
	},
}

func init() {
	scoresCmd.Flags().Int("top", 10, "Number of top scores to show")
}
