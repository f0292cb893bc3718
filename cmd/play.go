package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kwabena/prepdeck/internal/app"
	"github.com/kwabena/prepdeck/internal/bank"
	"github.com/kwabena/prepdeck/internal/leaderboard"
	"github.com/kwabena/prepdeck/internal/store"
)

// runApp loads the stores and starts the TUI. A malformed bank is a
// warning, not a fatal error: the app stays usable so the operator can fix
// or re-import the bank.
func runApp(cmd *cobra.Command) error {
	bankPath, err := resolveBankPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve bank path: %w", err)
	}
	scoresPath, err := resolveScoresPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve scores path: %w", err)
	}

	repo, err := bank.Load(bankPath)
	var warning string
	if err != nil {
		if !errors.Is(err, store.ErrMalformed) {
			return fmt.Errorf("load question bank: %w", err)
		}
		warning = "Question bank file is malformed; starting with an empty bank."
		fmt.Fprintln(os.Stderr, "Warning:", warning)
	}

	return app.Run(app.Options{
		Repo:        repo,
		Recorder:    leaderboard.NewRecorder(scoresPath),
		BankWarning: warning,
	})
}
