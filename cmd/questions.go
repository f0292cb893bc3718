package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kwabena/prepdeck/internal/bank"
	"github.com/kwabena/prepdeck/internal/store"
)

// ErrBadPassword is returned when the admin password check fails.
var ErrBadPassword = errors.New("admin password required (set PREPDECK_ADMIN_PASSWORD and pass --password)")

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Manage the question bank (admin)",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions in the bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openBank(cmd)
		if err != nil {
			return err
		}
		qs := repo.Questions()
		if len(qs) == 0 {
			fmt.Println("Question bank is empty.")
			return nil
		}
		for i, q := range qs {
			kind := "subjective"
			if q.Objective() {
				kind = "objective"
			}
			fmt.Printf("%3d. [%s - %s] (%s) %s\n", i, q.Subject, q.Level, kind, q.Text)
		}
		return nil
	},
}

var questionsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one question to the bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkAdminPassword(cmd); err != nil {
			return err
		}
		repo, err := openBank(cmd)
		if err != nil {
			return err
		}

		text, _ := cmd.Flags().GetString("text")
		optsRaw, _ := cmd.Flags().GetString("options")
		answer, _ := cmd.Flags().GetString("answer")
		explanation, _ := cmd.Flags().GetString("explanation")
		subject, _ := cmd.Flags().GetString("subject")
		level, _ := cmd.Flags().GetString("level")

		q := bank.Question{
			Text:        text,
			Explanation: explanation,
			Subject:     subject,
			Level:       level,
		}
		for _, o := range strings.Split(optsRaw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				q.Options = append(q.Options, o)
			}
		}
		if answer != "" {
			q.Answer = strings.TrimSpace(answer)
		}

		if err := repo.Add(q); err != nil {
			return err
		}
		fmt.Println("Saved.")
		return nil
	},
}

var questionsEditCmd = &cobra.Command{
	Use:   "edit <index>",
	Short: "Replace the question at the given index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkAdminPassword(cmd); err != nil {
			return err
		}
		repo, err := openBank(cmd)
		if err != nil {
			return err
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be a number: %w", err)
		}

		text, _ := cmd.Flags().GetString("text")
		optsRaw, _ := cmd.Flags().GetString("options")
		answer, _ := cmd.Flags().GetString("answer")
		explanation, _ := cmd.Flags().GetString("explanation")
		subject, _ := cmd.Flags().GetString("subject")
		level, _ := cmd.Flags().GetString("level")

		q := bank.Question{
			Text:        text,
			Explanation: explanation,
			Subject:     subject,
			Level:       level,
		}
		for _, o := range strings.Split(optsRaw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				q.Options = append(q.Options, o)
			}
		}
		if answer != "" {
			q.Answer = strings.TrimSpace(answer)
		}

		if err := repo.Update(i, q); err != nil {
			return err
		}
		fmt.Println("Saved.")
		return nil
	},
}

var questionsRemoveCmd = &cobra.Command{
	Use:   "remove <index>",
	Short: "Delete the question at the given index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkAdminPassword(cmd); err != nil {
			return err
		}
		repo, err := openBank(cmd)
		if err != nil {
			return err
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be a number: %w", err)
		}
		if err := repo.Remove(i); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

var questionsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import questions from a JSON file",
	Long:  "Validates the file against the bank schema, then merges it into the bank (or replaces the bank with --replace).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkAdminPassword(cmd); err != nil {
			return err
		}
		repo, err := openBank(cmd)
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		replace, _ := cmd.Flags().GetBool("replace")

		n, err := repo.Import(raw, replace)
		if err != nil {
			return err
		}
		if replace {
			fmt.Printf("Replaced bank with %d questions.\n", n)
		} else {
			fmt.Printf("Merged %d questions.\n", n)
		}
		return nil
	},
}

var questionsExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the question bank to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openBank(cmd)
		if err != nil {
			return err
		}
		if err := store.Write(args[0], repo.Questions()); err != nil {
			return err
		}
		fmt.Printf("Exported %d questions to %s.\n", len(repo.Questions()), args[0])
		return nil
	},
}

func init() {
	questionsCmd.PersistentFlags().String("password", "", "Admin password")

	for _, c := range []*cobra.Command{questionsAddCmd, questionsEditCmd} {
		c.Flags().String("text", "", "Question text")
		c.Flags().String("options", "", "Comma-separated options (empty for a subjective question)")
		c.Flags().String("answer", "", "Correct answer (objective) or model answer (subjective)")
		c.Flags().String("explanation", "", "Explanation shown after answering")
		c.Flags().String("subject", bank.DefaultSubject, "Subject tag")
		c.Flags().String("level", bank.DefaultLevel, "Level tag")
	}

	questionsImportCmd.Flags().Bool("replace", false, "Replace the bank instead of merging")

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsAddCmd)
	questionsCmd.AddCommand(questionsEditCmd)
	questionsCmd.AddCommand(questionsRemoveCmd)
	questionsCmd.AddCommand(questionsImportCmd)
	questionsCmd.AddCommand(questionsExportCmd)
}

// openBank loads the repository for admin use. Unlike the TUI path, a
// malformed bank is fatal here: admin commands rewrite the file and must
// not silently flatten a broken store into an empty one.
func openBank(cmd *cobra.Command) (*bank.Repository, error) {
	path, err := resolveBankPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve bank path: %w", err)
	}
	repo, err := bank.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	return repo, nil
}

// checkAdminPassword gates mutating admin commands behind the single
// static password from the environment.
func checkAdminPassword(cmd *cobra.Command) error {
	want := os.Getenv("PREPDECK_ADMIN_PASSWORD")
	got, _ := cmd.Flags().GetString("password")
	if want == "" || got != want {
		return ErrBadPassword
	}
	return nil
}
