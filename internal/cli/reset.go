package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// confirmFunc asks a yes/no question.
type confirmFunc func(title string) (bool, error)

func huhConfirm(title string) (bool, error) {
	ok := false
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Clear").
		Negative("Keep").
		Value(&ok).
		Run()
	return ok, err
}

func addReset(topLevel *cobra.Command, o *rootOptions) {
	yes := false
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all of today's entries.",
		Example: `
aquatrack reset --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			confirm := confirmFunc(huhConfirm)
			if yes {
				confirm = nil
			}
			return withSession(cmd, o, func(ctx context.Context, s *session) error {
				return runReset(ctx, cmd, s, confirm)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt.")
	topLevel.AddCommand(cmd)
}

func runReset(ctx context.Context, cmd *cobra.Command, s *session, confirm confirmFunc) error {
	w := cmd.OutOrStdout()
	snap := s.ctrl.Snapshot()
	if len(snap.Entries) == 0 {
		_, _ = fmt.Fprintln(w, "nothing logged today")
		return nil
	}

	if confirm != nil {
		ok, err := confirm(fmt.Sprintf("Clear %d entries (%s) from today?", len(snap.Entries), formatML(snap.Total)))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(w, "cancelled")
			return nil
		}
	}

	return s.ctrl.ResetDay(ctx)
}
