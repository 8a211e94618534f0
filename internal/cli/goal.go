package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/aquatrack/internal/hydration"
	"github.com/sadopc/aquatrack/internal/store"
)

func addGoal(topLevel *cobra.Command, o *rootOptions) {
	mirror := false
	cmd := &cobra.Command{
		Use:   "goal [ml]",
		Short: "Print the daily goal, or set it.",
		Example: `
aquatrack goal
aquatrack goal 2500
aquatrack goal 2500 --mirror
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, o, func(ctx context.Context, s *session) error {
				if len(args) == 0 {
					return runShowGoal(cmd, s)
				}
				return runSetGoal(ctx, cmd, s, args[0], mirror)
			})
		},
	}

	cmd.Flags().BoolVar(&mirror, "mirror", false, "Also write the goal to the store's profile record.")
	topLevel.AddCommand(cmd)
}

func runShowGoal(cmd *cobra.Command, s *session) error {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatML(s.ctrl.Snapshot().Goal))
	return nil
}

func runSetGoal(ctx context.Context, cmd *cobra.Command, s *session, raw string, mirror bool) error {
	if err := s.ctrl.SetGoal(raw); err != nil {
		if errors.Is(err, hydration.ErrInvalidGoal) {
			return fmt.Errorf("%q: %w", raw, err)
		}
		return err
	}
	if !mirror {
		return nil
	}

	pw, ok := s.store.(profileWriter)
	if !ok {
		return fmt.Errorf("%s store has no profile record", s.cfg.Store.Backend)
	}
	goal := s.ctrl.Snapshot().Goal
	if err := pw.SaveProfile(ctx, store.Profile{DailyGoalML: goal}); err != nil {
		return fmt.Errorf("mirror goal: %w", err)
	}
	s.logger.Debug("goal mirrored to profile", "goal", goal)
	return nil
}
