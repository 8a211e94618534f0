package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/aquatrack/internal/hydration"
)

// withSession opens a session, loads today and runs fn against it.
func withSession(cmd *cobra.Command, o *rootOptions, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := openSession(ctx, o.cfg, printNotifier{w: cmd.OutOrStdout()}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	s.ctrl.Load(ctx)
	return fn(ctx, s)
}

func addAdd(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "add <ml>",
		Short: "Log a drink of the given size in millilitres.",
		Example: `
aquatrack add 250
aquatrack add -- 330
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, o, func(ctx context.Context, s *session) error {
				return runAdd(ctx, cmd, s, args[0])
			})
		},
	}

	cmd.SetFlagErrorFunc(negativeAmountError)
	topLevel.AddCommand(cmd)
}

// negativeAmountError reports "add -5" as an invalid amount rather than an
// unknown shorthand flag.
func negativeAmountError(_ *cobra.Command, err error) error {
	_, tok, ok := strings.Cut(err.Error(), " in ")
	if !ok {
		return err
	}
	if _, convErr := strconv.Atoi(tok); convErr != nil {
		return err
	}
	return fmt.Errorf("%q: %w", tok, hydration.ErrInvalidAmount)
}

func runAdd(ctx context.Context, cmd *cobra.Command, s *session, raw string) error {
	if _, err := s.ctrl.AddEntryInput(ctx, raw); err != nil {
		if errors.Is(err, hydration.ErrInvalidAmount) {
			return fmt.Errorf("%q: %w", raw, err)
		}
		return err
	}
	printProgress(cmd.OutOrStdout(), s.ctrl.Snapshot())
	return nil
}
