package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/aquatrack/internal/hydration"
	"github.com/sadopc/aquatrack/internal/store"
)

func addRemove(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove one of today's entries by id or unique id prefix.",
		Example: `
aquatrack status
aquatrack remove 6f1c2a
`,
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, o, func(ctx context.Context, s *session) error {
				return runRemove(ctx, cmd, s, args[0])
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func runRemove(ctx context.Context, cmd *cobra.Command, s *session, ref string) error {
	id, err := resolveID(s.ctrl.Snapshot().Entries, ref)
	if err != nil {
		return err
	}
	if err := s.ctrl.RemoveEntry(ctx, id); err != nil {
		return err
	}
	printProgress(cmd.OutOrStdout(), s.ctrl.Snapshot())
	return nil
}

// resolveID finds the one entry whose id equals ref or starts with it.
func resolveID(entries []store.LogEntry, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", hydration.ErrEntryNotFound
	}
	var matches []string
	for _, e := range entries {
		if e.ID == ref {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, ref) {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s: %w", ref, hydration.ErrEntryNotFound)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("id prefix %q is ambiguous (%d matches)", ref, len(matches))
}
