package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sadopc/aquatrack/internal/export"
	"github.com/sadopc/aquatrack/internal/hydration"
)

func addExport(topLevel *cobra.Command, o *rootOptions) {
	format := "csv"
	out := ""
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export today's entries as CSV or JSON.",
		Example: `
aquatrack export --format json --out today.json
aquatrack export > today.csv
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, o, func(_ context.Context, s *session) error {
				return runExport(cmd, s.ctrl.Snapshot(), format, out)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", `Output format, "csv" or "json".`)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout.")
	topLevel.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, snap hydration.Snapshot, format, out string) error {
	var write func(io.Writer, hydration.Snapshot) error
	switch format {
	case "csv":
		write = export.WriteCSV
	case "json":
		write = export.WriteJSON
	default:
		return fmt.Errorf("unknown export format %q", format)
	}

	if out == "" {
		return write(cmd.OutOrStdout(), snap)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := write(f, snap); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "exported %d entries to %s\n", len(snap.Entries), out)
	return nil
}
