package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/sadopc/aquatrack/internal/hydration"
)

const shortIDLen = 8

func addStatus(topLevel *cobra.Command, o *rootOptions) {
	showID := false
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's entries and progress toward the goal.",
		Example: `
aquatrack status
aquatrack status --full-id
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, o, func(_ context.Context, s *session) error {
				printStatus(cmd.OutOrStdout(), s.ctrl.Snapshot(), showID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&showID, "full-id", false, "Print full entry ids.")
	topLevel.AddCommand(cmd)
}

func printStatus(w io.Writer, snap hydration.Snapshot, fullID bool) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	if len(snap.Entries) == 0 {
		_, _ = faint.Fprintln(w, "nothing logged today")
	} else {
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold.Sprint("ID"), bold.Sprint("TIME"), bold.Sprint("AMOUNT"))
		for _, e := range snap.Entries {
			id := e.ID
			if !fullID && len(id) > shortIDLen {
				id = id[:shortIDLen]
			}
			tbl.AddRow(faint.Sprint(id), e.CreatedAt.Local().Format("15:04"), formatML(e.AmountML))
		}
		_, _ = fmt.Fprintln(w, tbl)
	}

	_, _ = fmt.Fprintln(w)
	printProgress(w, snap)
}

// printProgress writes the one-line total, e.g. "1,250 ml / 2,000 ml (63%)".
func printProgress(w io.Writer, snap hydration.Snapshot) {
	c := color.New(color.FgCyan, color.Bold)
	if snap.Percentage >= 100 {
		c = color.New(color.FgGreen, color.Bold)
	}
	_, _ = c.Fprintf(w, "%s / %s (%d%%)\n", formatML(snap.Total), formatML(snap.Goal), snap.Percentage)
}

// formatML renders a volume with thousands separators.
func formatML(ml int) string {
	s := strconv.Itoa(ml)
	if ml < 0 {
		return "-" + formatML(-ml)
	}
	var b strings.Builder
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(s[i])
	}
	return b.String() + " ml"
}
