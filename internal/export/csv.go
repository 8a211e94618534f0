package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/aquatrack/internal/hydration"
	"github.com/sadopc/aquatrack/internal/store"
)

const (
	statusConfirmed = "confirmed"
	statusPending   = "pending"
)

func ToCSV(snap hydration.Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	return WriteCSV(f, snap)
}

// WriteCSV writes one row per entry, newest first.
func WriteCSV(w io.Writer, snap hydration.Snapshot) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"ID", "Time", "Amount (ml)", "Status"}); err != nil {
		return err
	}

	for _, e := range snap.Entries {
		row := []string{
			e.ID,
			e.CreatedAt.Local().Format(time.RFC3339),
			strconv.Itoa(e.AmountML),
			status(e),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func status(e store.LogEntry) string {
	if hydration.IsProvisional(e.ID) {
		return statusPending
	}
	return statusConfirmed
}
