package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sadopc/aquatrack/internal/hydration"
)

// now is swapped in tests.
var now = time.Now

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	GoalML     int         `json:"goal_ml"`
	TotalML    int         `json:"total_ml"`
	Percentage int         `json:"percentage"`
	Count      int         `json:"count"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	AmountML  int    `json:"amount_ml"`
	Status    string `json:"status"`
}

func ToJSON(snap hydration.Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, snap); err != nil {
		return err
	}
	return f.Close()
}

func WriteJSON(w io.Writer, snap hydration.Snapshot) error {
	export := jsonExport{
		ExportedAt: now().UTC().Format(time.RFC3339),
		GoalML:     snap.Goal,
		TotalML:    snap.Total,
		Percentage: snap.Percentage,
		Count:      len(snap.Entries),
	}

	for _, e := range snap.Entries {
		export.Entries = append(export.Entries, jsonEntry{
			ID:        e.ID,
			CreatedAt: e.CreatedAt.Local().Format(time.RFC3339),
			AmountML:  e.AmountML,
			Status:    status(e),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
