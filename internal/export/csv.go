// Package export writes day summaries to CSV and JSON files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/hozoor/internal/daylog"
)

func ToCSV(days []daylog.DaySummary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Jalali", "Label", "Total (s)", "Total", "Segments"}); err != nil {
		return err
	}

	for _, d := range days {
		row := []string{
			d.Date.Format("2006-01-02"),
			d.Jalali.String(),
			d.Label,
			fmt.Sprintf("%d", int64(d.Total.Seconds())),
			daylog.FormatDuration(d.Total),
			fmt.Sprintf("%d", d.Segments),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
