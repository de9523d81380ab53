package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/hozoor/internal/daylog"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	Count      int       `json:"count"`
	Days       []jsonDay `json:"days"`
}

type jsonDay struct {
	Date         string `json:"date"`
	Jalali       string `json:"jalali"`
	Label        string `json:"label"`
	TotalSeconds int64  `json:"total_seconds"`
	Total        string `json:"total"`
	Segments     int    `json:"segments"`
}

func ToJSON(days []daylog.DaySummary, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(days),
	}

	for _, d := range days {
		export.Days = append(export.Days, jsonDay{
			Date:         d.Date.Format("2006-01-02"),
			Jalali:       d.Jalali.String(),
			Label:        d.Label,
			TotalSeconds: int64(d.Total.Seconds()),
			Total:        daylog.FormatDuration(d.Total),
			Segments:     d.Segments,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
