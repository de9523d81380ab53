// Package format renders day summaries for the report command.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/sadopc/hozoor/internal/daylog"
)

// WriteDays writes per-day totals to w in the requested format.
func WriteDays(w io.Writer, days []daylog.DaySummary, includeHeader bool, format string) error {
	switch strings.ToLower(format) {
	case "", "table":
		return writeDaysTable(w, days, includeHeader)
	case "plain":
		return writeDaysPlain(w, days, includeHeader)
	case "json":
		return writeDaysJSON(w, days)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeDaysPlain(w io.Writer, days []daylog.DaySummary, includeHeader bool) error {
	if includeHeader {
		if _, err := fmt.Fprintln(w, "date\tjalali\tlabel\ttotal\tsegments"); err != nil {
			return err
		}
	}

	for _, d := range days {
		line := fmt.Sprintf("%s\t%s\t%s\t%s\t%d",
			d.Date.Format("2006-01-02"),
			d.Jalali,
			d.Label,
			daylog.FormatDuration(d.Total),
			d.Segments,
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeDaysJSON(w io.Writer, days []daylog.DaySummary) error {
	type day struct {
		Date         string `json:"date"`
		Jalali       string `json:"jalali"`
		Label        string `json:"label"`
		TotalSeconds int64  `json:"total_seconds"`
		Total        string `json:"total"`
		Segments     int    `json:"segments"`
	}

	out := make([]day, 0, len(days))
	for _, d := range days {
		out = append(out, day{
			Date:         d.Date.Format("2006-01-02"),
			Jalali:       d.Jalali.String(),
			Label:        d.Label,
			TotalSeconds: int64(d.Total.Seconds()),
			Total:        daylog.FormatDuration(d.Total),
			Segments:     d.Segments,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeDaysTable(w io.Writer, days []daylog.DaySummary, includeHeader bool) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateHeader = true
	tw.Style().Options.DrawBorder = true

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignCenter},
	})

	if includeHeader {
		tw.AppendHeader(table.Row{"Date", "Jalali", "Label", "Total", "Segments"})
	}

	var total time.Duration
	var segments int
	for _, d := range days {
		tw.AppendRow(table.Row{
			d.Date.Format("2006-01-02"),
			d.Jalali.String(),
			d.Label,
			daylog.FormatDuration(d.Total),
			d.Segments,
		})
		total += d.Total
		segments += d.Segments
	}

	if len(days) == 0 {
		tw.AppendRow(table.Row{"-", "-", "(no activity)", "0:00:00", 0})
	} else {
		tw.AppendFooter(table.Row{"", "", "Total", daylog.FormatDuration(total), segments})
	}

	_ = tw.Render()
	return nil
}
