package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/hozoor/internal/daylog"
	"github.com/sadopc/hozoor/internal/jalali"
)

func sampleDays() []daylog.DaySummary {
	nowruz := time.Date(2023, 3, 21, 0, 0, 0, 0, time.Local)
	return []daylog.DaySummary{
		{
			Date:     nowruz,
			Jalali:   jalali.Date{Year: 1402, Month: 1, Day: 1},
			Label:    jalali.DateLabel(nowruz, true),
			Total:    165 * time.Minute,
			Segments: 3,
		},
		{
			Date:     nowruz.AddDate(0, 0, 1),
			Jalali:   jalali.Date{Year: 1402, Month: 1, Day: 2},
			Label:    jalali.DateLabel(nowruz.AddDate(0, 0, 1), true),
			Total:    0,
			Segments: 0,
		},
	}
}

// ============================================================
// CSV export
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ToCSV(sampleDays(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 { // header + 2 days
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Date" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "2023-03-21" || rows[1][1] != "1402/01/01" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[1][3] != "9900" || rows[1][4] != "2:45:00" {
		t.Fatalf("unexpected totals: %v", rows[1])
	}
	if rows[2][3] != "0" {
		t.Fatalf("empty day should export zero: %v", rows[2])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(sampleDays(), filepath.Join(t.TempDir(), "missing", "out.csv"))
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

// ============================================================
// JSON export
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ToJSON(sampleDays(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out jsonExport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 || len(out.Days) != 2 {
		t.Fatalf("unexpected export: count=%d days=%d", out.Count, len(out.Days))
	}
	if out.ExportedAt == "" {
		t.Fatal("exported_at should be set")
	}
	d := out.Days[0]
	if d.Date != "2023-03-21" || d.Jalali != "1402/01/01" {
		t.Fatalf("unexpected day: %+v", d)
	}
	if d.TotalSeconds != 9900 || d.Total != "2:45:00" || d.Segments != 3 {
		t.Fatalf("unexpected totals: %+v", d)
	}
	if d.Label == "" {
		t.Fatal("label should be set")
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(sampleDays(), filepath.Join(t.TempDir(), "missing", "out.json"))
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
