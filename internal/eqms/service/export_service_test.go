package service

import (
	"regexp"
	"testing"
	"time"
)

func TestExportFilename(t *testing.T) {
	at := time.Date(2026, 8, 30, 14, 30, 5, 0, time.UTC)
	got := ExportFilename("inventory", at)
	want := "inventory_export_20260830_143005.xlsx"
	if got != want {
		t.Fatalf("ExportFilename = %q, want %q", got, want)
	}
}

func TestExportFilenamePattern(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z]+_export_\d{8}_\d{6}\.xlsx$`)
	for _, name := range []string{"inventory", "inbound", "outbound"} {
		got := ExportFilename(name, time.Now())
		if !pattern.MatchString(got) {
			t.Fatalf("filename %q does not match expected pattern", got)
		}
	}
}
