package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Mode", "Rounds", "Avg WPM"}
	rows := [][]string{
		{"Default", "12", "61.50"},
		{"Instant Death", "3", "8.00"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Mode          Rounds Avg WPM" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Default           12   61.50" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Instant Death      3    8.00" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideCells(t *testing.T) {
	lines := formatTable([]string{"Passage", "Plays"}, [][]string{{"/日本/1", "2"}}, map[int]bool{1: true})
	if lines[0] != "Passage Plays" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "/日本/1     2" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}
