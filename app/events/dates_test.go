package events

import (
	"strings"
	"testing"
	"time"
)

func TestExtractDatesSlashFormat(t *testing.T) {
	dates := ExtractDates("Team offsite scheduled for 03/15/2026 at headquarters")
	if len(dates) != 1 {
		t.Fatalf("Expected 1 date, got %d", len(dates))
	}
	if dates[0].Text != "03/15/2026" {
		t.Errorf("Expected matched text 03/15/2026, got %q", dates[0].Text)
	}
	expected := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !dates[0].Date.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, dates[0].Date)
	}
}

func TestExtractDatesISOFormat(t *testing.T) {
	dates := ExtractDates("Submission deadline is 2026-12-01.")
	if len(dates) != 1 {
		t.Fatalf("Expected 1 date, got %d", len(dates))
	}
	if dates[0].Date.Year() != 2026 || dates[0].Date.Month() != time.December || dates[0].Date.Day() != 1 {
		t.Errorf("Unexpected parsed date: %v", dates[0].Date)
	}
}

func TestExtractDatesMonthNameFormats(t *testing.T) {
	dates := ExtractDates("The conference runs March 15, 2026 and ends 17 March 2026.")
	if len(dates) != 2 {
		t.Fatalf("Expected 2 dates, got %d", len(dates))
	}

	texts := []string{dates[0].Text, dates[1].Text}
	if texts[0] != "March 15, 2026" || texts[1] != "17 March 2026" {
		t.Errorf("Unexpected matched texts: %v", texts)
	}
	if dates[1].Date.Day() != 17 {
		t.Errorf("Expected day 17, got %d", dates[1].Date.Day())
	}
}

func TestExtractDatesCaseInsensitiveMonth(t *testing.T) {
	dates := ExtractDates("launch planned for JANUARY 5, 2027")
	if len(dates) != 1 {
		t.Fatalf("Expected 1 date, got %d", len(dates))
	}
	if dates[0].Date.Month() != time.January {
		t.Errorf("Expected January, got %v", dates[0].Date.Month())
	}
}

func TestExtractDatesSkipsUnparseable(t *testing.T) {
	dates := ExtractDates("Build 13/45/2026 failed, retry on 01/10/2026")
	if len(dates) != 1 {
		t.Fatalf("Expected unparseable hit skipped, got %d dates", len(dates))
	}
	if dates[0].Text != "01/10/2026" {
		t.Errorf("Expected the valid date kept, got %q", dates[0].Text)
	}
}

func TestExtractDatesNone(t *testing.T) {
	if dates := ExtractDates("No temporal information here at all"); len(dates) != 0 {
		t.Errorf("Expected no dates, got %v", dates)
	}
}

func TestExtractContextEllipses(t *testing.T) {
	padding := strings.Repeat("x", 150)
	text := padding + " event on 03/15/2026 follows " + padding

	dates := ExtractDates(text)
	if len(dates) != 1 {
		t.Fatalf("Expected 1 date, got %d", len(dates))
	}

	context := dates[0].Context
	if !strings.HasPrefix(context, "...") || !strings.HasSuffix(context, "...") {
		t.Errorf("Expected context trimmed with ellipses, got %q", context)
	}
	if !strings.Contains(context, "event on 03/15/2026 follows") {
		t.Errorf("Expected context to include surrounding prose, got %q", context)
	}
}

func TestExtractContextShortText(t *testing.T) {
	dates := ExtractDates("due 2026-06-30")
	if len(dates) != 1 {
		t.Fatalf("Expected 1 date, got %d", len(dates))
	}
	if dates[0].Context != "due 2026-06-30" {
		t.Errorf("Expected untrimmed context, got %q", dates[0].Context)
	}
}
