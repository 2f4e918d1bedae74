package analytics

import (
	"testing"
	"time"
)

func TestParseDate_DayFirstWithTime(t *testing.T) {
	got, ok := ParseDate("15/03/2024 10:30:00")
	if !ok {
		t.Fatal("ParseDate() should accept DD/MM/YYYY HH:mm:ss")
	}

	want := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ParseDate() = %v, want %v", got, want)
	}
}

func TestParseDate_DayFirstIsNotMonthFirst(t *testing.T) {
	// 05/03 must be March 5th, never May 3rd.
	got, ok := ParseDate("05/03/2024")
	if !ok {
		t.Fatal("ParseDate() should accept DD/MM/YYYY")
	}
	if got.Month() != time.March || got.Day() != 5 {
		t.Errorf("ParseDate(05/03/2024) = %v, want March 5", got)
	}
}

func TestParseDate_Formats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{
			name:  "day first date only",
			input: "15/03/2024",
			want:  time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local),
			ok:    true,
		},
		{
			name:  "iso date",
			input: "2024-03-15",
			want:  time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local),
			ok:    true,
		},
		{
			name:  "iso datetime",
			input: "2024-03-15T10:30:00",
			want:  time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local),
			ok:    true,
		},
		{
			name:  "embedded in surrounding text",
			input: "paid on 15/03/2024 by card",
			want:  time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local),
			ok:    true,
		},
		{
			name:  "written month",
			input: "Mar 15, 2024",
			want:  time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local),
			ok:    true,
		},
		{
			name:  "empty",
			input: "",
			ok:    false,
		},
		{
			name:  "garbage",
			input: "not-a-date",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate_TimePatternWinsOverDatePattern(t *testing.T) {
	// The timestamped pattern must match before the date-only one so the
	// time component is not silently dropped.
	got, _ := ParseDate("01/02/2024 23:59:59")
	if got.Hour() != 23 || got.Minute() != 59 || got.Second() != 59 {
		t.Errorf("ParseDate() dropped time component, got %v", got)
	}
}

func BenchmarkParseDate(b *testing.B) {
	for b.Loop() {
		_, _ = ParseDate("15/03/2024 10:30:00")
	}
}
