package domain

import (
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		seconds int
		ok      bool
	}{
		{"minutes and seconds", "45:30", 2730, true},
		{"hours minutes seconds", "1:05:30", 3930, true},
		{"zero", "0:00", 0, true},
		{"padded", " 3:05 ", 185, true},
		{"single field", "45", 0, false},
		{"too many fields", "1:2:3:4", 0, false},
		{"non numeric", "a:bc", 0, false},
		{"seconds overflow", "1:72", 0, false},
		{"negative", "-1:30", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseClock(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseClock(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.seconds {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.seconds)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{"under a minute", 42, "0:42"},
		{"minutes", 2730, "45:30"},
		{"over an hour", 3930, "1:05:30"},
		{"exact hour", 3600, "1:00:00"},
		{"negative clamps", -5, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatClock(tt.seconds); got != tt.want {
				t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestClockRoundTrip(t *testing.T) {
	// parsing then reformatting yields the original token
	for _, token := range []string{"1:05:30", "45:30", "0:00", "12:00:01"} {
		secs, ok := ParseClock(token)
		if !ok {
			t.Fatalf("ParseClock(%q) failed", token)
		}
		if got := FormatClock(secs); got != token {
			t.Errorf("round trip of %q produced %q", token, got)
		}
	}
}

func TestFormatTotalMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0h 0m"},
		{59, "0h 59m"},
		{60, "1h 0m"},
		{135, "2h 15m"},
	}

	for _, tt := range tests {
		if got := FormatTotalMinutes(tt.minutes); got != tt.want {
			t.Errorf("FormatTotalMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestVideoNormalize(t *testing.T) {
	v := Video{
		Title:           "  Intro  ",
		Instructor:      " Ada ",
		Category:        " Math ",
		ProgressPercent: 140,
		DurationSeconds: 185,
	}
	v.Normalize()

	if v.Title != "Intro" || v.Instructor != "Ada" || v.Category != "Math" {
		t.Errorf("Normalize did not trim fields: %+v", v)
	}
	if v.Source != SourceManual {
		t.Errorf("expected default source %q, got %q", SourceManual, v.Source)
	}
	if v.ProgressPercent != 100 {
		t.Errorf("expected progress clamped to 100, got %d", v.ProgressPercent)
	}
	if v.Duration != "3:05" {
		t.Errorf("expected derived duration 3:05, got %q", v.Duration)
	}
}

func TestVideoKey(t *testing.T) {
	a := Video{Source: SourceYouTubePlaylist, Instructor: "Ada", Category: "Math"}
	b := Video{Source: SourceYouTubePlaylist, Instructor: "Ada", Category: "Math"}
	c := Video{Source: SourceManual, Instructor: "Ada", Category: "Math"}

	if a.Key() != b.Key() {
		t.Error("identical grouping fields must produce equal keys")
	}
	if a.Key() == c.Key() {
		t.Error("different sources must produce distinct keys")
	}
}
