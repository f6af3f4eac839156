package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		input   string
		want    Month
		wantErr bool
	}{
		{input: "2025-07", want: New(2025, time.July)},
		{input: "2025-7", want: New(2025, time.July)},
		{input: " 2024-12 ", want: New(2024, time.December)},
		{input: "2025-13", wantErr: true},
		{input: "july", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Parse(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestMonth_Add(t *testing.T) {
	testCases := []struct {
		month string
		n     int
		want  string
	}{
		{"2025-01", 1, "2025-02"},
		{"2025-12", 1, "2026-01"},
		{"2025-01", -1, "2024-12"},
		{"2025-05", 0, "2025-05"},
		{"2025-05", 24, "2027-05"},
	}
	for _, tc := range testCases {
		if got := MustParse(tc.month).Add(tc.n).String(); got != tc.want {
			t.Errorf("%s.Add(%d) = %s, want %s", tc.month, tc.n, got, tc.want)
		}
	}
}

func TestMonth_Contains(t *testing.T) {
	m := New(2026, time.October)
	testCases := []struct {
		timestamp string
		want      bool
	}{
		{"2026-10-15 09:30", true},
		{"2026-10-01 00:00", true},
		{"2026-11-01 00:00", false},
		{"2025-10-15 09:30", false},
		{"", false},
	}
	for _, tc := range testCases {
		if got := m.Contains(tc.timestamp); got != tc.want {
			t.Errorf("Contains(%q) = %v, want %v", tc.timestamp, got, tc.want)
		}
	}
}

func TestOf(t *testing.T) {
	at := time.Date(2026, time.October, 31, 23, 59, 0, 0, time.UTC)
	if got, want := Of(at), New(2026, time.October); got != want {
		t.Errorf("Of(%v) = %v, want %v", at, got, want)
	}
	if got, want := New(2026, time.October).Title(), "October 2026"; got != want {
		t.Errorf("Title() = %q, want %q", got, want)
	}
}

func TestMonth_JSON(t *testing.T) {
	m := New(2026, time.March)
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(data), `"2026-03"`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
	var back Month
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back != m {
		t.Errorf("Unmarshal() = %v, want %v", back, m)
	}
}
