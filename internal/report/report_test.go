package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"infospread-sim/internal/simulation"
)

var sample = []simulation.Record{
	{Tick: 0, Unaware: 8, Aware: 2, Bored: 0},
	{Tick: 1, Unaware: 5, Aware: 5, Bored: 0},
	{Tick: 2, Unaware: 4, Aware: 3, Bored: 3},
	{Tick: 3, Unaware: 4, Aware: 0, Bored: 6},
}

func writeAll(t *testing.T, format Format) string {
	t.Helper()
	var buf bytes.Buffer
	w, err := NewWriter(format, &buf)
	if err != nil {
		t.Fatalf("NewWriter(%s) failed: %v", format, err)
	}
	for _, r := range sample {
		if err := w.Record(r); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	return buf.String()
}

func TestTextWriter(t *testing.T) {
	out := writeAll(t, FormatText)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(sample) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(sample), out)
	}
	if !strings.Contains(lines[1], "Unaware: 5  Aware: 5  Bored: 0") {
		t.Errorf("unexpected line %q", lines[1])
	}
}

func TestCSVWriter(t *testing.T) {
	out := writeAll(t, FormatCSV)
	want := "tick,unaware,aware,bored\n0,8,2,0\n1,5,5,0\n2,4,3,3\n3,4,0,6\n"
	if out != want {
		t.Fatalf("csv output:\n%s\nwant:\n%s", out, want)
	}
}

func TestJSONLWriter(t *testing.T) {
	out := writeAll(t, FormatJSONL)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(sample) {
		t.Fatalf("got %d lines, want %d", len(lines), len(sample))
	}
	var got simulation.Record
	if err := json.Unmarshal([]byte(lines[2]), &got); err != nil {
		t.Fatalf("invalid json %q: %v", lines[2], err)
	}
	if got != sample[2] {
		t.Fatalf("decoded %+v, want %+v", got, sample[2])
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"CSV", FormatCSV, false},
		{"jsonl", FormatJSONL, false},
		{"", FormatText, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(sample, 10)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if s.Ticks != 4 || s.PeakAware != 5 || s.PeakTick != 1 {
		t.Fatalf("summary = %+v", s)
	}
	if math.Abs(s.MeanAware-2.5) > 1e-12 {
		t.Errorf("MeanAware = %v, want 2.5", s.MeanAware)
	}
	if math.Abs(s.Reach-0.6) > 1e-12 {
		t.Errorf("Reach = %v, want 0.6", s.Reach)
	}
	if s.Final != sample[3] {
		t.Errorf("Final = %+v", s.Final)
	}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, s); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	if !strings.Contains(buf.String(), "peak aware: 5 at tick 1") {
		t.Errorf("summary text missing peak line:\n%s", buf.String())
	}
}

func TestSummarizeRejectsEmpty(t *testing.T) {
	if _, err := Summarize(nil, 10); err == nil {
		t.Fatal("expected error for empty records")
	}
	if _, err := Summarize(sample, 0); err == nil {
		t.Fatal("expected error for zero total")
	}
}
