// Package report turns the per-tick record stream into text, CSV or JSON
// lines and computes run summaries.
package report

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"infospread-sim/internal/simulation"
)

// Format names an output encoding for records.
type Format string

const (
	FormatText  Format = "text"
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatCSV, FormatJSONL:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: text, csv, jsonl)", s)
	}
}

// Writer is a Recorder that encodes records to an io.Writer.
// Flush must be called once the run is over.
type Writer interface {
	simulation.Recorder
	Flush() error
}

// NewWriter returns a record writer for the given format.
func NewWriter(format Format, w io.Writer) (Writer, error) {
	switch format {
	case FormatText, "":
		return &textWriter{w: bufio.NewWriter(w)}, nil
	case FormatCSV:
		return &csvWriter{w: csv.NewWriter(w)}, nil
	case FormatJSONL:
		bw := bufio.NewWriter(w)
		return &jsonlWriter{buf: bw, enc: json.NewEncoder(bw)}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// textWriter prints the live statistics line for each record.
type textWriter struct {
	w *bufio.Writer
}

func (t *textWriter) Record(r simulation.Record) error {
	_, err := fmt.Fprintf(t.w, "tick %5d  %s\n", r.Tick, r.Counts())
	return err
}

func (t *textWriter) Flush() error { return t.w.Flush() }

type csvWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

var csvHeader = []string{"tick", "unaware", "aware", "bored"}

func (c *csvWriter) Record(r simulation.Record) error {
	if !c.wroteHeader {
		if err := c.w.Write(csvHeader); err != nil {
			return fmt.Errorf("writing csv header: %w", err)
		}
		c.wroteHeader = true
	}
	row := []string{
		strconv.Itoa(r.Tick),
		strconv.Itoa(r.Unaware),
		strconv.Itoa(r.Aware),
		strconv.Itoa(r.Bored),
	}
	if err := c.w.Write(row); err != nil {
		return fmt.Errorf("writing csv row: %w", err)
	}
	return nil
}

func (c *csvWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

type jsonlWriter struct {
	buf *bufio.Writer
	enc *json.Encoder
}

func (j *jsonlWriter) Record(r simulation.Record) error {
	if err := j.enc.Encode(r); err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	return nil
}

func (j *jsonlWriter) Flush() error { return j.buf.Flush() }
