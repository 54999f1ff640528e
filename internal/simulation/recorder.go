package simulation

import "errors"

// Record is the per-tick output of a run.
type Record struct {
	Tick    int `json:"tick"`
	Unaware int `json:"unaware"`
	Aware   int `json:"aware"`
	Bored   int `json:"bored"`
}

// Counts returns the state tallies carried by the record.
func (r Record) Counts() Counts {
	return Counts{Unaware: r.Unaware, Aware: r.Aware, Bored: r.Bored}
}

func newRecord(tick int, c Counts) Record {
	return Record{Tick: tick, Unaware: c.Unaware, Aware: c.Aware, Bored: c.Bored}
}

// Recorder consumes the record stream. It is called synchronously once per
// tick; slow consumers should buffer on their own side.
type Recorder interface {
	Record(Record) error
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(Record) error

// Record calls f(r).
func (f RecorderFunc) Record(r Record) error { return f(r) }

// Discard drops every record.
var Discard Recorder = RecorderFunc(func(Record) error { return nil })

// Series keeps the whole record stream in memory.
type Series struct {
	records []Record
}

// NewSeries creates an empty series.
func NewSeries() *Series {
	return &Series{}
}

// Record appends r.
func (s *Series) Record(r Record) error {
	s.records = append(s.records, r)
	return nil
}

// Records returns the recorded stream in tick order.
func (s *Series) Records() []Record { return s.records }

// Len returns the number of records.
func (s *Series) Len() int { return len(s.records) }

// Last returns the most recent record, if any.
func (s *Series) Last() (Record, bool) {
	if len(s.records) == 0 {
		return Record{}, false
	}
	return s.records[len(s.records)-1], true
}

// Column extracts one state's counts as floats, for numeric consumers.
func (s *Series) Column(state State) []float64 {
	return Column(s.records, state)
}

// Column extracts one state's counts from records as floats.
func Column(records []Record, state State) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = float64(r.Counts().Of(state))
	}
	return out
}

type sampled struct {
	every int
	next  Recorder
}

// Sampled forwards only records whose tick is a multiple of every.
// every <= 1 forwards all records.
func Sampled(every int, next Recorder) Recorder {
	if every <= 1 {
		return next
	}
	return &sampled{every: every, next: next}
}

func (s *sampled) Record(r Record) error {
	if r.Tick%s.every != 0 {
		return nil
	}
	return s.next.Record(r)
}

type multi []Recorder

// Multi fans each record out to every recorder, in order.
// All recorders are called; their errors are joined.
func Multi(recorders ...Recorder) Recorder {
	return multi(recorders)
}

func (m multi) Record(r Record) error {
	var errs []error
	for _, rec := range m {
		if err := rec.Record(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
