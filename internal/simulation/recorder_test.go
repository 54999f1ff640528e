package simulation

import (
	"errors"
	"testing"
)

func TestCountConservesPopulation(t *testing.T) {
	agents := []Agent{
		agentAt(Unaware, 0, 0),
		agentAt(Aware, 0, 0),
		agentAt(Aware, 0, 0),
		agentAt(Bored, 0, 0),
	}
	c := Count(agents)
	if c != (Counts{Unaware: 1, Aware: 2, Bored: 1}) {
		t.Fatalf("Count = %+v", c)
	}
	if c.Total() != len(agents) {
		t.Fatalf("Total = %d, want %d", c.Total(), len(agents))
	}
	if c.Of(Aware) != 2 || c.Of(State(9)) != 0 {
		t.Fatalf("Of returned unexpected values for %+v", c)
	}
}

func TestSampledForwardsEveryNth(t *testing.T) {
	series := NewSeries()
	rec := Sampled(3, series)
	for i := 0; i < 10; i++ {
		if err := rec.Record(Record{Tick: i}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	var ticks []int
	for _, r := range series.Records() {
		ticks = append(ticks, r.Tick)
	}
	want := []int{0, 3, 6, 9}
	if len(ticks) != len(want) {
		t.Fatalf("ticks = %v, want %v", ticks, want)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Fatalf("ticks = %v, want %v", ticks, want)
		}
	}

	if Sampled(1, series) != Recorder(series) {
		t.Fatal("Sampled(1) should return the recorder unchanged")
	}
}

func TestMultiCallsEveryRecorder(t *testing.T) {
	failure := errors.New("boom")
	a := NewSeries()
	b := NewSeries()
	failing := RecorderFunc(func(Record) error { return failure })

	err := Multi(a, failing, b).Record(Record{Tick: 1, Aware: 2})
	if !errors.Is(err, failure) {
		t.Fatalf("error = %v, want failure", err)
	}
	if a.Len() != 1 || b.Len() != 1 {
		t.Fatalf("lens = %d, %d; want both 1", a.Len(), b.Len())
	}
}

func TestSeriesColumnAndLast(t *testing.T) {
	series := NewSeries()
	if _, ok := series.Last(); ok {
		t.Fatal("empty series should have no last record")
	}
	series.Record(Record{Tick: 0, Unaware: 9, Aware: 1})
	series.Record(Record{Tick: 1, Unaware: 7, Aware: 3})

	col := series.Column(Aware)
	if len(col) != 2 || col[0] != 1 || col[1] != 3 {
		t.Fatalf("Column(Aware) = %v", col)
	}
	last, ok := series.Last()
	if !ok || last.Tick != 1 {
		t.Fatalf("Last = %+v, %v", last, ok)
	}
}
