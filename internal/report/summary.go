package report

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"infospread-sim/internal/simulation"
)

// Summary condenses a run's record stream.
type Summary struct {
	Ticks     int               `json:"ticks"`
	PeakAware int               `json:"peak_aware"`
	PeakTick  int               `json:"peak_tick"`
	MeanAware float64           `json:"mean_aware"`
	Reach     float64           `json:"reach"` // fraction of agents that ever became aware
	Final     simulation.Record `json:"final"`
}

// Summarize computes a Summary over records for a population of total agents.
// Reach counts initially aware agents too.
func Summarize(records []simulation.Record, total int) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, fmt.Errorf("no records to summarize")
	}
	if total <= 0 {
		return Summary{}, fmt.Errorf("total must be positive, got %d", total)
	}

	aware := simulation.Column(records, simulation.Aware)
	peak := floats.MaxIdx(aware)
	final := records[len(records)-1]

	return Summary{
		Ticks:     len(records),
		PeakAware: records[peak].Aware,
		PeakTick:  records[peak].Tick,
		MeanAware: stat.Mean(aware, nil),
		Reach:     1 - float64(final.Unaware)/float64(total),
		Final:     final,
	}, nil
}

// WriteSummary prints a short human readable summary.
func WriteSummary(w io.Writer, s Summary) error {
	_, err := fmt.Fprintf(w,
		"ticks: %d\npeak aware: %d at tick %d\nmean aware: %.2f\nreach: %.1f%%\nfinal: %s\n",
		s.Ticks, s.PeakAware, s.PeakTick, s.MeanAware, s.Reach*100, s.Final.Counts())
	return err
}
