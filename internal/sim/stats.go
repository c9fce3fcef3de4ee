package sim

import (
	"gonum.org/v1/gonum/stat"

	"github.com/schedlab/schedsim/internal/proc"
)

// Stats holds the end-of-run performance figures, computed only over
// completed processes.
type Stats struct {
	Completed     int
	AvgTurnaround float64
	AvgWaiting    float64
}

// Summarize computes mean turnaround and waiting times. ok is false when no
// process completed, in which case no statistics exist.
func Summarize(procs []*proc.Process) (Stats, bool) {
	var turnarounds, waits []float64
	for _, p := range procs {
		t, ok := p.Turnaround()
		if !ok {
			continue
		}
		w, _ := p.Waiting()
		turnarounds = append(turnarounds, float64(t))
		waits = append(waits, float64(w))
	}
	if len(turnarounds) == 0 {
		return Stats{}, false
	}
	return Stats{
		Completed:     len(turnarounds),
		AvgTurnaround: stat.Mean(turnarounds, nil),
		AvgWaiting:    stat.Mean(waits, nil),
	}, true
}
