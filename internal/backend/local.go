package backend

import (
	"log/slog"
	"time"

	"github.com/schedlab/schedsim/internal/control"
	"github.com/schedlab/schedsim/internal/proc"
	"github.com/schedlab/schedsim/utils/log"
)

// ProgressFunc receives per-unit execution progress from the local backend
// (consumed by the progress-bar collaborator).
type ProgressFunc func(cpuID, unitsDone, unitsTotal int)

// Local simulates execution by advancing in unit steps, checking the pause
// gate and the stop signal every unit so control actions take effect within
// one time unit.
type Local struct {
	gate      *control.Gate
	unitDelay time.Duration
	progress  ProgressFunc
	logger    *slog.Logger
}

func NewLocal(gate *control.Gate, unitDelay time.Duration, progress ProgressFunc, logger *slog.Logger) *Local {
	if progress == nil {
		progress = func(int, int, int) {}
	}
	return &Local{
		gate:      gate,
		unitDelay: unitDelay,
		progress:  progress,
		logger:    logger,
	}
}

// Execute runs p for runLength units. If the stop signal is observed the
// slice is abandoned and the process's current remaining value is returned
// untouched; the caller discards the slice.
func (b *Local) Execute(cpuID int, p *proc.Process, runLength int) (int, error) {
	for t := 0; t < runLength; t++ {
		if !b.gate.WaitRunning() {
			b.logger.Debug("local execution aborted by stop",
				log.IntAttr("cpu", cpuID),
				log.IntAttr("pid", p.PID),
				log.IntAttr("units_done", t),
			)
			return p.Remaining, nil
		}
		time.Sleep(b.unitDelay)
		b.progress(cpuID, t+1, runLength)
	}
	return fallback(p.Remaining, runLength), nil
}

func (b *Local) Shutdown() {}
