package backend

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/schedlab/schedsim/internal/control"
	"github.com/schedlab/schedsim/internal/proc"
	"github.com/schedlab/schedsim/utils/log"
)

// workerLink is the single-producer/single-consumer channel pairing between
// the controller and one worker: one request in flight, one reply expected.
type workerLink struct {
	requests chan request
	replies  chan int
}

// Remote dispatches execution requests to independent worker units, one per
// CPU id. A worker failure is contained here: on timeout or channel error
// the deterministic fallback value is returned together with the error, and
// the simulation keeps going.
type Remote struct {
	gate         *control.Gate
	workers      map[int]*workerLink
	simDelay     time.Duration
	replyTimeout time.Duration
	logger       *slog.Logger
}

// NewRemote spawns one worker goroutine per CPU id in 1..cpuCount, each
// bound to its own request/reply channel pair.
func NewRemote(gate *control.Gate, cpuCount, quantum int, simDelay, replyTimeout time.Duration, logger *slog.Logger) *Remote {
	b := &Remote{
		gate:         gate,
		workers:      make(map[int]*workerLink, cpuCount),
		simDelay:     simDelay,
		replyTimeout: replyTimeout,
		logger:       logger,
	}
	for id := 1; id <= cpuCount; id++ {
		link := &workerLink{
			requests: make(chan request, 1),
			replies:  make(chan int, 1),
		}
		b.workers[id] = link
		w := &Worker{
			id:       id,
			quantum:  quantum,
			simDelay: simDelay,
			requests: link.requests,
			replies:  link.replies,
			logger:   logger,
		}
		go w.Run()
	}
	return b
}

func (b *Remote) Execute(cpuID int, p *proc.Process, runLength int) (int, error) {
	link, ok := b.workers[cpuID]
	if !ok {
		return fallback(p.Remaining, runLength),
			fmt.Errorf("cpu %d pid %d: no worker bound: %w", cpuID, p.PID, ErrUnavailable)
	}

	// A worker that timed out earlier may have left a stale reply behind;
	// it belongs to an abandoned request, never to this one.
	select {
	case stale := <-link.replies:
		b.logger.Debug("discarded stale worker reply",
			log.IntAttr("cpu", cpuID),
			log.IntAttr("stale_remaining", stale),
		)
	default:
	}

	select {
	case link.requests <- request{PID: p.PID, RunLength: runLength}:
	default:
		b.logger.Warn("worker not accepting requests, using fallback",
			log.IntAttr("cpu", cpuID),
			log.IntAttr("pid", p.PID),
		)
		return fallback(p.Remaining, runLength),
			fmt.Errorf("cpu %d pid %d: send rejected: %w", cpuID, p.PID, ErrUnavailable)
	}

	// Block for the simulated execution time, then await the reply with a
	// bounded timeout. Both waits abort promptly on the stop signal.
	execWait := time.NewTimer(b.simDelay * time.Duration(runLength))
	defer execWait.Stop()
	select {
	case <-execWait.C:
	case <-b.gate.StopC():
		return p.Remaining, nil
	}

	replyWait := time.NewTimer(b.replyTimeout)
	defer replyWait.Stop()
	select {
	case remaining := <-link.replies:
		return remaining, nil
	case <-replyWait.C:
		b.logger.Warn("worker reply timed out, using fallback",
			log.IntAttr("cpu", cpuID),
			log.IntAttr("pid", p.PID),
			log.IntAttr("run_length", runLength),
		)
		return fallback(p.Remaining, runLength),
			fmt.Errorf("cpu %d pid %d: %w", cpuID, p.PID, ErrTimeout)
	case <-b.gate.StopC():
		return p.Remaining, nil
	}
}

// Shutdown broadcasts the stop sentinel to every worker. It does not wait
// for replies; workers do not reply to the sentinel.
func (b *Remote) Shutdown() {
	for id, link := range b.workers {
		select {
		case link.requests <- request{Stop: true}:
		default:
			b.logger.Warn("worker did not accept stop sentinel",
				log.IntAttr("worker", id))
		}
	}
}
