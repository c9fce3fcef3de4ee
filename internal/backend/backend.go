// Package backend provides the execution backends behind the dispatch
// loop: an in-process time-based simulation and a remote one dispatching
// work to worker units over per-CPU channels.
package backend

import (
	"errors"

	"github.com/schedlab/schedsim/internal/proc"
)

var (
	// ErrTimeout: a worker did not reply within the reply timeout.
	ErrTimeout = errors.New("worker reply timed out")
	// ErrUnavailable: the worker channel rejected the request.
	ErrUnavailable = errors.New("worker channel unavailable")
)

// Backend executes a process on a CPU for a requested run length and
// returns the updated remaining burst. Implementations must respect the
// stop signal, aborting promptly with a best-effort value instead of
// hanging. A non-nil error is informational: the returned remaining value
// is always usable, so per-dispatch failures never abort the simulation.
type Backend interface {
	Execute(cpuID int, p *proc.Process, runLength int) (int, error)
	// Shutdown releases backend resources. For the remote backend it
	// broadcasts the stop sentinel to every worker without waiting for
	// further replies.
	Shutdown()
}

// fallback is the deterministic decrement applied when a worker fails:
// the same formula local execution uses.
func fallback(remaining, runLength int) int {
	if remaining < runLength {
		return 0
	}
	return remaining - runLength
}
