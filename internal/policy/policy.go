package policy

import (
	"fmt"

	"github.com/schedlab/schedsim/internal/proc"
)

const (
	AlgorithmRoundRobin = "RR"
	AlgorithmFCFS       = "FCFS"
)

// Policy decides how long a dispatched process may run and what happens to
// it afterwards. The dispatch loop is written once against this interface.
type Policy interface {
	Name() string
	// SelectRunLength returns the run slice to grant p on this dispatch.
	SelectRunLength(p *proc.Process, quantum int) int
	// RequeueOnPartial reports whether a process with remaining work goes
	// back to the ready queue as a normal outcome of this policy.
	RequeueOnPartial() bool
	// Reorder rearranges the ready queue before a dispatch cycle.
	Reorder(q *proc.Queue)
}

// FromName resolves the configured algorithm name.
func FromName(name string) (Policy, error) {
	switch name {
	case AlgorithmRoundRobin:
		return RoundRobin{}, nil
	case AlgorithmFCFS:
		return FCFS{}, nil
	default:
		return nil, fmt.Errorf("unknown scheduling algorithm %q", name)
	}
}

// RoundRobin grants a bounded time slice and rotates unfinished processes
// to the back of the queue.
type RoundRobin struct{}

func (RoundRobin) Name() string { return "Round Robin" }

func (RoundRobin) SelectRunLength(p *proc.Process, quantum int) int {
	if p.Remaining < quantum {
		return p.Remaining
	}
	return quantum
}

func (RoundRobin) RequeueOnPartial() bool { return true }

// Reorder is the identity: the queue itself is the rotation.
func (RoundRobin) Reorder(q *proc.Queue) {}

// FCFS runs each dispatched process to completion, in arrival order. Late
// arrivals never overtake an enqueued earlier process, which reproduces the
// convoy effect.
type FCFS struct{}

func (FCFS) Name() string { return "FCFS" }

func (FCFS) SelectRunLength(p *proc.Process, quantum int) int {
	return p.Remaining
}

// RequeueOnPartial is false: a dispatched FCFS process is never interrupted
// under this engine, so partial completion only happens when a backend
// misbehaves. The dispatch loop still requeues such a process, as an
// anomaly, so no work is silently lost.
func (FCFS) RequeueOnPartial() bool { return false }

func (FCFS) Reorder(q *proc.Queue) {
	q.SortByArrival()
}
