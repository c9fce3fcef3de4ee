package proc

import (
	"fmt"

	"github.com/markphelps/optional"
)

// Interval is one recorded execution slice of a process on a CPU, in
// logical clock units. Start < End always holds.
type Interval struct {
	CPU   int `json:"cpu"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// Process is the unit of simulated work. It is owned exclusively by the
// dispatch loop while a simulation is running; everybody else works with
// Snapshot copies.
type Process struct {
	PID       int
	Burst     int
	Arrival   int
	Remaining int
	StartTime optional.Int
	EndTime   optional.Int
	History   []Interval
}

func New(pid, burst, arrival int) *Process {
	return &Process{
		PID:       pid,
		Burst:     burst,
		Arrival:   arrival,
		Remaining: burst,
	}
}

func (p *Process) String() string {
	return fmt.Sprintf("P%d (burst=%du, arrival=%d, remaining=%du)",
		p.PID, p.Burst, p.Arrival, p.Remaining)
}

// Done reports whether the process has finished all its work.
func (p *Process) Done() bool {
	return p.Remaining == 0
}

// RecordRun appends one execution interval and marks the first dispatch
// time. Intervals are appended in issuance order, so history stays sorted
// and non-overlapping as long as start never precedes the previous end.
func (p *Process) RecordRun(cpuID, startClock, endClock int) {
	if !p.StartTime.Present() {
		p.StartTime = optional.NewInt(startClock)
	}
	p.History = append(p.History, Interval{CPU: cpuID, Start: startClock, End: endClock})
}

// Finish stamps the completion time. Call only when Remaining reached zero.
func (p *Process) Finish(clock int) {
	p.EndTime = optional.NewInt(clock)
}

// Turnaround returns endTime - arrival, valid only for completed processes.
func (p *Process) Turnaround() (int, bool) {
	end, err := p.EndTime.Get()
	if err != nil {
		return 0, false
	}
	return end - p.Arrival, true
}

// Waiting returns turnaround - burst, valid only for completed processes.
func (p *Process) Waiting() (int, bool) {
	t, ok := p.Turnaround()
	if !ok {
		return 0, false
	}
	return t - p.Burst, true
}

// Snapshot is a read-only value copy of a process handed to observers.
type Snapshot struct {
	PID       int          `json:"pid"`
	Burst     int          `json:"burst"`
	Arrival   int          `json:"arrival"`
	Remaining int          `json:"remaining"`
	StartTime optional.Int `json:"start_time,omitempty"`
	EndTime   optional.Int `json:"end_time,omitempty"`
	History   []Interval   `json:"history,omitempty"`
}

func (p *Process) Snapshot() Snapshot {
	history := make([]Interval, len(p.History))
	copy(history, p.History)
	return Snapshot{
		PID:       p.PID,
		Burst:     p.Burst,
		Arrival:   p.Arrival,
		Remaining: p.Remaining,
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
		History:   history,
	}
}
