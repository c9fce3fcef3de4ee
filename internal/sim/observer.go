package sim

import "github.com/schedlab/schedsim/internal/proc"

// Observer receives read-only simulation events. The controller holds no
// reference to any rendering surface: presentation collaborators implement
// this interface and get value copies, never live state.
type Observer interface {
	// OnQueueChanged fires before each dispatch cycle with the ready
	// queue's contents, front first.
	OnQueueChanged(queue []proc.Snapshot)
	// OnStep fires after each dispatch with the advanced clock, the CPU
	// that ran, the process it ran and its remaining burst.
	OnStep(clock, cpuID, pid, remaining int)
	// OnProcessProgress fires once per simulated unit while the local
	// backend executes a slice.
	OnProcessProgress(cpuID, unitsDone, unitsTotal int)
	// OnCompletion fires when every process finished.
	OnCompletion(avgTurnaround, avgWaiting float64)
	// OnNoCompletions fires instead when the run ended with nothing
	// completed, so consumers never divide by zero.
	OnNoCompletions()
	// OnLog carries the human-readable narration of state transitions and
	// dispatch decisions.
	OnLog(message string)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) OnQueueChanged([]proc.Snapshot)  {}
func (NopObserver) OnStep(int, int, int, int)       {}
func (NopObserver) OnProcessProgress(int, int, int) {}
func (NopObserver) OnCompletion(float64, float64)   {}
func (NopObserver) OnNoCompletions()                {}
func (NopObserver) OnLog(string)                    {}

// MultiObserver fans every event out to each member in order.
type MultiObserver []Observer

func (m MultiObserver) OnQueueChanged(queue []proc.Snapshot) {
	for _, o := range m {
		o.OnQueueChanged(queue)
	}
}

func (m MultiObserver) OnStep(clock, cpuID, pid, remaining int) {
	for _, o := range m {
		o.OnStep(clock, cpuID, pid, remaining)
	}
}

func (m MultiObserver) OnProcessProgress(cpuID, unitsDone, unitsTotal int) {
	for _, o := range m {
		o.OnProcessProgress(cpuID, unitsDone, unitsTotal)
	}
}

func (m MultiObserver) OnCompletion(avgTurnaround, avgWaiting float64) {
	for _, o := range m {
		o.OnCompletion(avgTurnaround, avgWaiting)
	}
}

func (m MultiObserver) OnNoCompletions() {
	for _, o := range m {
		o.OnNoCompletions()
	}
}

func (m MultiObserver) OnLog(message string) {
	for _, o := range m {
		o.OnLog(message)
	}
}
