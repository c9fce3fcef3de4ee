package sim

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/schedlab/schedsim/internal/backend"
	"github.com/schedlab/schedsim/internal/control"
	"github.com/schedlab/schedsim/internal/policy"
	"github.com/schedlab/schedsim/internal/proc"
	"github.com/schedlab/schedsim/utils/log"
	uniqueid "github.com/schedlab/schedsim/utils/unique-id"
)

// resetJoinTimeout bounds how long Reset and Shutdown wait for the dispatch
// loop to exit before proceeding anyway.
const resetJoinTimeout = time.Second

// CPUAssignment is the current occupant of one CPU in a snapshot. PID 0
// means idle.
type CPUAssignment struct {
	CPU int `json:"cpu"`
	PID int `json:"pid"`
}

// SimSnapshot is the read-only view handed to external consumers after each
// dispatch step: clock, per-CPU assignment, queue contents and the full
// process set with execution histories.
type SimSnapshot struct {
	State     string          `json:"state"`
	Clock     int             `json:"clock"`
	CPUs      []CPUAssignment `json:"cpus"`
	Queue     []proc.Snapshot `json:"queue"`
	Processes []proc.Snapshot `json:"processes"`
}

// Controller owns the clock, the ready queue and the per-CPU assignments,
// and drives the configured policy end to end on a dedicated goroutine.
// Control calls are non-blocking and safe from any goroutine; they only
// touch the state machine, never the loop's data.
type Controller struct {
	cfg    Config
	pol    policy.Policy
	logger *slog.Logger
	obs    Observer
	rng    *rand.Rand

	mu       sync.Mutex
	state    State
	gate     *control.Gate
	backend  backend.Backend
	clock    int
	procs    []*proc.Process
	ready    *proc.Queue
	assigned map[int]int
	// published copies for Snapshot(); the live procs/queue are owned by
	// the dispatch loop while it runs.
	queueSnaps []proc.Snapshot
	procSnaps  []proc.Snapshot
	loopDone   chan struct{}

	// backendFactory, when non-nil, supplies the execution backend in
	// place of the configured one.
	backendFactory func() backend.Backend
}

func NewController(cfg Config, obs Observer, logger *slog.Logger) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	pol, err := policy.FromName(cfg.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if obs == nil {
		obs = NopObserver{}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Controller{
		cfg:    cfg,
		pol:    pol,
		logger: logger,
		obs:    obs,
		rng:    rand.New(rand.NewSource(seed)),
		state:  StateIdle,
	}, nil
}

// Start launches a new run on a dedicated goroutine. Calling it while a run
// is active is informational, not an error: it is logged and ignored.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.state == StateRunning || c.state == StatePaused || c.state == StateStopping {
		c.mu.Unlock()
		c.logger.Info("start ignored, simulation already active")
		c.obs.OnLog("Simulation already running.")
		return
	}

	c.gate = control.NewGate()
	c.clock = 0
	c.procs = c.generateProcesses()
	c.ready = proc.NewQueue()
	for _, p := range sortedByArrival(c.procs) {
		c.ready.Enqueue(p)
	}
	c.assigned = make(map[int]int, c.cfg.CPUCount)
	for cpu := 1; cpu <= c.cfg.CPUCount; cpu++ {
		c.assigned[cpu] = 0
	}
	c.backend = c.buildBackend()
	c.publishLocked()
	c.state = StateRunning
	c.loopDone = make(chan struct{})
	done := c.loopDone
	c.mu.Unlock()

	c.narrate("Simulation started.")
	go c.run(done)
}

// Pause suspends the dispatch loop at its next suspension point. A no-op
// unless the simulation is running.
func (c *Controller) Pause() {
	c.mu.Lock()
	if c.state != StateRunning {
		c.mu.Unlock()
		c.logger.Debug("pause ignored", log.StringAttr("state", c.state.String()))
		return
	}
	c.state = StatePaused
	c.gate.Pause()
	c.mu.Unlock()
	c.narrate("Simulation paused.")
}

// Resume reopens the gate after a pause.
func (c *Controller) Resume() {
	c.mu.Lock()
	if c.state != StatePaused {
		c.mu.Unlock()
		c.logger.Debug("resume ignored", log.StringAttr("state", c.state.String()))
		return
	}
	c.state = StateRunning
	c.gate.Resume()
	c.mu.Unlock()
	c.narrate("Simulation resumed.")
}

// Stop raises the stop signal. The loop aborts within one unit of in-flight
// work and transitions to Stopped on exit.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.state != StateRunning && c.state != StatePaused {
		c.mu.Unlock()
		c.logger.Debug("stop ignored", log.StringAttr("state", c.state.String()))
		return
	}
	c.state = StateStopping
	c.gate.Stop()
	c.mu.Unlock()
	c.narrate("Stop requested.")
}

// Reset stops the run, joins the dispatch loop with a bounded wait and
// clears clock, processes, queue and history, returning to Idle.
func (c *Controller) Reset() {
	c.Stop()
	c.join()

	c.mu.Lock()
	c.clock = 0
	c.procs = nil
	c.ready = nil
	c.assigned = nil
	c.queueSnaps = nil
	c.procSnaps = nil
	c.loopDone = nil
	c.state = StateIdle
	c.mu.Unlock()
	c.narrate("Simulation reset. Ready to start again.")
}

// Shutdown stops the run and joins the loop; the loop broadcasts the stop
// sentinel to remote workers on its way out.
func (c *Controller) Shutdown() {
	c.Stop()
	c.join()
}

func (c *Controller) join() {
	c.mu.Lock()
	done := c.loopDone
	c.mu.Unlock()
	if done == nil {
		return
	}
	select {
	case <-done:
	case <-time.After(resetJoinTimeout):
		c.logger.Warn("dispatch loop did not exit within the join timeout")
	}
}

// State returns the current control state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Clock returns the current logical time.
func (c *Controller) Clock() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clock
}

// Done returns a channel closed when the current run's loop has exited.
// Already closed if no run is active.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loopDone == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return c.loopDone
}

// Processes returns value copies of every process of the current run.
func (c *Controller) Processes() []proc.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]proc.Snapshot, len(c.procSnaps))
	copy(out, c.procSnaps)
	return out
}

// Snapshot returns the current read-only simulation view.
func (c *Controller) Snapshot() SimSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := SimSnapshot{
		State:     c.state.String(),
		Clock:     c.clock,
		CPUs:      make([]CPUAssignment, 0, len(c.assigned)),
		Queue:     append([]proc.Snapshot(nil), c.queueSnaps...),
		Processes: append([]proc.Snapshot(nil), c.procSnaps...),
	}
	for cpu := 1; cpu <= c.cfg.CPUCount; cpu++ {
		if pid, ok := c.assigned[cpu]; ok {
			snap.CPUs = append(snap.CPUs, CPUAssignment{CPU: cpu, PID: pid})
		}
	}
	return snap
}

// run is the dispatch loop. It exclusively owns procs, ready and the clock
// until it exits; shared views are published under the mutex.
func (c *Controller) run(done chan struct{}) {
	defer close(done)
	defer c.backend.Shutdown()

	c.narrate("Using %s scheduling algorithm", c.pol.Name())
	c.narrate("Process queue:")
	for _, p := range c.procs {
		c.narrate("   Process %d: Burst=%du, Arrival=%d", p.PID, p.Burst, p.Arrival)
	}
	c.narrate("Scheduling started.")

	for c.ready.Len() > 0 {
		if !c.gate.WaitRunning() {
			break
		}

		c.pol.Reorder(c.ready)
		queueView := c.ready.Snapshots()
		c.mu.Lock()
		c.queueSnaps = queueView
		c.mu.Unlock()
		c.obs.OnQueueChanged(queueView)

		for cpu := 1; cpu <= c.cfg.CPUCount; cpu++ {
			if c.ready.Len() == 0 || c.gate.Stopped() {
				break
			}
			c.dispatch(cpu, c.ready.Dequeue())
		}

		// Bounded yield between cycles keeps the observation cadence
		// regular; interrupted immediately by stop.
		select {
		case <-time.After(c.cfg.CycleDelay()):
		case <-c.gate.StopC():
		}
	}

	stopped := c.gate.Stopped()
	if !stopped {
		if s, ok := Summarize(c.procs); ok {
			c.narrate("All processes completed.")
			c.narrate("Performance statistics:")
			c.narrate("   Average Turnaround Time: %.2f time units", s.AvgTurnaround)
			c.narrate("   Average Waiting Time: %.2f time units", s.AvgWaiting)
			c.obs.OnCompletion(s.AvgTurnaround, s.AvgWaiting)
		} else {
			c.obs.OnNoCompletions()
		}
	} else {
		c.narrate("Simulation stopped at time %d.", c.clock)
	}

	c.mu.Lock()
	c.state = StateStopped
	c.publishLocked()
	c.mu.Unlock()
}

// dispatch runs one process on one CPU: select the run length, execute,
// record history, advance the clock and requeue or finalize. If the stop
// signal fired during execution the slice is discarded whole: no interval
// is recorded and the clock does not move.
func (c *Controller) dispatch(cpu int, p *proc.Process) {
	runLength := c.pol.SelectRunLength(p, c.cfg.Quantum)

	c.mu.Lock()
	c.assigned[cpu] = p.PID
	c.mu.Unlock()
	c.narrate("CPU %d -> P%d | Remaining: %du | Run: %du", cpu, p.PID, p.Remaining, runLength)

	start := c.clock
	remaining, err := c.backend.Execute(cpu, p, runLength)
	if err != nil {
		c.logger.Warn("backend failure, simulation continues",
			log.ErrAttr(err),
			log.IntAttr("cpu", cpu),
			log.IntAttr("pid", p.PID),
		)
		c.narrate("CPU %d P%d: %v (deterministic fallback applied)", cpu, p.PID, err)
	}

	if c.gate.Stopped() {
		c.mu.Lock()
		c.assigned[cpu] = 0
		c.mu.Unlock()
		return
	}

	p.RecordRun(cpu, start, start+runLength)
	p.Remaining = remaining

	c.mu.Lock()
	c.clock = start + runLength
	c.assigned[cpu] = 0
	clock := c.clock
	c.mu.Unlock()

	if p.Done() {
		p.Finish(clock)
		c.narrate("P%d completed execution", p.PID)
	} else {
		c.ready.Enqueue(p)
		if c.pol.RequeueOnPartial() {
			c.narrate("P%d re-queued with %du remaining", p.PID, p.Remaining)
		} else {
			// Backend anomaly under a run-to-completion policy: keep the
			// work rather than dropping it, and say so.
			c.logger.Warn("process returned unfinished under run-to-completion policy",
				log.IntAttr("pid", p.PID),
				log.IntAttr("remaining", p.Remaining),
			)
			c.narrate("P%d returned with %du remaining under %s, re-queued", p.PID, p.Remaining, c.pol.Name())
		}
	}

	c.mu.Lock()
	c.publishLocked()
	c.mu.Unlock()
	c.obs.OnStep(clock, cpu, p.PID, p.Remaining)
}

// publishLocked refreshes the snapshot copies read by Snapshot() and
// Processes(). Caller holds c.mu and must own the live procs and queue.
func (c *Controller) publishLocked() {
	snaps := make([]proc.Snapshot, 0, len(c.procs))
	for _, p := range c.procs {
		snaps = append(snaps, p.Snapshot())
	}
	c.procSnaps = snaps
	if c.ready != nil {
		c.queueSnaps = c.ready.Snapshots()
	} else {
		c.queueSnaps = nil
	}
}

func (c *Controller) buildBackend() backend.Backend {
	if c.backendFactory != nil {
		return c.backendFactory()
	}
	switch c.cfg.Backend {
	case BackendRemote:
		return backend.NewRemote(c.gate, c.cfg.CPUCount, c.cfg.Quantum,
			c.cfg.UnitDelay(), c.cfg.ReplyTimeout(), c.logger)
	default:
		return backend.NewLocal(c.gate, c.cfg.UnitDelay(), c.obs.OnProcessProgress, c.logger)
	}
}

// generateProcesses builds the run's batch: either the supplied specs or
// random bursts in the configured range with arrival = creation index.
func (c *Controller) generateProcesses() []*proc.Process {
	if len(c.cfg.Processes) > 0 {
		procs := make([]*proc.Process, 0, len(c.cfg.Processes))
		for _, spec := range c.cfg.Processes {
			procs = append(procs, proc.New(spec.PID, spec.Burst, spec.Arrival))
		}
		return procs
	}
	ids := uniqueid.Init()
	procs := make([]*proc.Process, 0, c.cfg.ProcessCount)
	for i := 0; i < c.cfg.ProcessCount; i++ {
		burst := c.cfg.BurstMin + c.rng.Intn(c.cfg.BurstMax-c.cfg.BurstMin+1)
		procs = append(procs, proc.New(ids.GetUniqueID(), burst, i))
	}
	return procs
}

// narrate emits one human-readable line to both the structured log and the
// observer's log sink.
func (c *Controller) narrate(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.logger.Info(msg)
	c.obs.OnLog(msg)
}

func sortedByArrival(procs []*proc.Process) []*proc.Process {
	out := make([]*proc.Process, len(procs))
	copy(out, procs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Arrival < out[j].Arrival
	})
	return out
}
