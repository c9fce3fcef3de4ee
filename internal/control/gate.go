// Package control implements the cooperative pause/stop signalling shared
// by the dispatch loop and the execution backends. Pause is a gate the loop
// waits on; stop is a level-triggered, one-shot signal that every blocking
// point polls or selects on.
package control

import "sync"

type Gate struct {
	mu      sync.Mutex
	cond    *sync.Cond
	running bool
	stopped bool
	stopC   chan struct{}
}

func NewGate() *Gate {
	g := &Gate{
		running: true,
		stopC:   make(chan struct{}),
	}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// Pause closes the running gate. Blocked WaitRunning callers stay blocked
// until Resume or Stop.
func (g *Gate) Pause() {
	g.mu.Lock()
	g.running = false
	g.mu.Unlock()
}

// Resume reopens the running gate and wakes waiters.
func (g *Gate) Resume() {
	g.mu.Lock()
	g.running = true
	g.mu.Unlock()
	g.cond.Broadcast()
}

// Stop raises the stop signal. It also wakes paused waiters so they can
// observe the stop instead of hanging. Safe to call more than once.
func (g *Gate) Stop() {
	g.mu.Lock()
	if !g.stopped {
		g.stopped = true
		close(g.stopC)
	}
	g.mu.Unlock()
	g.cond.Broadcast()
}

// Stopped reports whether the stop signal has been raised.
func (g *Gate) Stopped() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stopped
}

// StopC returns a channel closed once the stop signal is raised, for use in
// select-based blocking points.
func (g *Gate) StopC() <-chan struct{} {
	return g.stopC
}

// WaitRunning blocks while the gate is paused. It returns false if the stop
// signal was raised, true once the gate is open.
func (g *Gate) WaitRunning() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for !g.running && !g.stopped {
		g.cond.Wait()
	}
	return !g.stopped
}
