// Package notify forwards simulation events to an external presentation
// collaborator over HTTP. It implements the simulation observer interface;
// delivery failures are logged and never affect the run.
package notify

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/schedlab/schedsim/internal/proc"
	"github.com/schedlab/schedsim/utils/log"
)

type Notifier struct {
	URL string
	Log *slog.Logger
}

func New(url string, logger *slog.Logger) *Notifier {
	return &Notifier{
		URL: url,
		Log: logger,
	}
}

// Event is the wire form of one forwarded observation.
type Event struct {
	Event         string          `json:"event"`
	Clock         int             `json:"clock,omitempty"`
	CPU           int             `json:"cpu,omitempty"`
	PID           int             `json:"pid,omitempty"`
	Remaining     int             `json:"remaining,omitempty"`
	AvgTurnaround float64         `json:"avg_turnaround,omitempty"`
	AvgWaiting    float64         `json:"avg_waiting,omitempty"`
	Queue         []proc.Snapshot `json:"queue,omitempty"`
}

func (n *Notifier) OnQueueChanged(queue []proc.Snapshot) {
	n.post(Event{Event: "queue_changed", Queue: queue})
}

func (n *Notifier) OnStep(clock, cpuID, pid, remaining int) {
	n.post(Event{Event: "step", Clock: clock, CPU: cpuID, PID: pid, Remaining: remaining})
}

// OnProcessProgress is not forwarded: per-unit progress is too chatty for a
// webhook consumer, which can derive it from step events.
func (n *Notifier) OnProcessProgress(cpuID, unitsDone, unitsTotal int) {}

func (n *Notifier) OnCompletion(avgTurnaround, avgWaiting float64) {
	n.post(Event{Event: "completion", AvgTurnaround: avgTurnaround, AvgWaiting: avgWaiting})
}

func (n *Notifier) OnNoCompletions() {
	n.post(Event{Event: "no_completions"})
}

// OnLog is not forwarded; narration stays on the local log sinks.
func (n *Notifier) OnLog(message string) {}

func (n *Notifier) post(ev Event) {
	body, err := json.Marshal(ev)
	if err != nil {
		n.Log.Error("error marshalling event", log.ErrAttr(err))
		return
	}

	resp, err := http.Post(n.URL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		n.Log.Error("error delivering event",
			log.ErrAttr(err),
			log.StringAttr("url", n.URL),
			log.StringAttr("event", ev.Event),
		)
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		n.Log.Warn("event rejected by collaborator",
			log.StringAttr("url", n.URL),
			log.StringAttr("event", ev.Event),
			log.IntAttr("status_code", resp.StatusCode),
		)
	}
}
