package notify

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"github.com/schedlab/schedsim/internal/proc"
	"github.com/schedlab/schedsim/utils/log"
)

const collaboratorURL = "http://localhost:9090/events"

func TestNotifier_OnCompletion(t *testing.T) {
	ass := assert.New(t)
	n := New(collaboratorURL, log.BuildLogger("ERROR"))
	httpmock.Activate(t)
	defer httpmock.DeactivateAndReset()

	var received Event
	httpmock.RegisterResponder(
		"POST",
		collaboratorURL,
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&received); err != nil {
				return httpmock.NewStringResponse(400, ""), nil
			}
			return httpmock.NewStringResponse(200, `{}`), nil
		},
	)

	n.OnCompletion(6.5, 3.5)

	ass.Equal(1, httpmock.GetTotalCallCount())
	ass.Equal("completion", received.Event)
	ass.InDelta(6.5, received.AvgTurnaround, 1e-9)
	ass.InDelta(3.5, received.AvgWaiting, 1e-9)
}

func TestNotifier_OnStepAndQueueChanged(t *testing.T) {
	ass := assert.New(t)
	n := New(collaboratorURL, log.BuildLogger("ERROR"))
	httpmock.Activate(t)
	defer httpmock.DeactivateAndReset()

	var events []Event
	httpmock.RegisterResponder(
		"POST",
		collaboratorURL,
		func(req *http.Request) (*http.Response, error) {
			var ev Event
			if err := json.NewDecoder(req.Body).Decode(&ev); err != nil {
				return httpmock.NewStringResponse(400, ""), nil
			}
			events = append(events, ev)
			return httpmock.NewStringResponse(200, `{}`), nil
		},
	)

	n.OnStep(4, 2, 1, 2)
	n.OnQueueChanged([]proc.Snapshot{{PID: 3, Burst: 5, Remaining: 5}})

	ass.Len(events, 2)
	ass.Equal("step", events[0].Event)
	ass.Equal(4, events[0].Clock)
	ass.Equal(2, events[0].CPU)
	ass.Equal("queue_changed", events[1].Event)
	ass.Len(events[1].Queue, 1)
	ass.Equal(3, events[1].Queue[0].PID)
}

func TestNotifier_DeliveryFailureIsContained(t *testing.T) {
	n := New(collaboratorURL, log.BuildLogger("ERROR"))
	httpmock.Activate(t)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(
		"POST",
		collaboratorURL,
		httpmock.NewErrorResponder(assert.AnError),
	)

	// Must not panic or propagate: a presentation failure never touches
	// the simulation.
	n.OnNoCompletions()
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestNotifier_QuietEvents(t *testing.T) {
	n := New(collaboratorURL, log.BuildLogger("ERROR"))
	httpmock.Activate(t)
	defer httpmock.DeactivateAndReset()

	n.OnProcessProgress(1, 1, 4)
	n.OnLog("narration stays local")

	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}
