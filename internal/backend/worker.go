package backend

import (
	"log/slog"
	"time"

	"github.com/schedlab/schedsim/utils/log"
)

// request is one unit of work sent to a worker. Stop is the shutdown
// sentinel: the worker exits its loop without replying.
type request struct {
	PID       int
	RunLength int
	Stop      bool
}

// Worker is an independent execution unit parked on a blocking receive
// from its dedicated channel. It "executes" by waiting proportionally to
// the requested run length and replies with the updated remaining burst.
//
// The reply applies a fixed-quantum decrement regardless of the requested
// run length: the worker models a unit that always charges one full
// quantum per dispatch, independent of the policy driving the controller.
type Worker struct {
	id       int
	quantum  int
	simDelay time.Duration
	requests <-chan request
	replies  chan<- int
	logger   *slog.Logger
}

// Run is the worker loop: WaitingForWork -> Processing -> WaitingForWork,
// until the stop sentinel arrives or the request channel closes. A panic
// while processing is logged and terminates the worker; recovery is the
// controller's job, which will observe a reply timeout on this channel.
func (w *Worker) Run() {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("worker crashed while processing",
				log.IntAttr("worker", w.id),
				log.AnyAttr("panic", r),
			)
		}
	}()

	for req := range w.requests {
		if req.Stop {
			w.logger.Debug("worker stopped", log.IntAttr("worker", w.id))
			return
		}

		time.Sleep(w.simDelay * time.Duration(req.RunLength))

		remaining := req.RunLength - w.quantum
		if remaining < 0 {
			remaining = 0
		}
		w.replies <- remaining
	}
}
