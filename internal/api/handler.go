// Package api exposes the simulation control surface over HTTP: the same
// start/pause/resume/stop/reset calls the embedding presentation layer
// issues, plus a JSON snapshot of the simulation state.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schedlab/schedsim/internal/sim"
	"github.com/schedlab/schedsim/utils/log"
)

type Handler struct {
	Log *slog.Logger
	Sim *sim.Controller
}

func NewHandler(controller *sim.Controller, logger *slog.Logger) *Handler {
	return &Handler{
		Log: logger,
		Sim: controller,
	}
}

// Routes builds the control router. All control endpoints are POST and
// non-blocking; calling one from an inconsistent state is a no-op.
func (h *Handler) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Post("/simulation/start", h.Start)
	r.Post("/simulation/pause", h.Pause)
	r.Post("/simulation/resume", h.Resume)
	r.Post("/simulation/stop", h.Stop)
	r.Post("/simulation/reset", h.Reset)
	r.Get("/simulation/snapshot", h.Snapshot)
	return r
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	h.Sim.Start()
	h.respond(w, "start requested")
}

func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	h.Sim.Pause()
	h.respond(w, "pause requested")
}

func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	h.Sim.Resume()
	h.respond(w, "resume requested")
}

func (h *Handler) Stop(w http.ResponseWriter, r *http.Request) {
	h.Sim.Stop()
	h.respond(w, "stop requested")
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.Sim.Reset()
	h.respond(w, "reset done")
}

func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.Sim.Snapshot()); err != nil {
		h.Log.Error("error encoding snapshot", log.ErrAttr(err))
	}
}

func (h *Handler) respond(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]string{
		"message": message,
		"state":   h.Sim.State().String(),
	})
	if err != nil {
		h.Log.Error("error encoding response", log.ErrAttr(err))
	}
}
