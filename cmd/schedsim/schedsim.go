package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/schedlab/schedsim/internal/api"
	"github.com/schedlab/schedsim/internal/sim"
	"github.com/schedlab/schedsim/pkg/notify"
	"github.com/schedlab/schedsim/utils/config"
	"github.com/schedlab/schedsim/utils/log"
)

func main() {
	configPath := "configs/config.json"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg := sim.Config{}
	if err := config.Load(configPath, &cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := log.BuildLogger(cfg.LogLevel)

	observers := sim.MultiObserver{sim.NewConsole(os.Stdout)}
	if cfg.NotifyURL != "" {
		observers = append(observers, notify.New(cfg.NotifyURL, logger))
	}

	controller, err := sim.NewController(cfg, observers, logger)
	if err != nil {
		logger.Error("refusing to start", log.ErrAttr(err))
		os.Exit(1)
	}

	if cfg.Port > 0 {
		handler := api.NewHandler(controller, logger)
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Port)
			logger.Info("control API listening", log.StringAttr("addr", addr))
			if err := http.ListenAndServe(addr, handler.Routes()); err != nil {
				logger.Error("control API stopped", log.ErrAttr(err))
			}
		}()
	}

	controller.Start()
	<-controller.Done()

	procs := controller.Processes()
	sim.RenderSummary(os.Stdout, procs)
	sim.RenderGantt(os.Stdout, procs, cfg.CPUCount)

	if cfg.Port > 0 {
		// The control API can reset and start further runs; stay alive
		// until interrupted.
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
	}

	controller.Shutdown()
}
