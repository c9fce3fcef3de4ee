package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		CPUCount:     3,
		Algorithm:    "RR",
		Quantum:      2,
		Backend:      BackendLocal,
		ProcessCount: 6,
		BurstMin:     4,
		BurstMax:     10,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "non-positive cpu count", mutate: func(c *Config) { c.CPUCount = 0 }, wantErr: true},
		{name: "unknown algorithm", mutate: func(c *Config) { c.Algorithm = "SJF" }, wantErr: true},
		{name: "non-positive quantum for RR", mutate: func(c *Config) { c.Quantum = 0 }, wantErr: true},
		{name: "fcfs needs no quantum", mutate: func(c *Config) { c.Algorithm = "FCFS"; c.Quantum = 0 }},
		{name: "remote needs quantum", mutate: func(c *Config) {
			c.Algorithm = "FCFS"
			c.Quantum = 0
			c.Backend = BackendRemote
		}, wantErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.Backend = "cluster" }, wantErr: true},
		{name: "non-positive process count", mutate: func(c *Config) { c.ProcessCount = 0 }, wantErr: true},
		{name: "inverted burst range", mutate: func(c *Config) { c.BurstMin = 10; c.BurstMax = 4 }, wantErr: true},
		{name: "supplied processes skip generation checks", mutate: func(c *Config) {
			c.ProcessCount = 0
			c.Processes = []ProcessSpec{{PID: 1, Burst: 5, Arrival: 0}}
		}},
		{name: "supplied process with zero burst", mutate: func(c *Config) {
			c.Processes = []ProcessSpec{{PID: 1, Burst: 0, Arrival: 0}}
		}, wantErr: true},
		{name: "duplicate supplied pids", mutate: func(c *Config) {
			c.Processes = []ProcessSpec{{PID: 1, Burst: 5}, {PID: 1, Burst: 3}}
		}, wantErr: true},
		{name: "negative arrival", mutate: func(c *Config) {
			c.Processes = []ProcessSpec{{PID: 1, Burst: 5, Arrival: -1}}
		}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ReplyTimeout(t *testing.T) {
	ass := assert.New(t)

	cfg := validConfig()
	cfg.ReplyTimeoutMS = 250
	ass.Equal(250*time.Millisecond, cfg.ReplyTimeout())

	cfg.ReplyTimeoutMS = 0
	cfg.SimDelayMS = 100
	ass.Equal(500*time.Millisecond, cfg.ReplyTimeout())

	cfg.SimDelayMS = 0
	ass.Equal(5*time.Millisecond, cfg.ReplyTimeout())
}
