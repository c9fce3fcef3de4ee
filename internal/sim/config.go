package sim

import (
	"fmt"
	"time"

	"github.com/schedlab/schedsim/internal/policy"
)

const (
	BackendLocal  = "local"
	BackendRemote = "remote"

	// defaultReplyTimeoutUnits is the remote reply timeout when none is
	// configured, expressed in simulated time units of wall delay.
	defaultReplyTimeoutUnits = 5
)

// ProcessSpec supplies one explicit process in the configuration, for
// reproducible runs. When no specs are given processes are generated
// randomly at simulation start.
type ProcessSpec struct {
	PID     int `json:"pid"`
	Burst   int `json:"burst"`
	Arrival int `json:"arrival"`
}

type Config struct {
	CPUCount       int           `json:"cpu_count"`
	Algorithm      string        `json:"algorithm"` // "RR" or "FCFS"
	Quantum        int           `json:"quantum"`   // Round Robin only
	Backend        string        `json:"backend"`   // "local" or "remote"
	ProcessCount   int           `json:"process_count"`
	BurstMin       int           `json:"burst_min"`
	BurstMax       int           `json:"burst_max"`
	Seed           int64         `json:"seed"` // 0 means time-based
	SimDelayMS     int           `json:"sim_delay_ms"`
	CycleDelayMS   int           `json:"cycle_delay_ms"`
	ReplyTimeoutMS int           `json:"reply_timeout_ms"`
	LogLevel       string        `json:"log_level"`
	Port           int           `json:"port"`       // 0 disables the control API
	NotifyURL      string        `json:"notify_url"` // "" disables the webhook observer
	Processes      []ProcessSpec `json:"processes,omitempty"`
}

// Validate rejects invalid configuration before a simulation starts. This
// is the only fatal error class: everything else is recovered at runtime.
func (c *Config) Validate() error {
	if c.CPUCount <= 0 {
		return fmt.Errorf("cpu_count must be positive, got %d", c.CPUCount)
	}
	if _, err := policy.FromName(c.Algorithm); err != nil {
		return err
	}
	if c.Algorithm == policy.AlgorithmRoundRobin && c.Quantum <= 0 {
		return fmt.Errorf("quantum must be positive for Round Robin, got %d", c.Quantum)
	}
	if c.Backend != BackendLocal && c.Backend != BackendRemote {
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.Backend == BackendRemote && c.Quantum <= 0 {
		return fmt.Errorf("quantum must be positive for the remote backend, got %d", c.Quantum)
	}
	if len(c.Processes) == 0 {
		if c.ProcessCount <= 0 {
			return fmt.Errorf("process_count must be positive, got %d", c.ProcessCount)
		}
		if c.BurstMin <= 0 || c.BurstMax < c.BurstMin {
			return fmt.Errorf("burst range [%d, %d] is invalid", c.BurstMin, c.BurstMax)
		}
		return nil
	}
	seen := make(map[int]bool, len(c.Processes))
	for _, spec := range c.Processes {
		if spec.PID <= 0 {
			return fmt.Errorf("process pid must be positive, got %d", spec.PID)
		}
		if seen[spec.PID] {
			return fmt.Errorf("duplicate process pid %d", spec.PID)
		}
		seen[spec.PID] = true
		if spec.Burst <= 0 {
			return fmt.Errorf("process %d: burst must be positive, got %d", spec.PID, spec.Burst)
		}
		if spec.Arrival < 0 {
			return fmt.Errorf("process %d: arrival must not be negative, got %d", spec.PID, spec.Arrival)
		}
	}
	return nil
}

// UnitDelay is the wall-clock duration of one simulated time unit.
func (c *Config) UnitDelay() time.Duration {
	return time.Duration(c.SimDelayMS) * time.Millisecond
}

// CycleDelay is the yield between dispatch cycles.
func (c *Config) CycleDelay() time.Duration {
	return time.Duration(c.CycleDelayMS) * time.Millisecond
}

// ReplyTimeout is the bounded wait for a remote worker reply. Defaults to
// five time units of wall delay, with a small floor so a zero-delay
// configuration still times out rather than failing instantly.
func (c *Config) ReplyTimeout() time.Duration {
	if c.ReplyTimeoutMS > 0 {
		return time.Duration(c.ReplyTimeoutMS) * time.Millisecond
	}
	d := defaultReplyTimeoutUnits * c.UnitDelay()
	if d <= 0 {
		d = defaultReplyTimeoutUnits * time.Millisecond
	}
	return d
}
