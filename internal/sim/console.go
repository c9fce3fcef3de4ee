package sim

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/schedlab/schedsim/internal/proc"
)

// Console is the terminal presentation collaborator: it prints the
// narration stream and the end-of-run figures. Rendering of the summary
// and Gantt tables is separate so callers can decide when to draw them.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) OnLog(message string) {
	fmt.Fprintln(c.w, message)
}

func (c *Console) OnQueueChanged(queue []proc.Snapshot) {
	parts := make([]string, 0, len(queue))
	for _, s := range queue {
		parts = append(parts, fmt.Sprintf("P%d(%du)", s.PID, s.Remaining))
	}
	fmt.Fprintf(c.w, "queue: [%s]\n", strings.Join(parts, " "))
}

func (c *Console) OnStep(clock, cpuID, pid, remaining int) {}

func (c *Console) OnProcessProgress(cpuID, unitsDone, unitsTotal int) {}

func (c *Console) OnCompletion(avgTurnaround, avgWaiting float64) {
	fmt.Fprintf(c.w, "Average Turnaround Time: %.2f time units\n", avgTurnaround)
	fmt.Fprintf(c.w, "Average Waiting Time: %.2f time units\n", avgWaiting)
}

func (c *Console) OnNoCompletions() {
	fmt.Fprintln(c.w, "No process completed; statistics not computed.")
}

// RenderSummary draws the per-process result table.
func RenderSummary(w io.Writer, procs []proc.Snapshot) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Burst", "Arrival", "Start", "End", "Turnaround", "Waiting"})

	for _, p := range procs {
		start, end, turnaround, waiting := "-", "-", "-", "-"
		if v, err := p.StartTime.Get(); err == nil {
			start = strconv.Itoa(v)
		}
		if v, err := p.EndTime.Get(); err == nil {
			end = strconv.Itoa(v)
			turnaround = strconv.Itoa(v - p.Arrival)
			waiting = strconv.Itoa(v - p.Arrival - p.Burst)
		}
		table.Append([]string{
			strconv.Itoa(p.PID),
			strconv.Itoa(p.Burst),
			strconv.Itoa(p.Arrival),
			start,
			end,
			turnaround,
			waiting,
		})
	}
	table.Render()
}

// RenderGantt draws one row per CPU with the execution intervals recorded
// against it, in clock order.
func RenderGantt(w io.Writer, procs []proc.Snapshot, cpuCount int) {
	perCPU := make(map[int][]string, cpuCount)
	for cpu := 1; cpu <= cpuCount; cpu++ {
		perCPU[cpu] = nil
	}
	// History is ordered per process; merge across processes by start time.
	type slice struct {
		start int
		label string
	}
	slices := make(map[int][]slice)
	for _, p := range procs {
		for _, iv := range p.History {
			slices[iv.CPU] = append(slices[iv.CPU], slice{
				start: iv.Start,
				label: fmt.Sprintf("P%d[%d-%d]", p.PID, iv.Start, iv.End),
			})
		}
	}
	for cpu, ss := range slices {
		for i := 1; i < len(ss); i++ {
			for j := i; j > 0 && ss[j].start < ss[j-1].start; j-- {
				ss[j], ss[j-1] = ss[j-1], ss[j]
			}
		}
		labels := make([]string, 0, len(ss))
		for _, s := range ss {
			labels = append(labels, s.label)
		}
		perCPU[cpu] = labels
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"CPU", "Execution"})
	for cpu := 1; cpu <= cpuCount; cpu++ {
		table.Append([]string{
			fmt.Sprintf("CPU %d", cpu),
			strings.Join(perCPU[cpu], " "),
		})
	}
	table.Render()
}
