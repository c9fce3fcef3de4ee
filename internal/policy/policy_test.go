package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schedlab/schedsim/internal/proc"
)

func TestRoundRobin_SelectRunLength(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		quantum   int
		want      int
	}{
		{name: "remaining above quantum", remaining: 7, quantum: 2, want: 2},
		{name: "remaining equals quantum", remaining: 2, quantum: 2, want: 2},
		{name: "remaining below quantum", remaining: 1, quantum: 2, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := proc.New(1, 10, 0)
			p.Remaining = tt.remaining
			got := RoundRobin{}.SelectRunLength(p, tt.quantum)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFCFS_SelectRunLength(t *testing.T) {
	p := proc.New(1, 9, 0)
	p.Remaining = 9
	assert.Equal(t, 9, FCFS{}.SelectRunLength(p, 2))
}

func TestPolicies_RequeueOnPartial(t *testing.T) {
	assert.True(t, RoundRobin{}.RequeueOnPartial())
	assert.False(t, FCFS{}.RequeueOnPartial())
}

func TestFCFS_ReorderSortsByArrival(t *testing.T) {
	ass := assert.New(t)

	q := proc.NewQueue()
	q.Enqueue(proc.New(1, 4, 3))
	q.Enqueue(proc.New(2, 4, 0))
	q.Enqueue(proc.New(3, 4, 1))

	FCFS{}.Reorder(q)

	snaps := q.Snapshots()
	ass.Equal([]int{2, 3, 1}, []int{snaps[0].PID, snaps[1].PID, snaps[2].PID})
}

func TestRoundRobin_ReorderIsIdentity(t *testing.T) {
	ass := assert.New(t)

	q := proc.NewQueue()
	q.Enqueue(proc.New(1, 4, 3))
	q.Enqueue(proc.New(2, 4, 0))

	RoundRobin{}.Reorder(q)

	snaps := q.Snapshots()
	ass.Equal([]int{1, 2}, []int{snaps[0].PID, snaps[1].PID})
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name    string
		algo    string
		want    string
		wantErr bool
	}{
		{name: "round robin", algo: AlgorithmRoundRobin, want: "Round Robin"},
		{name: "fcfs", algo: AlgorithmFCFS, want: "FCFS"},
		{name: "unknown", algo: "SJF", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromName(tt.algo)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got.Name())
		})
	}
}
