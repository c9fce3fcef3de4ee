package proc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcess_RecordRun(t *testing.T) {
	ass := assert.New(t)

	p := New(1, 10, 0)
	ass.False(p.StartTime.Present())
	ass.False(p.EndTime.Present())
	ass.Empty(p.History)

	p.RecordRun(2, 0, 2)
	p.Remaining = 8
	p.RecordRun(1, 6, 8)
	p.Remaining = 6

	start, err := p.StartTime.Get()
	ass.NoError(err)
	ass.Equal(0, start)
	ass.Equal([]Interval{{CPU: 2, Start: 0, End: 2}, {CPU: 1, Start: 6, End: 8}}, p.History)

	// remaining == burst - sum of interval durations
	total := 0
	for _, iv := range p.History {
		total += iv.End - iv.Start
	}
	ass.Equal(p.Burst-total, p.Remaining)
}

func TestProcess_FinishAndDerivedTimes(t *testing.T) {
	ass := assert.New(t)

	p := New(3, 6, 1)
	p.RecordRun(1, 4, 10)
	p.Remaining = 0
	p.Finish(10)

	ass.True(p.Done())
	end, err := p.EndTime.Get()
	ass.NoError(err)
	ass.Equal(10, end)

	turnaround, ok := p.Turnaround()
	ass.True(ok)
	ass.Equal(9, turnaround)

	waiting, ok := p.Waiting()
	ass.True(ok)
	ass.Equal(3, waiting)
}

func TestProcess_DerivedTimesUnsetBeforeCompletion(t *testing.T) {
	ass := assert.New(t)

	p := New(1, 4, 0)
	_, ok := p.Turnaround()
	ass.False(ok)
	_, ok = p.Waiting()
	ass.False(ok)
}

func TestProcess_SnapshotIsACopy(t *testing.T) {
	ass := assert.New(t)

	p := New(1, 8, 0)
	p.RecordRun(1, 0, 2)
	p.Remaining = 6

	snap := p.Snapshot()
	p.RecordRun(1, 2, 4)
	p.Remaining = 4

	ass.Len(snap.History, 1)
	ass.Equal(6, snap.Remaining)
}
