package proc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_FIFOOrder(t *testing.T) {
	ass := assert.New(t)

	q := NewQueue()
	ass.Nil(q.Dequeue())

	a := New(1, 4, 0)
	b := New(2, 6, 1)
	q.Enqueue(a)
	q.Enqueue(b)

	ass.Equal(2, q.Len())
	ass.Same(a, q.Dequeue())

	// Round Robin rotation: requeued process goes to the back.
	q.Enqueue(a)
	ass.Same(b, q.Dequeue())
	ass.Same(a, q.Dequeue())
	ass.Equal(0, q.Len())
}

func TestQueue_SortByArrivalIsStable(t *testing.T) {
	ass := assert.New(t)

	q := NewQueue()
	late := New(1, 4, 5)
	earlyA := New(2, 6, 1)
	earlyB := New(3, 2, 1)
	q.Enqueue(late)
	q.Enqueue(earlyA)
	q.Enqueue(earlyB)

	q.SortByArrival()

	// Equal arrivals keep their insertion order.
	ass.Same(earlyA, q.Dequeue())
	ass.Same(earlyB, q.Dequeue())
	ass.Same(late, q.Dequeue())
}

func TestQueue_Snapshots(t *testing.T) {
	ass := assert.New(t)

	q := NewQueue()
	q.Enqueue(New(1, 4, 0))
	q.Enqueue(New(2, 6, 1))

	snaps := q.Snapshots()
	ass.Len(snaps, 2)
	ass.Equal(1, snaps[0].PID)
	ass.Equal(2, snaps[1].PID)
	ass.Equal(2, q.Len())
}
