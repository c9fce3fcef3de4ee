package proc

import "sort"

// Queue is the ready queue: an ordered sequence of not-yet-finished
// processes. Insertion order is the Round Robin rotation order and the
// FCFS tie-break order.
type Queue struct {
	items []*Process
}

func NewQueue() *Queue {
	return &Queue{items: make([]*Process, 0)}
}

func (q *Queue) Enqueue(p *Process) {
	q.items = append(q.items, p)
}

// Dequeue pops the front process, nil if the queue is empty.
func (q *Queue) Dequeue() *Process {
	if len(q.items) == 0 {
		return nil
	}
	p := q.items[0]
	q.items = q.items[1:]
	return p
}

func (q *Queue) Len() int {
	return len(q.items)
}

// SortByArrival orders the queue by arrival ascending. The sort is stable,
// so processes with equal arrival keep their insertion order.
func (q *Queue) SortByArrival() {
	sort.SliceStable(q.items, func(i, j int) bool {
		return q.items[i].Arrival < q.items[j].Arrival
	})
}

// Snapshots returns value copies of the queued processes, front first.
func (q *Queue) Snapshots() []Snapshot {
	snaps := make([]Snapshot, 0, len(q.items))
	for _, p := range q.items {
		snaps = append(snaps, p.Snapshot())
	}
	return snaps
}
