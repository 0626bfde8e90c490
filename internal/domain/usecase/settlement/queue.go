package settlement

import "container/heap"

// jobQueue orders records by priority, then by the order they became eligible
type jobQueue []*record

func (q jobQueue) Len() int { return len(q) }

func (q jobQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}

func (q jobQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *jobQueue) Push(x any) { *q = append(*q, x.(*record)) }

func (q *jobQueue) Pop() any {
	old := *q
	n := len(old)
	r := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return r
}

func (q *jobQueue) push(r *record) { heap.Push(q, r) }

func (q *jobQueue) pop() *record { return heap.Pop(q).(*record) }
