// Package queue provides the priority-ordered collection of pending analysis jobs.
package queue

import (
	"container/heap"
	"sync"

	"github.com/ghostwallet/hunter/internal/domain/model"
)

// PriorityQueue holds queued jobs ordered by ascending priority value (lower
// value = more urgent), with submission order breaking ties between equal
// priorities. It is safe for concurrent use; Pop never hands the same job to
// two callers.
type PriorityQueue struct {
	mu    sync.Mutex
	items jobHeap
	seq   uint64
}

// NewPriorityQueue creates an empty PriorityQueue.
func NewPriorityQueue() *PriorityQueue {
	return &PriorityQueue{}
}

// Push inserts a job, keeping the queue ordered.
func (q *PriorityQueue) Push(job *model.Job) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.seq++
	heap.Push(&q.items, &queueItem{job: job, seq: q.seq})
}

// Pop removes and returns the job with the numerically smallest priority
// value; equal priorities come out in insertion order. It returns
// model.ErrQueueEmpty when nothing is queued.
func (q *PriorityQueue) Pop() (*model.Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.Len() == 0 {
		return nil, model.ErrQueueEmpty
	}
	item, ok := heap.Pop(&q.items).(*queueItem)
	if !ok {
		return nil, model.ErrQueueEmpty
	}
	return item.job, nil
}

// Len returns the number of queued jobs.
func (q *PriorityQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

// IsEmpty reports whether the queue holds no jobs.
func (q *PriorityQueue) IsEmpty() bool {
	return q.Len() == 0
}

// queueItem wraps a job with the monotonic sequence number used to break
// priority ties in submission order.
type queueItem struct {
	job *model.Job
	seq uint64
	// jobHeap index. Maintained by the heap interface methods.
	index int
}

type jobHeap []*queueItem

func (h jobHeap) Len() int {
	return len(h)
}

func (h jobHeap) Less(i, j int) bool {
	if h[i].job.Priority != h[j].job.Priority {
		return h[i].job.Priority < h[j].job.Priority
	}
	return h[i].seq < h[j].seq
}

func (h jobHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *jobHeap) Push(x any) {
	n := len(*h)
	item, ok := x.(*queueItem)
	if !ok {
		panic("jobHeap.Push requires a *queueItem")
	}
	item.index = n
	*h = append(*h, item)
}

func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // avoid memory leak
	item.index = -1 // for safety
	*h = old[0 : n-1]
	return item
}
