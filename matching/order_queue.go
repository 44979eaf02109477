package matching

import "github.com/wyhar1/execsim/models"

// OrderQueue is a FIFO of order handles.
type OrderQueue struct {
	handles []models.Handle
}

func NewOrderQueue(capacity int64) *OrderQueue {
	return &OrderQueue{
		handles: make([]models.Handle, 0, capacity),
	}
}

func (q *OrderQueue) Push(h models.Handle) {
	q.handles = append(q.handles, h)
}

func (q *OrderQueue) Pop() (models.Handle, bool) {
	if len(q.handles) == 0 {
		return 0, false
	}

	h := q.handles[0]
	q.handles = q.handles[1:]

	return h, true
}
