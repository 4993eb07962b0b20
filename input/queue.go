package input

import (
	"sync"

	"gridsnake/game/types"
)

const DefaultQueueSize = 4

// Queue holds direction events between ticks. Input callbacks may push from
// another goroutine; the game loop drains before each tick.
type Queue struct {
	items []types.Direction
	size  int
	mutex sync.Mutex
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		items: make([]types.Direction, 0, size),
		size:  size,
	}
}

// Push appends d, dropping the oldest event when full
func (q *Queue) Push(d types.Direction) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if len(q.items) == q.size {
		copy(q.items, q.items[1:])
		q.items = q.items[:len(q.items)-1]
	}
	q.items = append(q.items, d)
}

// Drain hands every queued event to fn in arrival order and empties the queue
func (q *Queue) Drain(fn func(types.Direction)) {
	q.mutex.Lock()
	items := make([]types.Direction, len(q.items))
	copy(items, q.items)
	q.items = q.items[:0]
	q.mutex.Unlock()

	for _, d := range items {
		fn(d)
	}
}

func (q *Queue) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return len(q.items)
}

func (q *Queue) Clear() {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.items = q.items[:0]
}
