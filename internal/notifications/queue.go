package notifications

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Queue holds ordered per-user notifications. IDs are monotonic across the
// whole queue, so a client can dedupe and order messages from any flow.
type Queue struct {
	nextID atomic.Int64

	mu      sync.Mutex
	pending map[uuid.UUID][]Notification
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		pending: make(map[uuid.UUID][]Notification),
	}
}

// Enqueue appends a notification for the user and returns its assigned id.
func (q *Queue) Enqueue(userID uuid.UUID, message, typ string, durationMs *int) int64 {
	id := q.nextID.Add(1)

	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending[userID] = append(q.pending[userID], Notification{
		ID:         id,
		Message:    message,
		Type:       typ,
		DurationMs: durationMs,
	})

	return id
}

// List returns the user's pending notifications in enqueue order.
func (q *Queue) List(userID uuid.UUID) []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending := q.pending[userID]
	out := make([]Notification, len(pending))
	copy(out, pending)
	return out
}

// Dismiss removes one notification by id. Reports whether it was present.
func (q *Queue) Dismiss(userID uuid.UUID, id int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending := q.pending[userID]
	for i, n := range pending {
		if n.ID == id {
			q.pending[userID] = append(pending[:i], pending[i+1:]...)
			if len(q.pending[userID]) == 0 {
				delete(q.pending, userID)
			}
			return true
		}
	}
	return false
}

// Drain returns and clears all pending notifications for the user.
func (q *Queue) Drain(userID uuid.UUID) []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending := q.pending[userID]
	delete(q.pending, userID)
	return pending
}
