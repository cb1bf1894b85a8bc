package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// QueuedThrow is a released-but-not-yet-thrown object.
type QueuedThrow struct {
	Target    donburi.Entity
	Direction mgl64.Vec3
	Impulse   float64
	Charge    float64

	// Body state frozen at queue time, restored before the throw
	SavedVelocity mgl64.Vec3
	SavedGravity  float64
}

// ThrowQueueData is a FIFO owned by the hand.
type ThrowQueueData struct {
	Entries []QueuedThrow
}

func (q *ThrowQueueData) Len() int {
	return len(q.Entries)
}

// Push appends an entry unless capacity (0 = unbounded) is reached.
func (q *ThrowQueueData) Push(entry QueuedThrow, capacity int) bool {
	if capacity > 0 && len(q.Entries) >= capacity {
		return false
	}
	q.Entries = append(q.Entries, entry)
	return true
}

// PopFront removes and returns up to n entries from the head, in order.
func (q *ThrowQueueData) PopFront(n int) []QueuedThrow {
	if n > len(q.Entries) {
		n = len(q.Entries)
	}
	if n <= 0 {
		return nil
	}
	out := make([]QueuedThrow, n)
	copy(out, q.Entries[:n])
	q.Entries = append(q.Entries[:0], q.Entries[n:]...)
	return out
}

var ThrowQueue = donburi.NewComponentType[ThrowQueueData]()
