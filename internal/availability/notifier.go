package availability

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type EventKind string

const (
	EventSwept     EventKind = "availability.swept"
	EventBooked    EventKind = "availability.booked"
	EventCancelled EventKind = "availability.cancelled"
	EventCleared   EventKind = "availability.cleared"
)

// Event tells subscribers that the availability of CarIDs changed.
type Event struct {
	Kind           EventKind `json:"kind"`
	CarIDs         []string  `json:"car_ids"`
	ReservationIDs []string  `json:"reservation_ids"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type Notifier interface {
	Publish(event Event)
	Subscribe(buffer int) (events <-chan Event, cancel func())
}

type notifierImpl struct {
	mu          sync.RWMutex
	subscribers map[int]chan Event
	next        int
}

func NewNotifier() Notifier {
	return &notifierImpl{subscribers: map[int]chan Event{}}
}

// Publish hands event to every subscriber without blocking. A subscriber
// whose buffer is full misses the event.
func (n *notifierImpl) Publish(event Event) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for id, ch := range n.subscribers {
		select {
		case ch <- event:
		default:
			log.Warn().Int("subscriber", id).Str("kind", string(event.Kind)).Msg("availability subscriber is full, event dropped")
		}
	}
}

func (n *notifierImpl) Subscribe(buffer int) (<-chan Event, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++

	ch := make(chan Event, buffer)
	n.subscribers[id] = ch

	var once sync.Once

	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()

			delete(n.subscribers, id)
			close(ch)
		})
	}
}
