// Package realtime fans out row change events to in-process subscribers.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/toqaosama/portfolio-backend/metrics"
)

// Event types, named after the database operation that produced them.
const (
	Insert = "INSERT"
	Update = "UPDATE"
	Delete = "DELETE"
)

// Event is a change to one row of a table. Topic is the table name.
type Event struct {
	Topic  string          `json:"topic"`
	Type   string          `json:"type"`
	Record json.RawMessage `json:"record"`
	At     time.Time       `json:"at"`
}

// NewEvent encodes record as the event payload.
func NewEvent(topic, eventType string, record any) (Event, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return Event{}, err
	}
	return Event{Topic: topic, Type: eventType, Record: raw, At: time.Now().UTC()}, nil
}

// Decode unmarshals the event record into v.
func (e Event) Decode(v any) error {
	return json.Unmarshal(e.Record, v)
}

type Handler func(Event)

// Subscription is a registered handler. Unsubscribe releases it.
type Subscription struct {
	broker *Broker
	topic  string
	id     uint64
	once   sync.Once
}

// Unsubscribe removes the handler from the broker. Calling it more than once
// is a no-op.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.broker.remove(s.topic, s.id)
	})
}

// Broker is an in-memory topic broker. Publish never blocks on subscribers:
// each delivery runs in its own goroutine.
type Broker struct {
	mu     sync.RWMutex
	topics map[string]map[uint64]Handler
	nextID uint64
}

func NewBroker() *Broker {
	return &Broker{topics: make(map[string]map[uint64]Handler)}
}

func (b *Broker) Subscribe(topic string, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[uint64]Handler)
	}
	b.nextID++
	b.topics[topic][b.nextID] = handler
	metrics.RealtimeSubscribers.Inc()
	return &Subscription{broker: b, topic: topic, id: b.nextID}
}

func (b *Broker) remove(topic string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.topics[topic]
	if _, ok := subs[id]; !ok {
		return
	}
	delete(subs, id)
	if len(subs) == 0 {
		delete(b.topics, topic)
	}
	metrics.RealtimeSubscribers.Dec()
}

func (b *Broker) Publish(event Event) {
	b.mu.RLock()
	subs := b.topics[event.Topic]
	handlers := make([]Handler, 0, len(subs))
	for _, h := range subs {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	log.Debug().Str("topic", event.Topic).Str("type", event.Type).Int("subscribers", len(handlers)).Msg("publish")
	for _, h := range handlers {
		go h(event)
	}
}

// SubscriberCount returns the number of subscribers for a topic.
func (b *Broker) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}
