package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/toqaosama/portfolio-backend/models"
	"github.com/toqaosama/portfolio-backend/realtime"
)

const feedBuffer = 64

type ContactLister interface {
	List(ctx context.Context) ([]models.ContactMessage, error)
}

type Subscriber interface {
	Subscribe(topic string, handler realtime.Handler) *realtime.Subscription
}

// ContactFeed is the dashboard's live list of contact messages: the stored
// messages newest first, with inserts prepended as they arrive. It holds a
// realtime subscription until Close.
type ContactFeed struct {
	mu       sync.Mutex
	messages []models.ContactMessage
	seen     map[uuid.UUID]bool
	pending  []models.ContactMessage
	ready    bool
	closed   bool
	updates  chan models.ContactMessage
	sub      *realtime.Subscription
	closeOne sync.Once
}

// OpenContactFeed subscribes before listing so no insert between the two is
// lost. The subscription is released if the list fails.
func OpenContactFeed(ctx context.Context, broker Subscriber, lister ContactLister) (*ContactFeed, error) {
	f := &ContactFeed{
		seen:    make(map[uuid.UUID]bool),
		updates: make(chan models.ContactMessage, feedBuffer),
	}
	f.sub = broker.Subscribe(models.ContactNotifyChannel, f.handle)

	list, err := lister.List(ctx)
	if err != nil {
		f.Close()
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = make([]models.ContactMessage, 0, len(list)+len(f.pending))
	for _, m := range list {
		if !f.seen[m.ID] {
			f.seen[m.ID] = true
			f.messages = append(f.messages, m)
		}
	}
	for _, m := range f.pending {
		f.prependLocked(m, false)
	}
	f.pending = nil
	f.ready = true
	return f, nil
}

func (f *ContactFeed) handle(event realtime.Event) {
	if event.Type != realtime.Insert {
		return
	}
	var msg models.ContactMessage
	if err := event.Decode(&msg); err != nil {
		log.Warn().Err(err).Msg("dropping undecodable contact event")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	if !f.ready {
		f.pending = append(f.pending, msg)
		return
	}
	f.prependLocked(msg, true)
}

func (f *ContactFeed) prependLocked(msg models.ContactMessage, announce bool) {
	if f.seen[msg.ID] {
		return
	}
	f.seen[msg.ID] = true
	f.messages = append([]models.ContactMessage{msg}, f.messages...)
	if !announce {
		return
	}
	select {
	case f.updates <- msg:
	default:
		log.Warn().Str("id", msg.ID.String()).Msg("contact feed consumer is behind, dropping update")
	}
}

// Messages returns a copy of the current list, newest first.
func (f *ContactFeed) Messages() []models.ContactMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.ContactMessage, len(f.messages))
	copy(out, f.messages)
	return out
}

// Updates delivers messages inserted after the feed opened. It is closed by
// Close.
func (f *ContactFeed) Updates() <-chan models.ContactMessage {
	return f.updates
}

// Close releases the subscription. It is safe to call more than once.
func (f *ContactFeed) Close() {
	f.closeOne.Do(func() {
		f.sub.Unsubscribe()
		f.mu.Lock()
		f.closed = true
		close(f.updates)
		f.mu.Unlock()
	})
}
