package realtime

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribers(t *testing.T) {
	b := NewBroker()
	got := make(chan Event, 2)

	sub1 := b.Subscribe("contact_messages", func(e Event) { got <- e })
	sub2 := b.Subscribe("contact_messages", func(e Event) { got <- e })
	defer sub1.Unsubscribe()
	defer sub2.Unsubscribe()
	b.Subscribe("projects", func(Event) { t.Error("wrong topic delivered") })

	ev, err := NewEvent("contact_messages", Insert, map[string]string{"name": "Ada"})
	require.NoError(t, err)
	b.Publish(ev)

	for i := 0; i < 2; i++ {
		select {
		case e := <-got:
			var rec map[string]string
			require.NoError(t, e.Decode(&rec))
			assert.Equal(t, "Ada", rec["name"])
			assert.Equal(t, Insert, e.Type)
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	b := NewBroker()
	sub := b.Subscribe("contact_messages", func(Event) {})
	other := b.Subscribe("contact_messages", func(Event) {})
	assert.Equal(t, 2, b.SubscriberCount("contact_messages"))

	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.Equal(t, 1, b.SubscriberCount("contact_messages"))

	other.Unsubscribe()
	assert.Equal(t, 0, b.SubscriberCount("contact_messages"))
}

func TestPublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	b := NewBroker()
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	sub := b.Subscribe("t", func(Event) {
		defer wg.Done()
		<-release
	})
	defer sub.Unsubscribe()

	done := make(chan struct{})
	go func() {
		b.Publish(Event{Topic: "t", Type: Insert})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked")
	}
	close(release)
	wg.Wait()
}

func TestRelayDropsInvalidPayload(t *testing.T) {
	b := NewBroker()
	got := make(chan Event, 1)
	sub := b.Subscribe("contact_messages", func(e Event) { got <- e })
	defer sub.Unsubscribe()

	l := NewPGListener("", "contact_messages", b, nil)
	l.relay(context.Background(), "contact_messages", "not json")
	l.relay(context.Background(), "contact_messages", `{"id":"1"}`)

	select {
	case e := <-got:
		assert.JSONEq(t, `{"id":"1"}`, string(e.Record))
	case <-time.After(time.Second):
		t.Fatal("valid payload not relayed")
	}
	select {
	case e := <-got:
		t.Fatalf("unexpected event %s", e.Record)
	case <-time.After(50 * time.Millisecond):
	}
}
