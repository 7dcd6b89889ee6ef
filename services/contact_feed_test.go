package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toqaosama/portfolio-backend/models"
	"github.com/toqaosama/portfolio-backend/realtime"
)

// syncBroker delivers events on the publishing goroutine so tests can control
// the order of list and publish.
type syncBroker struct {
	inner    *realtime.Broker
	handlers []realtime.Handler
}

func newSyncBroker() *syncBroker {
	return &syncBroker{inner: realtime.NewBroker()}
}

func (b *syncBroker) Subscribe(topic string, handler realtime.Handler) *realtime.Subscription {
	b.handlers = append(b.handlers, handler)
	return b.inner.Subscribe(topic, handler)
}

func (b *syncBroker) publish(t *testing.T, eventType string, msg models.ContactMessage) {
	t.Helper()
	event, err := realtime.NewEvent(models.ContactNotifyChannel, eventType, msg)
	require.NoError(t, err)
	for _, h := range b.handlers {
		h(event)
	}
}

type listerFunc func(ctx context.Context) ([]models.ContactMessage, error)

func (f listerFunc) List(ctx context.Context) ([]models.ContactMessage, error) {
	return f(ctx)
}

func message(name string, minutesAgo int) models.ContactMessage {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).Add(-time.Duration(minutesAgo) * time.Minute)
	return models.ContactMessage{ID: uuid.New(), Name: name, Email: name + "@example.com", Message: "hi", CreatedAt: &at}
}

func names(msgs []models.ContactMessage) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Name
	}
	return out
}

func TestContactFeedKeepsInsertsRaisedWhileListing(t *testing.T) {
	broker := newSyncBroker()
	older, newer := message("older", 10), message("racing", 0)

	feed, err := OpenContactFeed(context.Background(), broker, listerFunc(func(context.Context) ([]models.ContactMessage, error) {
		broker.publish(t, realtime.Insert, newer)
		return []models.ContactMessage{older}, nil
	}))
	require.NoError(t, err)
	defer feed.Close()

	assert.Equal(t, []string{"racing", "older"}, names(feed.Messages()))
}

func TestContactFeedDeduplicatesEvents(t *testing.T) {
	broker := newSyncBroker()
	listed := message("listed", 5)

	feed, err := OpenContactFeed(context.Background(), broker, listerFunc(func(context.Context) ([]models.ContactMessage, error) {
		broker.publish(t, realtime.Insert, listed)
		return []models.ContactMessage{listed}, nil
	}))
	require.NoError(t, err)
	defer feed.Close()

	fresh := message("fresh", 0)
	broker.publish(t, realtime.Insert, fresh)
	broker.publish(t, realtime.Insert, fresh)
	broker.publish(t, realtime.Update, message("ignored", 0))

	assert.Equal(t, []string{"fresh", "listed"}, names(feed.Messages()))

	select {
	case got := <-feed.Updates():
		assert.Equal(t, fresh.ID, got.ID)
	default:
		t.Fatal("expected an update for the new message")
	}
	select {
	case got := <-feed.Updates():
		t.Fatalf("unexpected second update %v", got.Name)
	default:
	}
}

func TestContactFeedReleasesSubscriptionWhenListFails(t *testing.T) {
	broker := realtime.NewBroker()

	feed, err := OpenContactFeed(context.Background(), broker, listerFunc(func(context.Context) ([]models.ContactMessage, error) {
		return nil, errors.New("permission denied for table contact_messages")
	}))

	assert.Nil(t, feed)
	assert.EqualError(t, err, "permission denied for table contact_messages")
	assert.Zero(t, broker.SubscriberCount(models.ContactNotifyChannel))
}

func TestContactFeedCloseIsIdempotent(t *testing.T) {
	broker := realtime.NewBroker()
	feed, err := OpenContactFeed(context.Background(), broker, listerFunc(func(context.Context) ([]models.ContactMessage, error) {
		return nil, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, broker.SubscriberCount(models.ContactNotifyChannel))

	feed.Close()
	feed.Close()

	assert.Zero(t, broker.SubscriberCount(models.ContactNotifyChannel))
	_, open := <-feed.Updates()
	assert.False(t, open)
	assert.Empty(t, feed.Messages())
}

func TestContactFeedReceivesBrokerInserts(t *testing.T) {
	broker := realtime.NewBroker()
	feed, err := OpenContactFeed(context.Background(), broker, listerFunc(func(context.Context) ([]models.ContactMessage, error) {
		return []models.ContactMessage{message("first", 3)}, nil
	}))
	require.NoError(t, err)
	defer feed.Close()

	event, err := realtime.NewEvent(models.ContactNotifyChannel, realtime.Insert, message("second", 0))
	require.NoError(t, err)
	broker.Publish(event)

	select {
	case got := <-feed.Updates():
		assert.Equal(t, "second", got.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
	}
	assert.Equal(t, []string{"second", "first"}, names(feed.Messages()))
}
