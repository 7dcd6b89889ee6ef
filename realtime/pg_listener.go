package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// RecordLoader reads the row a notification refers to.
type RecordLoader func(ctx context.Context, id uuid.UUID) (any, error)

// notification is the payload written by the contact_messages trigger.
type notification struct {
	ID uuid.UUID `json:"id"`
}

// PGListener relays Postgres NOTIFY events on one channel into a broker. The
// payload only names the row; the record itself is read through load.
type PGListener struct {
	dsn       string
	channel   string
	broker    *Broker
	load      RecordLoader
	retryWait time.Duration
}

func NewPGListener(dsn, channel string, broker *Broker, load RecordLoader) *PGListener {
	return &PGListener{dsn: dsn, channel: channel, broker: broker, load: load, retryWait: 5 * time.Second}
}

// Run listens until ctx is cancelled, reconnecting after connection errors.
func (l *PGListener) Run(ctx context.Context) error {
	logger := log.With().Str("component", "pgListener").Str("channel", l.channel).Logger()
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}
		logger.Warn().Err(err).Dur("retryIn", l.retryWait).Msg("listener disconnected")
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.retryWait):
		}
	}
}

func (l *PGListener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return fmt.Errorf("connecting listener: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen %s: %w", l.channel, err)
	}
	log.Info().Str("channel", l.channel).Msg("Listening for notifications")

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		l.relay(ctx, n.Channel, n.Payload)
	}
}

func (l *PGListener) relay(ctx context.Context, channel, payload string) {
	logger := log.With().Str("component", "pgListener").Str("channel", channel).Logger()

	var n notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil || n.ID == uuid.Nil {
		logger.Warn().Str("payload", payload).Msg("dropping notification with invalid payload")
		return
	}
	record, err := l.load(ctx, n.ID)
	if err != nil {
		logger.Error().Err(err).Str("id", n.ID.String()).Msg("loading notified row failed")
		return
	}
	event, err := NewEvent(channel, Insert, record)
	if err != nil {
		logger.Error().Err(err).Msg("encoding notified row")
		return
	}
	l.broker.Publish(event)
}
