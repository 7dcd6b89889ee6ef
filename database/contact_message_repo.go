package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/toqaosama/portfolio-backend/models"
	"github.com/toqaosama/portfolio-backend/realtime"
)

// Publisher receives an event for every contact message stored through this
// process.
type Publisher interface {
	Publish(event realtime.Event)
}

// ContactMessageRepo is append-only: messages are inserted and listed, never
// updated or deleted.
type ContactMessageRepo struct {
	repo[models.ContactMessageRow, models.ContactMessage]
	publisher Publisher
	now       func() time.Time
}

func NewContactMessageRepo(table Table[models.ContactMessageRow]) *ContactMessageRepo {
	return &ContactMessageRepo{
		repo: repo[models.ContactMessageRow, models.ContactMessage]{
			table:  table,
			entity: "contact message",
			order:  Order{Column: "created_at", Desc: true, NullsLast: true},
			less: func(a, b models.ContactMessageRow) bool {
				return newestFirst(a.CreatedAt, b.CreatedAt)
			},
			normalize: models.ContactMessageRow.Normalize,
		},
		now: time.Now,
	}
}

// UsePublisher makes Insert announce new messages on the
// contact_messages topic.
func (r *ContactMessageRepo) UsePublisher(p Publisher) {
	r.publisher = p
}

// List returns all messages, newest first.
func (r *ContactMessageRepo) List(ctx context.Context) ([]models.ContactMessage, error) {
	return r.list(ctx)
}

func (r *ContactMessageRepo) Get(ctx context.Context, id uuid.UUID) (models.ContactMessage, error) {
	return r.get(ctx, id)
}

// Insert stores msg. The returned record is built from what was sent, the
// store is not read back.
func (r *ContactMessageRepo) Insert(ctx context.Context, msg models.ContactMessage) (models.ContactMessage, error) {
	row := msg.Row()
	row.ID = uuid.New()
	createdAt := r.now().UTC()
	row.CreatedAt = &createdAt

	saved, err := r.create(ctx, row)
	if err != nil {
		return models.ContactMessage{}, err
	}

	if r.publisher != nil {
		event, err := realtime.NewEvent(models.ContactNotifyChannel, realtime.Insert, saved)
		if err != nil {
			log.Error().Err(err).Msg("encoding contact message event")
		} else {
			r.publisher.Publish(event)
		}
	}
	return saved, nil
}
