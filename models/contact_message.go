package models

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/toqaosama/portfolio-backend/normalize"
)

// ContactMessageRow is written once by the public form and never updated.
type ContactMessageRow struct {
	ID        uuid.UUID  `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name      *string    `json:"name" db:"name" gorm:"column:name;type:text"`
	Email     *string    `json:"email" db:"email" gorm:"column:email;type:text"`
	Subject   *string    `json:"subject" db:"subject" gorm:"column:subject;type:text"`
	Message   *string    `json:"message" db:"message" gorm:"column:message;type:text"`
	CreatedAt *time.Time `json:"created_at" db:"created_at" gorm:"column:created_at;type:timestamptz;default:now()"`
}

func (ContactMessageRow) TableName() string { return "contact_messages" }

type ContactMessage struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (r ContactMessageRow) Normalize() ContactMessage {
	return ContactMessage{
		ID:        r.ID,
		Name:      normalize.ToText(r.Name),
		Email:     normalize.ToText(r.Email),
		Subject:   normalize.ToText(r.Subject),
		Message:   normalize.ToText(r.Message),
		CreatedAt: r.CreatedAt,
	}
}

func (m ContactMessage) Row() ContactMessageRow {
	return ContactMessageRow{
		ID:        m.ID,
		Name:      textPtr(m.Name),
		Email:     textPtr(m.Email),
		Subject:   textPtr(m.Subject),
		Message:   textPtr(m.Message),
		CreatedAt: m.CreatedAt,
	}
}

// ContactSubmission is what the public contact form posts.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (s ContactSubmission) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&s.Email, validation.Required, validation.Length(3, 254), is.EmailFormat),
		validation.Field(&s.Subject, validation.Length(0, 300)),
		validation.Field(&s.Message, validation.Required, validation.Length(1, 5000)),
	)
}

func (s ContactSubmission) ContactMessage() ContactMessage {
	return ContactMessage{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Subject: strings.TrimSpace(s.Subject),
		Message: strings.TrimSpace(s.Message),
	}
}

// TemplateParams are the variables the notification email template expects.
func (m ContactMessage) TemplateParams() map[string]string {
	return map[string]string{
		"from_name":  m.Name,
		"from_email": m.Email,
		"subject":    m.Subject,
		"message":    m.Message,
	}
}
