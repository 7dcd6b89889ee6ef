package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is an account allowed into the dashboard.
type AdminUser struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Email        string    `json:"email" db:"email" gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"column:password_hash;type:text;not null"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (AdminUser) TableName() string { return "admin_users" }
