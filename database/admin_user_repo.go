package database

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/toqaosama/portfolio-backend/errs"
	"github.com/toqaosama/portfolio-backend/models"
)

type AdminUserRepo struct {
	table Table[models.AdminUser]
}

func NewAdminUserRepo(table Table[models.AdminUser]) *AdminUserRepo {
	return &AdminUserRepo{table: table}
}

func (r *AdminUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	user, err := r.table.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "admin user", err)
	}
	return user, nil
}

// FindByEmail matches the lower-cased email.
func (r *AdminUserRepo) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	user, err := r.table.First(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, errs.NewDatabaseError("find", "admin user", err)
	}
	return user, nil
}

func (r *AdminUserRepo) Add(ctx context.Context, email, passwordHash string) (*models.AdminUser, error) {
	user := &models.AdminUser{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if existing, err := r.table.First(ctx, "email", user.Email); err == nil && existing != nil {
		return nil, errs.NewAlreadyExists("admin user")
	}
	if err := r.table.Create(ctx, user); err != nil {
		return nil, errs.NewDatabaseError("insert", "admin user", err)
	}
	return user, nil
}
