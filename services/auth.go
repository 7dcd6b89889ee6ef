package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/toqaosama/portfolio-backend/config"
	"github.com/toqaosama/portfolio-backend/errs"
	"github.com/toqaosama/portfolio-backend/models"
)

const tokenIssuer = "portfolio-backend"

type AdminUsers interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	Add(ctx context.Context, email, passwordHash string) (*models.AdminUser, error)
}

// User is the signed in identity exposed to handlers.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type Session struct {
	Token     string    `json:"access_token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Credentials is the sign in and sign up payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.EmailFormat),
		validation.Field(&c.Password, validation.Required, validation.Length(8, 72)),
	)
}

// AuthService issues and checks HS256 session tokens for dashboard users.
type AuthService struct {
	users       AdminUsers
	secret      []byte
	ttl         time.Duration
	allowSignup bool
	now         func() time.Time
}

func NewAuthService(users AdminUsers, settings config.AuthSettings) *AuthService {
	return &AuthService{
		users:       users,
		secret:      []byte(settings.JWTSecret),
		ttl:         settings.TokenTTL,
		allowSignup: settings.AllowSignup,
		now:         time.Now,
	}
}

func (s *AuthService) SignUp(ctx context.Context, creds Credentials) (*User, error) {
	if !s.allowSignup {
		return nil, errs.NewSignupDisabledError()
	}
	if err := creds.Validate(); err != nil {
		return nil, errs.NewValidationError(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to hash password", err)
	}
	admin, err := s.users.Add(ctx, creds.Email, string(hash))
	if err != nil {
		return nil, err
	}
	return &User{ID: admin.ID, Email: admin.Email}, nil
}

func (s *AuthService) SignInWithPassword(ctx context.Context, creds Credentials) (*Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, errs.NewInvalidCredentialsError()
	}
	admin, err := s.users.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NewInvalidCredentialsError()
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, errs.NewInvalidCredentialsError()
	}
	return s.issue(admin)
}

func (s *AuthService) issue(admin *models.AdminUser) (*Session, error) {
	now := s.now()
	expires := now.Add(s.ttl)
	claims := sessionClaims{
		Email: admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   admin.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to sign session token", err)
	}
	return &Session{Token: token, ExpiresAt: expires, User: User{ID: admin.ID, Email: admin.Email}}, nil
}

// GetUser returns the user a token was issued to. The account must still
// exist.
func (s *AuthService) GetUser(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, errs.NewMissingTokenError()
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errs.NewInvalidTokenError(err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errs.NewInvalidTokenError(fmt.Errorf("bad subject: %w", err))
	}
	admin, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NewInvalidTokenError(errors.New("account no longer exists"))
		}
		return nil, err
	}
	return &User{ID: admin.ID, Email: admin.Email}, nil
}
