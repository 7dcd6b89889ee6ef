package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toqaosama/portfolio-backend/config"
	"github.com/toqaosama/portfolio-backend/database"
	"github.com/toqaosama/portfolio-backend/database/dbtest"
	"github.com/toqaosama/portfolio-backend/errs"
	"github.com/toqaosama/portfolio-backend/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newAuth(allowSignup bool) (*AuthService, *dbtest.Table[models.AdminUser]) {
	users := dbtest.NewTable[models.AdminUser]()
	db := database.FromTables(database.Tables{
		Projects:        dbtest.NewTable[models.ProjectRow](),
		Skills:          dbtest.NewTable[models.SkillRow](),
		Experiences:     dbtest.NewTable[models.ExperienceRow](),
		ContactMessages: dbtest.NewTable[models.ContactMessageRow](),
		AdminUsers:      users,
	})
	return NewAuthService(db.AdminUserRepo(), config.AuthSettings{
		JWTSecret:   testSecret,
		TokenTTL:    time.Hour,
		AllowSignup: allowSignup,
	}), users
}

var admin = Credentials{Email: "Owner@Example.com", Password: "correct horse"}

func TestSignUpDisabled(t *testing.T) {
	auth, users := newAuth(false)

	_, err := auth.SignUp(context.Background(), admin)

	assert.ErrorIs(t, err, errs.ErrSignupDisabled)
	assert.Equal(t, 403, errs.StatusCode(err))
	assert.Empty(t, users.Rows())
}

func TestSignUpAndSignIn(t *testing.T) {
	auth, users := newAuth(true)
	ctx := context.Background()

	user, err := auth.SignUp(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", user.Email)
	require.Len(t, users.Rows(), 1)
	assert.NotEqual(t, admin.Password, users.Rows()[0].PasswordHash)

	session, err := auth.SignInWithPassword(ctx, Credentials{Email: "owner@example.com", Password: admin.Password})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, user.ID, session.User.ID)

	got, err := auth.GetUser(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "owner@example.com", got.Email)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	auth, _ := newAuth(true)
	ctx := context.Background()
	_, err := auth.SignUp(ctx, admin)
	require.NoError(t, err)

	_, err = auth.SignInWithPassword(ctx, Credentials{Email: admin.Email, Password: "wrong password"})
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)

	_, err = auth.SignInWithPassword(ctx, Credentials{Email: "nobody@example.com", Password: admin.Password})
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)

	_, err = auth.SignInWithPassword(ctx, Credentials{Email: "bad", Password: "x"})
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestGetUserRejectsBadTokens(t *testing.T) {
	auth, _ := newAuth(true)
	ctx := context.Background()
	_, err := auth.SignUp(ctx, admin)
	require.NoError(t, err)
	session, err := auth.SignInWithPassword(ctx, admin)
	require.NoError(t, err)

	_, err = auth.GetUser(ctx, "")
	assert.ErrorIs(t, err, errs.ErrMissingToken)

	_, err = auth.GetUser(ctx, session.Token+"x")
	assert.ErrorIs(t, err, errs.ErrInvalidToken)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   session.User.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("another-secret-another-secret-xx"))
	require.NoError(t, err)
	_, err = auth.GetUser(ctx, forged)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)

	auth.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = auth.GetUser(ctx, session.Token)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
	assert.Equal(t, 401, errs.StatusCode(err))
}

func TestGetUserRequiresExistingAccount(t *testing.T) {
	auth, _ := newAuth(true)
	ghost := &models.AdminUser{Email: "ghost@example.com"}
	session, err := auth.issue(ghost)
	require.NoError(t, err)

	_, err = auth.GetUser(context.Background(), session.Token)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	auth, users := newAuth(true)
	ctx := context.Background()

	_, err := auth.SignUp(ctx, admin)
	require.NoError(t, err)

	_, err = auth.SignUp(ctx, Credentials{Email: "OWNER@example.com", Password: "another secret"})

	assert.ErrorIs(t, err, errs.ErrAlreadyExists)
	assert.Equal(t, 409, errs.StatusCode(err))
	assert.Len(t, users.Rows(), 1)
}
