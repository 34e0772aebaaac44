// internal/service/auth_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/mateusz-szafarz/10x-cards/internal/config"
	"github.com/mateusz-szafarz/10x-cards/internal/model"
	"github.com/mateusz-szafarz/10x-cards/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func authFixture(t *testing.T) (AuthService, *gorm.DB, *config.Config) {
	t.Helper()
	db := setupTestDB(t)
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTLMinutes = 60
	return NewAuthService(db, repository.NewGormUserRepository(), cfg), db, cfg
}

func Test_authService_Register(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := authFixture(t)

	user, err := svc.Register(ctx, &model.RegisterRequest{Email: "user@example.com", Password: "s3cret-pass"})

	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))

	var stored model.User
	require.NoError(t, db.Where("email = ?", "user@example.com").First(&stored).Error)
	assert.Equal(t, user.UserID, stored.UserID)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
}

func Test_authService_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := authFixture(t)

	_, err := svc.Register(ctx, &model.RegisterRequest{Email: "user@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &model.RegisterRequest{Email: "user@example.com", Password: "other-pass"})

	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DUPLICATE_EMAIL", appErr.Detail.Code)
	assert.ErrorIs(t, err, model.ErrConflict)
}

func Test_authService_Login(t *testing.T) {
	ctx := context.Background()
	svc, _, cfg := authFixture(t)

	user, err := svc.Register(ctx, &model.RegisterRequest{Email: "user@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &model.LoginRequest{Email: "user@example.com", Password: "s3cret-pass"})

	require.NoError(t, err)
	assert.Equal(t, user.UserID, resp.User.ID)
	assert.Equal(t, "user@example.com", resp.User.Email)

	token, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Auth.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	subject, err := token.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, user.UserID.String(), subject)
}

func Test_authService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := authFixture(t)

	_, err := svc.Register(ctx, &model.RegisterRequest{Email: "user@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "user@example.com", password: "wrong-pass"},
		{name: "unknown email", email: "nobody@example.com", password: "s3cret-pass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, &model.LoginRequest{Email: tt.email, Password: tt.password})

			// Wrong password and unknown account are indistinguishable.
			var appErr *model.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "INVALID_CREDENTIALS", appErr.Detail.Code)
			assert.ErrorIs(t, err, model.ErrUnauthorized)
		})
	}
}
