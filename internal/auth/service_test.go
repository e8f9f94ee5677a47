package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/internal/customers"
	pkgauth "github.com/garagelab/modstudio-backend/pkg/auth"
	"github.com/garagelab/modstudio-backend/pkg/config"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
)

type stubLimiter struct {
	allowed bool
	calls   int
	scope   string
}

func (s *stubLimiter) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	s.calls++
	s.scope = scope
	return s.allowed, int64(s.calls), nil
}

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL DEFAULT '',
  pincode TEXT NOT NULL DEFAULT '',
  visit_count INTEGER NOT NULL DEFAULT 0,
  total_spent NUMERIC NOT NULL DEFAULT 0,
  loyalty_points INTEGER NOT NULL DEFAULT 0,
  is_admin INTEGER NOT NULL DEFAULT 0,
  last_visit_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_email ON customers (lower(email));`
	require.NoError(t, conn.Exec(schema).Error)
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB, limiter RateLimiter) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		CustomerRepo: customers.NewRepository(conn),
		RateLimiter:  limiter,
		JWT:          config.JWTConfig{Secret: "secret", Issuer: "modstudio", AccessTTL: time.Hour},
		RateLimit:    config.AuthRateLimitConfig{MaxAttempts: 3, Window: time.Minute},
	})
	require.NoError(t, err)
	return svc
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Name:     "Amit Verma",
		Email:    "Amit.Verma@example.com",
		Phone:    "+91 98765 43210",
		Password: "hunter2hunter2",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	conn := setupAuthTestDB(t)
	svc := newTestService(t, conn, nil)
	ctx := context.Background()

	session, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "amit.verma@example.com", session.Customer.Email)
	assert.Equal(t, 0, session.Customer.VisitCount)

	claims, err := pkgauth.ParseAccessToken(config.JWTConfig{Secret: "secret", Issuer: "modstudio", AccessTTL: time.Hour}, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Customer.ID, claims.CustomerID)

	login, err := svc.Login(ctx, LoginInput{Email: "AMIT.VERMA@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.Equal(t, session.Customer.ID, login.Customer.ID)
}

func TestRegisterValidation(t *testing.T) {
	conn := setupAuthTestDB(t)
	svc := newTestService(t, conn, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		amend func(*RegisterInput)
	}{
		{"empty name", func(in *RegisterInput) { in.Name = "  " }},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"bad phone", func(in *RegisterInput) { in.Phone = "12345" }},
		{"short password", func(in *RegisterInput) { in.Password = "short" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRegisterInput()
			tt.amend(&input)
			_, err := svc.Register(ctx, input)
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	conn := setupAuthTestDB(t)
	svc := newTestService(t, conn, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	_, err = svc.Register(ctx, validRegisterInput())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	conn := setupAuthTestDB(t)
	svc := newTestService(t, conn, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "amit.verma@example.com", Password: "wrong-password"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "whatever123"})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLoginRateLimited(t *testing.T) {
	conn := setupAuthTestDB(t)
	limiter := &stubLimiter{allowed: false}
	svc := newTestService(t, conn, limiter)

	_, err := svc.Login(context.Background(), LoginInput{Email: "amit.verma@example.com", Password: "hunter2hunter2"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeRateLimit, typed.Code())
	assert.Equal(t, "login:amit.verma@example.com", limiter.scope)
}
