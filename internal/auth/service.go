package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/internal/customers"
	pkgauth "github.com/garagelab/modstudio-backend/pkg/auth"
	"github.com/garagelab/modstudio-backend/pkg/config"
	"github.com/garagelab/modstudio-backend/pkg/db"
	"github.com/garagelab/modstudio-backend/pkg/db/models"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
	"github.com/garagelab/modstudio-backend/pkg/security"
)

const minPasswordLength = 8

var (
	emailRe = regexp.MustCompile(`^[\w.+-]+@[\w.-]+\.\w+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9\s-]{10,15}$`)
)

// RateLimiter bounds repeated attempts against a scope.
type RateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// ServiceParams groups dependencies for the auth service.
type ServiceParams struct {
	CustomerRepo *customers.Repository
	RateLimiter  RateLimiter
	JWT          config.JWTConfig
	RateLimit    config.AuthRateLimitConfig
	Now          func() time.Time
}

// Service exposes account registration and login.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (SessionDTO, error)
	Login(ctx context.Context, input LoginInput) (SessionDTO, error)
}

type service struct {
	customerRepo *customers.Repository
	rateLimiter  RateLimiter
	jwt          config.JWTConfig
	rateLimit    config.AuthRateLimitConfig
	now          func() time.Time
}

// NewService builds an auth service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CustomerRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer repo is required")
	}
	if params.JWT.Secret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "jwt secret is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		customerRepo: params.CustomerRepo,
		rateLimiter:  params.RateLimiter,
		jwt:          params.JWT,
		rateLimit:    params.RateLimit,
		now:          now,
	}, nil
}

// Register creates the account and returns a signed session.
func (s *service) Register(ctx context.Context, input RegisterInput) (SessionDTO, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	phone := strings.TrimSpace(input.Phone)

	if name == "" {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !emailRe.MatchString(email) {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid email address")
	}
	if !phoneRe.MatchString(phone) {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid phone number")
	}
	if len(input.Password) < minPasswordLength {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	customer := &models.Customer{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if db.IsUniqueViolation(err, "") {
			return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already registered")
		}
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}

	return s.mintSession(customer)
}

// Login verifies credentials and returns a signed session. Attempts are rate
// limited per email so password guessing stays slow even across connections.
func (s *service) Login(ctx context.Context, input LoginInput) (SessionDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	if s.rateLimiter != nil && s.rateLimit.MaxAttempts > 0 {
		allowed, _, err := s.rateLimiter.FixedWindowAllow(ctx, "login:"+email, int64(s.rateLimit.MaxAttempts), s.rateLimit.Window)
		if err != nil {
			return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit check")
		}
		if !allowed {
			return SessionDTO{}, pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts")
		}
	}

	customer, err := s.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}

	if !security.VerifyPassword(input.Password, customer.PasswordHash) {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	return s.mintSession(customer)
}

func (s *service) mintSession(customer *models.Customer) (SessionDTO, error) {
	token, err := pkgauth.MintAccessToken(s.jwt, s.now().UTC(), pkgauth.AccessTokenPayload{
		CustomerID: customer.ID,
		Email:      customer.Email,
		IsAdmin:    customer.IsAdmin,
	})
	if err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return SessionDTO{Token: token, Customer: customers.ToDTO(customer)}, nil
}
