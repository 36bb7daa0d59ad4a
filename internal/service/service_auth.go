package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/metrics"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

// dummyPassword is hashed once and compared against when the login email is
// unknown, so both login failures cost one bcrypt comparison.
const dummyPassword = "go-pass-vault/no-such-user"

// authService is the concrete implementation of AuthService.
// Passwords are stored as bcrypt hashes; tokens come from a TokenManager.
type authService struct {
	userRepository store.UserRepository
	tokens         TokenManager
	ids            IDGenerator

	bcryptCost int
	now        func() time.Time

	dummyHashOnce sync.Once
	dummyHash     []byte

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repository
// and token manager. The returned service is safe for concurrent use.
func NewAuthService(userRepository store.UserRepository, tokens TokenManager, ids IDGenerator, cfg config.App, m *metrics.Metrics, logger *logger.Logger) AuthService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = config.DefaultBcryptCost
	}

	return &authService{
		userRepository: userRepository,
		tokens:         tokens,
		ids:            ids,
		bcryptCost:     cost,
		now:            time.Now,
		metrics:        m,
		logger:         logger,
	}
}

// Register creates a new identity and signs it in.
//
// Email uniqueness is checked before hashing; a concurrent registration
// racing past the check is still rejected by the unique index with
// store.ErrEmailAlreadyExists.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)
	email := normalizeEmail(req.Email)

	_, err := a.userRepository.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		log.Debug().Str("func", "*authService.Register").Msg("email already registered")
		return models.AuthResponse{}, store.ErrEmailAlreadyExists
	case !errors.Is(err, store.ErrNoUserWasFound):
		log.Err(err).Str("func", "*authService.Register").Msg("user search by email failed")
		return models.AuthResponse{}, fmt.Errorf("user search by email failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("password hashing failed")
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrPasswordHashingFailed, err)
	}

	now := a.now().UTC().Truncate(time.Microsecond)
	user := models.User{
		UserID:       a.ids.Generate(),
		Username:     req.Username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("user creation ended with error")
		return models.AuthResponse{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("func", "*authService.Register").Str("user_id", registeredUser.UserID.String()).Msg("user registered")

	return a.signIn(ctx, registeredUser)
}

// Login authenticates by email and password. Unknown email and wrong
// password both yield ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, store.ErrNoUserWasFound) {
		_ = bcrypt.CompareHashAndPassword(a.getDummyHash(), []byte(req.Password))
		a.metrics.IncAuthFailures(metrics.ReasonBadCredentials)
		log.Info().Str("func", "*authService.Login").Msg("login rejected")
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.AuthResponse{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(req.Password)); err != nil {
		a.metrics.IncAuthFailures(metrics.ReasonBadCredentials)
		log.Info().Str("func", "*authService.Login").Str("user_id", foundUser.UserID.String()).Msg("login rejected")
		return models.AuthResponse{}, ErrInvalidCredentials
	}

	return a.signIn(ctx, foundUser)
}

// GetProfile returns the identity bound to userID.
func (a *authService) GetProfile(ctx context.Context, userID uuid.UUID) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.GetProfile").Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// ParseToken verifies raw and returns its claims. The token package's
// sentinels are returned unchanged so callers can tell an expired token
// from a forged one.
func (a *authService) ParseToken(ctx context.Context, raw string) (models.Claims, error) {
	claims, err := a.tokens.Verify(raw)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		return models.Claims{}, err
	}

	return claims, nil
}

func (a *authService) signIn(ctx context.Context, user models.User) (models.AuthResponse, error) {
	token, err := a.tokens.Issue(user.UserID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.signIn").Msg("token creation failed")
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.AuthResponse{
		Token: token.SignedString,
		User:  user.ToResponse(),
	}, nil
}

func (a *authService) getDummyHash() []byte {
	a.dummyHashOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), a.bcryptCost)
		if err != nil {
			a.logger.Err(err).Str("func", "*authService.getDummyHash").Msg("dummy hash generation failed")
			return
		}
		a.dummyHash = hash
	})
	return a.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
