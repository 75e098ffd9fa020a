package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ErlanBelekov/task-api/internal/auth"
	"github.com/ErlanBelekov/task-api/internal/domain"
	"github.com/ErlanBelekov/task-api/internal/metrics"
	"github.com/ErlanBelekov/task-api/internal/repository"
)

type passwordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

type tokenService interface {
	IssuePair(userID string) (auth.TokenPair, error)
	Verify(raw string) (string, error)
}

type AuthUsecase struct {
	users   repository.UserRepository
	hasher  passwordHasher
	tokens  tokenService
	conceal bool

	dummyOnce sync.Once
	dummyHash string
}

type AuthOption func(*AuthUsecase)

// WithConcealedUnknownEmail makes Login answer an unknown email exactly like
// a wrong password, including the cost of one hash comparison.
func WithConcealedUnknownEmail(enabled bool) AuthOption {
	return func(u *AuthUsecase) { u.conceal = enabled }
}

func NewAuthUsecase(users repository.UserRepository, hasher passwordHasher, tokens tokenService, opts ...AuthOption) *AuthUsecase {
	u := &AuthUsecase{users: users, hasher: hasher, tokens: tokens}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// AuthResult carries the user without its password hash plus a fresh token pair.
type AuthResult struct {
	User         *domain.User
	Token        string
	RefreshToken string
}

// Register rejects a taken email, hashes the password before anything is
// written, persists the user in one statement and issues a token pair.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	_, err := u.users.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		recordAuth("register", "duplicate")
		return nil, domain.ErrDuplicateCredential
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := u.users.Create(ctx, &domain.User{
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: hash,
	})
	if err != nil {
		// Lost a concurrent registration race on the unique index.
		if errors.Is(err, domain.ErrDuplicateCredential) {
			recordAuth("register", "duplicate")
			return nil, domain.ErrDuplicateCredential
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	res, err := u.issue(created)
	if err != nil {
		return nil, err
	}
	recordAuth("register", "success")
	return res, nil
}

func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("find user by email: %w", err)
		}
		recordAuth("login", "unknown_email")
		if u.conceal {
			u.hasher.Verify(password, u.dummy())
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.ErrUserNotFound
	}

	if !u.hasher.Verify(password, user.PasswordHash) {
		recordAuth("login", "bad_password")
		return nil, domain.ErrInvalidCredentials
	}

	res, err := u.issue(user)
	if err != nil {
		return nil, err
	}
	recordAuth("login", "success")
	return res, nil
}

// RefreshToken exchanges a valid refresh token for a brand-new pair. A bad
// token and a token whose user no longer exists are indistinguishable.
func (u *AuthUsecase) RefreshToken(ctx context.Context, rawToken string) (*AuthResult, error) {
	userID, err := u.tokens.Verify(rawToken)
	if err != nil {
		recordAuth("refresh", "invalid_token")
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenInvalid, err)
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			recordAuth("refresh", "invalid_token")
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	res, err := u.issue(user)
	if err != nil {
		return nil, err
	}
	recordAuth("refresh", "success")
	return res, nil
}

// GetSession returns the caller's minimal projection. Only reachable after
// the guard, so ErrUserNotFound means the user was removed mid-session.
func (u *AuthUsecase) GetSession(ctx context.Context, userID string) (*domain.Session, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &domain.Session{ID: user.ID, Email: user.Email, FullName: user.FullName}, nil
}

// FindUserByID is the guard's lookup. The returned user has no password hash.
func (u *AuthUsecase) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user.Public(), nil
}

func (u *AuthUsecase) issue(user *domain.User) (*AuthResult, error) {
	pair, err := u.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return &AuthResult{User: user.Public(), Token: pair.Access, RefreshToken: pair.Refresh}, nil
}

func (u *AuthUsecase) dummy() string {
	u.dummyOnce.Do(func() {
		u.dummyHash, _ = u.hasher.Hash("timing-equalizer-for-unknown-email")
	})
	return u.dummyHash
}

func recordAuth(event, outcome string) {
	metrics.AuthEventsTotal.WithLabelValues(event, outcome).Inc()
}
