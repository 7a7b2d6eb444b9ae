package services

import (
	"context"
	"fmt"
	"time"

	"github.com/qnaweb/qna-web-app/src/apperror"
	"github.com/qnaweb/qna-web-app/src/logging"
	"github.com/qnaweb/qna-web-app/src/models"
	"github.com/qnaweb/qna-web-app/src/repositories"
	"github.com/rs/zerolog"
)

// AccountAdded is returned by a successful registration
const AccountAdded = "Account added"

// AuthConfig is built once at startup and is read-only afterwards
type AuthConfig struct {
	JWTSecret       string
	Argon2          Argon2Params
	HashConcurrency int
	// StoreTimeout bounds each store call; zero disables the bound
	StoreTimeout time.Duration
}

// AuthService handles registration and login
type AuthService struct {
	repo         repositories.AccountRepository
	hasher       *PasswordHasher
	tokens       *TokenIssuer
	storeTimeout time.Duration
	logger       zerolog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(repo repositories.AccountRepository, cfg AuthConfig) (*AuthService, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	tokens, err := NewTokenIssuer(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	return &AuthService{
		repo:         repo,
		hasher:       NewPasswordHasher(cfg.Argon2, cfg.HashConcurrency),
		tokens:       tokens,
		storeTimeout: cfg.StoreTimeout,
		logger:       logging.NewLogger("auth"),
	}, nil
}

// Register hashes the password and stores the account. Store errors are
// returned as they are.
func (s *AuthService) Register(ctx context.Context, cred models.Credential) (string, error) {
	hash, err := s.hasher.Hash(ctx, cred.Password)
	if err != nil {
		return "", apperror.HashingFailure(err)
	}

	account := &models.Account{
		Email:    cred.Email,
		Password: hash,
	}

	storeCtx, cancel := storeContext(ctx, s.storeTimeout)
	defer cancel()

	id, err := s.repo.AddAccount(storeCtx, account)
	if err != nil {
		return "", storeError(err)
	}

	s.logger.Info().Str("account_id", id.String()).Msg("account registered")
	return AccountAdded, nil
}

// Login verifies the credential against the stored hash and issues a token.
//
// A stored account without an id violates the store contract and panics.
func (s *AuthService) Login(ctx context.Context, cred models.Credential) (string, error) {
	storeCtx, cancel := storeContext(ctx, s.storeTimeout)
	account, err := s.repo.GetAccount(storeCtx, cred.Email)
	cancel()
	if err != nil {
		return "", storeError(err)
	}

	verified, err := s.hasher.Verify(ctx, account.Password, cred.Password)
	if err != nil {
		return "", apperror.HashingFailure(err)
	}
	if !verified {
		return "", apperror.WrongPassword()
	}

	if account.ID == nil {
		panic("account id not found")
	}

	token, err := s.tokens.Issue(*account.ID)
	if err != nil {
		// HS256 with a byte key cannot fail to sign
		panic(fmt.Sprintf("failed to create JWT: %v", err))
	}

	s.logger.Info().Str("account_id", account.ID.String()).Msg("token issued")
	return token, nil
}

// storeContext bounds a single store call; a zero timeout disables the bound
func storeContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// storeError keeps store errors inside the taxonomy. Typed errors pass
// through untouched; anything else is a storage failure.
func storeError(err error) error {
	if apperror.KindOf(err) == apperror.KindUnknown {
		return apperror.Storage(err)
	}
	return err
}
