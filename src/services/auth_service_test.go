package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/qnaweb/qna-web-app/src/apperror"
	"github.com/qnaweb/qna-web-app/src/models"
	"github.com/qnaweb/qna-web-app/src/repositories/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T, repo *mock.AccountRepository) *AuthService {
	t.Helper()
	svc, err := NewAuthService(repo, AuthConfig{
		JWTSecret:       testSecret,
		Argon2:          DefaultArgon2Params(),
		HashConcurrency: 2,
		StoreTimeout:    time.Second,
	})
	require.NoError(t, err)
	return svc
}

func TestNewAuthService_Validation(t *testing.T) {
	_, err := NewAuthService(nil, AuthConfig{JWTSecret: testSecret})
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewAuthService(mock.NewAccountRepository(), AuthConfig{JWTSecret: "short"})
	assert.ErrorIs(t, err, ErrSecretTooShort)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores hashed password only", func(t *testing.T) {
		repo := mock.NewAccountRepository()
		svc := newTestAuthService(t, repo)

		msg, err := svc.Register(ctx, models.Credential{Email: "a@x.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, AccountAdded, msg)

		require.Len(t, repo.Calls["AddAccount"], 1)
		stored := repo.Calls["AddAccount"][0].(models.Account)
		assert.Equal(t, "a@x.com", stored.Email)
		assert.NotEqual(t, "secret123", stored.Password)
		assert.False(t, strings.Contains(stored.Password, "secret123"))
		assert.True(t, strings.HasPrefix(stored.Password, "$argon2id$"))
	})

	t.Run("propagates duplicate key unchanged", func(t *testing.T) {
		pgErr := apperror.Storage(&pgconn.PgError{Code: apperror.UniqueViolation})
		repo := mock.NewAccountRepository()
		repo.AddAccountFunc = func(ctx context.Context, account *models.Account) (models.AccountID, error) {
			return 0, pgErr
		}
		svc := newTestAuthService(t, repo)

		_, err := svc.Register(ctx, models.Credential{Email: "a@x.com", Password: "secret123"})
		require.Error(t, err)
		assert.Same(t, pgErr, err)

		status, msg := apperror.Classify(err)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, apperror.MsgAccountExists, msg)
	})

	t.Run("untyped store error becomes storage failure", func(t *testing.T) {
		repo := mock.NewAccountRepository()
		repo.AddAccountFunc = func(ctx context.Context, account *models.Account) (models.AccountID, error) {
			return 0, errors.New("connection reset")
		}
		svc := newTestAuthService(t, repo)

		_, err := svc.Register(ctx, models.Credential{Email: "a@x.com", Password: "secret123"})
		assert.Equal(t, apperror.KindStorageFailure, apperror.KindOf(err))
	})

	t.Run("store timeout is a storage failure", func(t *testing.T) {
		repo := mock.NewAccountRepository()
		repo.AddAccountFunc = func(ctx context.Context, account *models.Account) (models.AccountID, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		}
		svc, err := NewAuthService(repo, AuthConfig{
			JWTSecret:    testSecret,
			Argon2:       DefaultArgon2Params(),
			StoreTimeout: 10 * time.Millisecond,
		})
		require.NoError(t, err)

		_, err = svc.Register(ctx, models.Credential{Email: "a@x.com", Password: "secret123"})
		assert.Equal(t, apperror.KindStorageFailure, apperror.KindOf(err))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("same password hashes differently per account", func(t *testing.T) {
		repo := mock.NewAccountRepository()
		svc := newTestAuthService(t, repo)

		_, err := svc.Register(ctx, models.Credential{Email: "a@x.com", Password: "secret123"})
		require.NoError(t, err)
		_, err = svc.Register(ctx, models.Credential{Email: "b@x.com", Password: "secret123"})
		require.NoError(t, err)

		first := repo.Calls["AddAccount"][0].(models.Account)
		second := repo.Calls["AddAccount"][1].(models.Account)
		assert.NotEqual(t, first.Password, second.Password)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("register then login issues a token", func(t *testing.T) {
		repo := mock.NewAccountRepository()
		svc := newTestAuthService(t, repo)

		_, err := svc.Register(ctx, models.Credential{Email: "a@x.com", Password: "secret123"})
		require.NoError(t, err)

		token, err := svc.Login(ctx, models.Credential{Email: "a@x.com", Password: "secret123"})
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims := &Claims{}
		_, err = jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		assert.Equal(t, "1", claims.AccountID)
		assert.Equal(t, int64(3600), claims.ExpiresAt.Unix()-claims.NotBefore.Unix())
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := mock.NewAccountRepository()
		svc := newTestAuthService(t, repo)

		_, err := svc.Register(ctx, models.Credential{Email: "a@x.com", Password: "secret123"})
		require.NoError(t, err)

		_, err = svc.Login(ctx, models.Credential{Email: "a@x.com", Password: "wrong"})
		require.Error(t, err)

		var appErr *apperror.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindInvalidCredentials, appErr.Kind)
		assert.Equal(t, apperror.CauseWrongPassword, appErr.Credential)

		status, msg := apperror.Classify(err)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Wrong E-mail/Password combination", msg)
	})

	t.Run("malformed stored hash", func(t *testing.T) {
		repo := mock.NewAccountRepository()
		id := models.AccountID(5)
		repo.GetAccountFunc = func(ctx context.Context, email string) (*models.Account, error) {
			return &models.Account{ID: &id, Email: email, Password: "not-a-hash"}, nil
		}
		svc := newTestAuthService(t, repo)

		_, err := svc.Login(ctx, models.Credential{Email: "a@x.com", Password: "secret123"})

		var appErr *apperror.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CauseHashingFailure, appErr.Credential)
		assert.ErrorIs(t, err, ErrInvalidHash)

		status, msg := apperror.Classify(err)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Wrong E-mail/Password combination", msg)
	})

	t.Run("unknown email propagates store not found", func(t *testing.T) {
		repo := mock.NewAccountRepository()
		svc := newTestAuthService(t, repo)

		_, err := svc.Login(ctx, models.Credential{Email: "missing@x.com", Password: "anything"})
		assert.True(t, apperror.Is(err, apperror.KindNotFound))

		status, _ := apperror.Classify(err)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})

	t.Run("store failure propagates unchanged", func(t *testing.T) {
		storeErr := apperror.Storage(errors.New("connection refused"))
		repo := mock.NewAccountRepository()
		repo.GetAccountFunc = func(ctx context.Context, email string) (*models.Account, error) {
			return nil, storeErr
		}
		svc := newTestAuthService(t, repo)

		_, err := svc.Login(ctx, models.Credential{Email: "a@x.com", Password: "secret123"})
		assert.Same(t, storeErr, err)
	})

	t.Run("account without id panics", func(t *testing.T) {
		repo := mock.NewAccountRepository()
		svc := newTestAuthService(t, repo)
		hash, err := svc.hasher.Hash(ctx, "secret123")
		require.NoError(t, err)
		repo.GetAccountFunc = func(ctx context.Context, email string) (*models.Account, error) {
			return &models.Account{Email: email, Password: hash}, nil
		}

		assert.Panics(t, func() {
			_, _ = svc.Login(ctx, models.Credential{Email: "a@x.com", Password: "secret123"})
		})
	})

	t.Run("exactly one store call", func(t *testing.T) {
		repo := mock.NewAccountRepository()
		svc := newTestAuthService(t, repo)
		_, err := svc.Register(ctx, models.Credential{Email: "a@x.com", Password: "secret123"})
		require.NoError(t, err)

		_, err = svc.Login(ctx, models.Credential{Email: "a@x.com", Password: "secret123"})
		require.NoError(t, err)

		assert.Len(t, repo.Calls["AddAccount"], 1)
		assert.Len(t, repo.Calls["GetAccount"], 1)
	})
}
