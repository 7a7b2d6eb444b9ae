package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qnaweb/qna-web-app/src/apperror"
	"github.com/qnaweb/qna-web-app/src/models"
	"github.com/qnaweb/qna-web-app/src/repositories"
)

// AccountRepository stores accounts in the accounts table
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// AddAccount inserts an account whose password is already hashed.
// A duplicate email surfaces as a storage failure carrying SQLSTATE 23505.
func (r *AccountRepository) AddAccount(ctx context.Context, account *models.Account) (models.AccountID, error) {
	query := `
		INSERT INTO accounts (email, password)
		VALUES ($1, $2)
		RETURNING id
	`

	var id models.AccountID
	if err := r.pool.QueryRow(ctx, query, account.Email, account.Password).Scan(&id); err != nil {
		return 0, apperror.Storage(fmt.Errorf("failed to insert account: %w", err))
	}

	return id, nil
}

// GetAccount looks an account up by email
func (r *AccountRepository) GetAccount(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT id, email, password FROM accounts WHERE email = $1`

	var id models.AccountID
	account := &models.Account{}
	err := r.pool.QueryRow(ctx, query, email).Scan(&id, &account.Email, &account.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("Account")
		}
		return nil, apperror.Storage(fmt.Errorf("failed to get account: %w", err))
	}
	account.ID = &id

	return account, nil
}

var _ repositories.AccountRepository = (*AccountRepository)(nil)
