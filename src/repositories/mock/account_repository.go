package mock

import (
	"context"
	"sync"

	"github.com/qnaweb/qna-web-app/src/apperror"
	"github.com/qnaweb/qna-web-app/src/models"
	"github.com/qnaweb/qna-web-app/src/repositories"
)

// AccountRepository is a mock implementation of repositories.AccountRepository.
// Without stubs it behaves like an in-memory store keyed by email.
type AccountRepository struct {
	// Function stubs that can be overridden in tests
	AddAccountFunc func(ctx context.Context, account *models.Account) (models.AccountID, error)
	GetAccountFunc func(ctx context.Context, email string) (*models.Account, error)

	// Call tracking
	Calls map[string][]interface{}

	mu       sync.Mutex
	accounts map[string]models.Account
	nextID   models.AccountID
}

// NewAccountRepository creates a new mock account repository
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		Calls:    make(map[string][]interface{}),
		accounts: make(map[string]models.Account),
		nextID:   1,
	}
}

func (m *AccountRepository) AddAccount(ctx context.Context, account *models.Account) (models.AccountID, error) {
	m.track("AddAccount", *account)
	if m.AddAccountFunc != nil {
		return m.AddAccountFunc(ctx, account)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.accounts[account.Email]; exists {
		return 0, apperror.StorageConflict(nil)
	}
	id := m.nextID
	m.nextID++
	stored := *account
	stored.ID = &id
	m.accounts[account.Email] = stored
	return id, nil
}

func (m *AccountRepository) GetAccount(ctx context.Context, email string) (*models.Account, error) {
	m.track("GetAccount", email)
	if m.GetAccountFunc != nil {
		return m.GetAccountFunc(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.accounts[email]
	if !ok {
		return nil, apperror.NotFound("Account")
	}
	return &stored, nil
}

func (m *AccountRepository) track(name string, arg interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls[name] = append(m.Calls[name], arg)
}

// Ensure AccountRepository implements the interface
var _ repositories.AccountRepository = (*AccountRepository)(nil)
