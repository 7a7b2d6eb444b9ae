package repositories

import (
	"context"

	"github.com/qnaweb/qna-web-app/src/models"
)

// Every method returns *apperror.Error on failure so callers can pass errors
// through unchanged.

// AccountRepository is the account store capability used by authentication
type AccountRepository interface {
	AddAccount(ctx context.Context, account *models.Account) (models.AccountID, error)
	GetAccount(ctx context.Context, email string) (*models.Account, error)
}

// QuestionRepository defines the interface for question data access
type QuestionRepository interface {
	GetQuestions(ctx context.Context, pagination models.Pagination) ([]models.Question, error)
	AddQuestion(ctx context.Context, question models.NewQuestion) (*models.Question, error)
	UpdateQuestion(ctx context.Context, id models.QuestionID, question models.Question) (*models.Question, error)
	DeleteQuestion(ctx context.Context, id models.QuestionID) error
}

// AnswerRepository defines the interface for answer data access
type AnswerRepository interface {
	AddAnswer(ctx context.Context, answer models.NewAnswer) (*models.Answer, error)
}
