package mock

import (
	"context"
	"sync"

	"github.com/qnaweb/qna-web-app/src/models"
	"github.com/qnaweb/qna-web-app/src/repositories"
)

// QuestionRepository is a mock implementation of repositories.QuestionRepository
type QuestionRepository struct {
	// Function stubs that can be overridden in tests
	GetQuestionsFunc   func(ctx context.Context, pagination models.Pagination) ([]models.Question, error)
	AddQuestionFunc    func(ctx context.Context, question models.NewQuestion) (*models.Question, error)
	UpdateQuestionFunc func(ctx context.Context, id models.QuestionID, question models.Question) (*models.Question, error)
	DeleteQuestionFunc func(ctx context.Context, id models.QuestionID) error

	// Call tracking
	Calls map[string][]interface{}
	mu    sync.Mutex
}

// NewQuestionRepository creates a new mock question repository
func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *QuestionRepository) GetQuestions(ctx context.Context, pagination models.Pagination) ([]models.Question, error) {
	m.track("GetQuestions", pagination)
	if m.GetQuestionsFunc != nil {
		return m.GetQuestionsFunc(ctx, pagination)
	}
	return []models.Question{}, nil
}

func (m *QuestionRepository) AddQuestion(ctx context.Context, question models.NewQuestion) (*models.Question, error) {
	m.track("AddQuestion", question)
	if m.AddQuestionFunc != nil {
		return m.AddQuestionFunc(ctx, question)
	}
	return &models.Question{ID: 1, Title: question.Title, Content: question.Content, Tags: question.Tags}, nil
}

func (m *QuestionRepository) UpdateQuestion(ctx context.Context, id models.QuestionID, question models.Question) (*models.Question, error) {
	m.track("UpdateQuestion", question)
	if m.UpdateQuestionFunc != nil {
		return m.UpdateQuestionFunc(ctx, id, question)
	}
	question.ID = id
	return &question, nil
}

func (m *QuestionRepository) DeleteQuestion(ctx context.Context, id models.QuestionID) error {
	m.track("DeleteQuestion", id)
	if m.DeleteQuestionFunc != nil {
		return m.DeleteQuestionFunc(ctx, id)
	}
	return nil
}

func (m *QuestionRepository) track(name string, arg interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls[name] = append(m.Calls[name], arg)
}

// AnswerRepository is a mock implementation of repositories.AnswerRepository
type AnswerRepository struct {
	AddAnswerFunc func(ctx context.Context, answer models.NewAnswer) (*models.Answer, error)

	// Call tracking
	Calls map[string][]interface{}
}

// NewAnswerRepository creates a new mock answer repository
func NewAnswerRepository() *AnswerRepository {
	return &AnswerRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *AnswerRepository) AddAnswer(ctx context.Context, answer models.NewAnswer) (*models.Answer, error) {
	m.Calls["AddAnswer"] = append(m.Calls["AddAnswer"], answer)
	if m.AddAnswerFunc != nil {
		return m.AddAnswerFunc(ctx, answer)
	}
	return &models.Answer{ID: 1, Content: answer.Content, QuestionID: answer.QuestionID}, nil
}

// Ensure mocks implement the interfaces
var (
	_ repositories.QuestionRepository = (*QuestionRepository)(nil)
	_ repositories.AnswerRepository   = (*AnswerRepository)(nil)
)
