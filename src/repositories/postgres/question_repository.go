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

// QuestionRepository stores questions and their answers
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// GetQuestions returns a page of questions ordered by id. A nil limit binds
// NULL, which PostgreSQL treats as no limit.
func (r *QuestionRepository) GetQuestions(ctx context.Context, pagination models.Pagination) ([]models.Question, error) {
	query := `
		SELECT id, title, content, tags
		FROM questions
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, apperror.Storage(fmt.Errorf("failed to query questions: %w", err))
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Title, &q.Content, &q.Tags); err != nil {
			return nil, apperror.Storage(fmt.Errorf("failed to scan question: %w", err))
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.Storage(fmt.Errorf("failed to iterate questions: %w", err))
	}

	return questions, nil
}

// AddQuestion inserts a question and returns it with its id
func (r *QuestionRepository) AddQuestion(ctx context.Context, question models.NewQuestion) (*models.Question, error) {
	query := `
		INSERT INTO questions (title, content, tags)
		VALUES ($1, $2, $3)
		RETURNING id, title, content, tags
	`

	q := &models.Question{}
	err := r.pool.QueryRow(ctx, query, question.Title, question.Content, question.Tags).
		Scan(&q.ID, &q.Title, &q.Content, &q.Tags)
	if err != nil {
		return nil, apperror.Storage(fmt.Errorf("failed to insert question: %w", err))
	}

	return q, nil
}

// UpdateQuestion replaces title, content and tags of an existing question
func (r *QuestionRepository) UpdateQuestion(ctx context.Context, id models.QuestionID, question models.Question) (*models.Question, error) {
	query := `
		UPDATE questions
		SET title = $1, content = $2, tags = $3
		WHERE id = $4
		RETURNING id, title, content, tags
	`

	q := &models.Question{}
	err := r.pool.QueryRow(ctx, query, question.Title, question.Content, question.Tags, id).
		Scan(&q.ID, &q.Title, &q.Content, &q.Tags)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("Question")
		}
		return nil, apperror.Storage(fmt.Errorf("failed to update question: %w", err))
	}

	return q, nil
}

// DeleteQuestion removes a question; its answers go with it (ON DELETE CASCADE)
func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id models.QuestionID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return apperror.Storage(fmt.Errorf("failed to delete question: %w", err))
	}

	if result.RowsAffected() == 0 {
		return apperror.NotFound("Question")
	}

	return nil
}

// AddAnswer inserts an answer for an existing question. An unknown question
// id violates the foreign key and surfaces as a storage failure.
func (r *QuestionRepository) AddAnswer(ctx context.Context, answer models.NewAnswer) (*models.Answer, error) {
	query := `
		INSERT INTO answers (content, corresponding_question)
		VALUES ($1, $2)
		RETURNING id, content, corresponding_question
	`

	a := &models.Answer{}
	err := r.pool.QueryRow(ctx, query, answer.Content, answer.QuestionID).
		Scan(&a.ID, &a.Content, &a.QuestionID)
	if err != nil {
		return nil, apperror.Storage(fmt.Errorf("failed to insert answer: %w", err))
	}

	return a, nil
}

var (
	_ repositories.QuestionRepository = (*QuestionRepository)(nil)
	_ repositories.AnswerRepository   = (*QuestionRepository)(nil)
)
