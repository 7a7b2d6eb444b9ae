package services

import (
	"context"
	"fmt"
	"time"

	"github.com/qnaweb/qna-web-app/src/logging"
	"github.com/qnaweb/qna-web-app/src/models"
	"github.com/qnaweb/qna-web-app/src/repositories"
	"github.com/rs/zerolog"
)

const (
	QuestionAdded = "Question added"
	AnswerAdded   = "Answer added"
)

// Censor masks offensive words in user supplied text
type Censor interface {
	Censor(ctx context.Context, text string) (string, error)
}

// QuestionService manages questions and answers
type QuestionService struct {
	questions    repositories.QuestionRepository
	answers      repositories.AnswerRepository
	censor       Censor
	storeTimeout time.Duration
	logger       zerolog.Logger
}

// NewQuestionService creates a question service. censor may be nil, in which
// case text is stored as submitted.
func NewQuestionService(questions repositories.QuestionRepository, answers repositories.AnswerRepository, censor Censor, storeTimeout time.Duration) (*QuestionService, error) {
	if questions == nil || answers == nil {
		return nil, ErrRepositoryRequired
	}

	return &QuestionService{
		questions:    questions,
		answers:      answers,
		censor:       censor,
		storeTimeout: storeTimeout,
		logger:       logging.NewLogger("questions"),
	}, nil
}

// GetQuestions returns one page of questions
func (s *QuestionService) GetQuestions(ctx context.Context, pagination models.Pagination) ([]models.Question, error) {
	storeCtx, cancel := storeContext(ctx, s.storeTimeout)
	defer cancel()

	questions, err := s.questions.GetQuestions(storeCtx, pagination)
	if err != nil {
		return nil, storeError(err)
	}
	return questions, nil
}

// AddQuestion censors title and content and stores the question
func (s *QuestionService) AddQuestion(ctx context.Context, question models.NewQuestion) (string, error) {
	title, err := s.clean(ctx, question.Title)
	if err != nil {
		return "", err
	}
	content, err := s.clean(ctx, question.Content)
	if err != nil {
		return "", err
	}

	storeCtx, cancel := storeContext(ctx, s.storeTimeout)
	defer cancel()

	stored, err := s.questions.AddQuestion(storeCtx, models.NewQuestion{
		Title:   title,
		Content: content,
		Tags:    question.Tags,
	})
	if err != nil {
		return "", storeError(err)
	}

	s.logger.Info().Int32("question_id", int32(stored.ID)).Msg("question added")
	return QuestionAdded, nil
}

// UpdateQuestion censors and replaces an existing question
func (s *QuestionService) UpdateQuestion(ctx context.Context, id models.QuestionID, question models.Question) (*models.Question, error) {
	title, err := s.clean(ctx, question.Title)
	if err != nil {
		return nil, err
	}
	content, err := s.clean(ctx, question.Content)
	if err != nil {
		return nil, err
	}

	question.ID = id
	question.Title = title
	question.Content = content

	storeCtx, cancel := storeContext(ctx, s.storeTimeout)
	defer cancel()

	updated, err := s.questions.UpdateQuestion(storeCtx, id, question)
	if err != nil {
		return nil, storeError(err)
	}
	return updated, nil
}

// DeleteQuestion removes a question together with its answers
func (s *QuestionService) DeleteQuestion(ctx context.Context, id models.QuestionID) (string, error) {
	storeCtx, cancel := storeContext(ctx, s.storeTimeout)
	defer cancel()

	if err := s.questions.DeleteQuestion(storeCtx, id); err != nil {
		return "", storeError(err)
	}

	s.logger.Info().Int32("question_id", int32(id)).Msg("question deleted")
	return fmt.Sprintf("Question %d deleted", id), nil
}

// AddAnswer censors the content and stores the answer
func (s *QuestionService) AddAnswer(ctx context.Context, answer models.NewAnswer) (string, error) {
	content, err := s.clean(ctx, answer.Content)
	if err != nil {
		return "", err
	}

	storeCtx, cancel := storeContext(ctx, s.storeTimeout)
	defer cancel()

	stored, err := s.answers.AddAnswer(storeCtx, models.NewAnswer{
		Content:    content,
		QuestionID: answer.QuestionID,
	})
	if err != nil {
		return "", storeError(err)
	}

	s.logger.Info().
		Int32("answer_id", int32(stored.ID)).
		Int32("question_id", int32(stored.QuestionID)).
		Msg("answer added")
	return AnswerAdded, nil
}

func (s *QuestionService) clean(ctx context.Context, text string) (string, error) {
	if s.censor == nil {
		return text, nil
	}
	return s.censor.Censor(ctx, text)
}
