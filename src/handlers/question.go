package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/qnaweb/qna-web-app/src/apperror"
	"github.com/qnaweb/qna-web-app/src/models"
	"github.com/qnaweb/qna-web-app/src/services"
)

// QuestionHandler serves the question and answer routes
type QuestionHandler struct {
	questionService *services.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
	}
}

// QuestionRequest is the body of POST /questions and PUT /questions/:id.
// An id in the body is ignored; the path decides which question changes.
type QuestionRequest struct {
	ID      *int32   `json:"id,omitempty"`
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
}

// HandleGetQuestions handles GET /questions?limit=&offset=
func (h *QuestionHandler) HandleGetQuestions(c *gin.Context) {
	pagination, err := ExtractPagination(c.Request.URL.Query())
	if err != nil {
		abortWithError(c, err)
		return
	}

	questions, err := h.questionService.GetQuestions(c.Request.Context(), pagination)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// HandleAddQuestion handles POST /questions
func (h *QuestionHandler) HandleAddQuestion(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperror.MalformedBody(err))
		return
	}

	msg, err := h.questionService.AddQuestion(c.Request.Context(), models.NewQuestion{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.String(http.StatusOK, msg)
}

// HandleUpdateQuestion handles PUT /questions/:id
func (h *QuestionHandler) HandleUpdateQuestion(c *gin.Context) {
	id, err := questionID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperror.MalformedBody(err))
		return
	}

	updated, err := h.questionService.UpdateQuestion(c.Request.Context(), id, models.Question{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// HandleDeleteQuestion handles DELETE /questions/:id
func (h *QuestionHandler) HandleDeleteQuestion(c *gin.Context) {
	id, err := questionID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	msg, err := h.questionService.DeleteQuestion(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.String(http.StatusOK, msg)
}

// HandleAddAnswer handles POST /answers with form fields content and questionId
func (h *QuestionHandler) HandleAddAnswer(c *gin.Context) {
	content, hasContent := c.GetPostForm("content")
	rawID, hasID := c.GetPostForm("questionId")
	if !hasContent || !hasID {
		abortWithError(c, apperror.MissingParameter())
		return
	}

	id, err := parseQuestionID(rawID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	msg, err := h.questionService.AddAnswer(c.Request.Context(), models.NewAnswer{
		Content:    content,
		QuestionID: id,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.String(http.StatusOK, msg)
}

func questionID(c *gin.Context) (models.QuestionID, error) {
	return parseQuestionID(c.Param("id"))
}

func parseQuestionID(raw string) (models.QuestionID, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, apperror.InvalidInput(err)
	}
	return models.QuestionID(id), nil
}
