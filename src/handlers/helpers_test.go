package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qnaweb/qna-web-app/src/middleware"
	"github.com/qnaweb/qna-web-app/src/repositories/mock"
	"github.com/qnaweb/qna-web-app/src/services"
)

// Test helpers for handler tests

const testJWTSecret = "handler-test-secret-32-characters"

// testApp wires handlers to mock repositories behind the production middleware
type testApp struct {
	router    *gin.Engine
	accounts  *mock.AccountRepository
	questions *mock.QuestionRepository
	answers   *mock.AnswerRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := &testApp{
		accounts:  mock.NewAccountRepository(),
		questions: mock.NewQuestionRepository(),
		answers:   mock.NewAnswerRepository(),
	}

	authService, err := services.NewAuthService(app.accounts, services.AuthConfig{
		JWTSecret:       testJWTSecret,
		Argon2:          services.DefaultArgon2Params(),
		HashConcurrency: 2,
		StoreTimeout:    time.Second,
	})
	if err != nil {
		t.Fatalf("failed to create auth service: %v", err)
	}

	questionService, err := services.NewQuestionService(app.questions, app.answers, nil, time.Second)
	if err != nil {
		t.Fatalf("failed to create question service: %v", err)
	}

	router := gin.New()
	router.Use(middleware.RequestIDMiddleware(), gin.Recovery(), middleware.ErrorRenderer(), middleware.CORS([]string{"*"}))
	router.NoRoute(middleware.NoRouteHandler())
	RegisterRoutes(router,
		NewAuthHandler(authService),
		NewQuestionHandler(questionService),
		NewHealthHandler(fakeChecker{}, nil),
	)

	app.router = router
	return app
}

// do sends a request through the full router
func (a *testApp) do(method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) postJSON(path, body string) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, path, "application/json", strings.NewReader(body))
}

// createTestContext creates a test Gin context with recorder
func createTestContext() (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return w, c
}

// assertStatusCode checks if response status code matches expected
func assertStatusCode(t *testing.T, w *httptest.ResponseRecorder, expectedCode int) {
	t.Helper()
	if w.Code != expectedCode {
		t.Errorf("expected status %d, got %d: %s", expectedCode, w.Code, w.Body.String())
	}
}

// assertBody checks the plain text response body
func assertBody(t *testing.T, w *httptest.ResponseRecorder, expected string) {
	t.Helper()
	if got := w.Body.String(); got != expected {
		t.Errorf("expected body %q, got %q", expected, got)
	}
}

// decodeJSON parses a JSON object response
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return response
}
