package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/qnaweb/qna-web-app/src/apperror"
	"github.com/qnaweb/qna-web-app/src/models"
	"github.com/qnaweb/qna-web-app/src/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationAndLogin(t *testing.T) {
	app := newTestApp(t)

	w := app.postJSON("/registration", `{"email":"a@x.com","password":"secret123"}`)
	assertStatusCode(t, w, http.StatusOK)
	assertBody(t, w, "Account added")

	w = app.postJSON("/login", `{"email":"a@x.com","password":"secret123"}`)
	assertStatusCode(t, w, http.StatusOK)

	var token string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))

	claims := &services.Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "1", claims.AccountID)

	w = app.postJSON("/login", `{"email":"a@x.com","password":"wrong"}`)
	assertStatusCode(t, w, http.StatusUnauthorized)
	assertBody(t, w, "Wrong E-mail/Password combination")
}

func TestRegistration_Duplicate(t *testing.T) {
	app := newTestApp(t)

	w := app.postJSON("/registration", `{"email":"a@x.com","password":"secret123"}`)
	assertStatusCode(t, w, http.StatusOK)

	w = app.postJSON("/registration", `{"email":"a@x.com","password":"other"}`)
	assertStatusCode(t, w, http.StatusUnprocessableEntity)
	assertBody(t, w, "Account already exists")
}

func TestRegistration_UniqueViolationFromDatabase(t *testing.T) {
	app := newTestApp(t)
	app.accounts.AddAccountFunc = func(ctx context.Context, account *models.Account) (models.AccountID, error) {
		return 0, apperror.Storage(&pgconn.PgError{Code: apperror.UniqueViolation})
	}

	w := app.postJSON("/registration", `{"email":"a@x.com","password":"secret123"}`)
	assertStatusCode(t, w, http.StatusUnprocessableEntity)
	assertBody(t, w, "Account already exists")
}

func TestRegistration_StorageFailure(t *testing.T) {
	app := newTestApp(t)
	app.accounts.AddAccountFunc = func(ctx context.Context, account *models.Account) (models.AccountID, error) {
		return 0, errors.New("connection refused")
	}

	w := app.postJSON("/registration", `{"email":"a@x.com","password":"secret123"}`)
	assertStatusCode(t, w, http.StatusUnprocessableEntity)
	assertBody(t, w, "Cannot update data")
}

func TestAuthHandlers_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "registration not json", path: "/registration", body: "email=a@x.com"},
		{name: "registration missing password", path: "/registration", body: `{"email":"a@x.com"}`},
		{name: "login not json", path: "/login", body: "{"},
		{name: "login missing email", path: "/login", body: `{"password":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)

			w := app.postJSON(tt.path, tt.body)
			assertStatusCode(t, w, http.StatusUnprocessableEntity)
			assert.True(t, strings.HasPrefix(w.Body.String(), "Request body deserialize error"), w.Body.String())
			assert.Empty(t, app.accounts.Calls["AddAccount"])
			assert.Empty(t, app.accounts.Calls["GetAccount"])
		})
	}
}

func TestLogin_UnknownAccount(t *testing.T) {
	app := newTestApp(t)

	w := app.postJSON("/login", `{"email":"nobody@x.com","password":"secret123"}`)
	assertStatusCode(t, w, http.StatusUnprocessableEntity)
	assertBody(t, w, "Account not found")
}

func TestLogin_CorruptHashLooksLikeWrongPassword(t *testing.T) {
	app := newTestApp(t)
	id := models.AccountID(9)
	app.accounts.GetAccountFunc = func(ctx context.Context, email string) (*models.Account, error) {
		return &models.Account{ID: &id, Email: email, Password: "$argon2id$garbage"}, nil
	}

	w := app.postJSON("/login", `{"email":"a@x.com","password":"secret123"}`)
	assertStatusCode(t, w, http.StatusUnauthorized)
	assertBody(t, w, "Wrong E-mail/Password combination")
}

func TestLogin_MissingAccountIDRecovers(t *testing.T) {
	app := newTestApp(t)

	w := app.postJSON("/registration", `{"email":"a@x.com","password":"secret123"}`)
	assertStatusCode(t, w, http.StatusOK)
	stored := app.accounts.Calls["AddAccount"][0].(models.Account)

	app.accounts.GetAccountFunc = func(ctx context.Context, email string) (*models.Account, error) {
		return &models.Account{Email: email, Password: stored.Password}, nil
	}

	w = app.postJSON("/login", `{"email":"a@x.com","password":"secret123"}`)
	assertStatusCode(t, w, http.StatusInternalServerError)
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/does-not-exist", "", nil)
	assertStatusCode(t, w, http.StatusNotFound)
	assertBody(t, w, "Route not found")
}
