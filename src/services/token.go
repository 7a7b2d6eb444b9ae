package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/qnaweb/qna-web-app/src/models"
)

// TokenLifetime is how long an issued token stays valid
const TokenLifetime = time.Hour

// Claims is the payload of an issued token. Only nbf and exp are set among
// the registered claims.
type Claims struct {
	AccountID string `json:"account_id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs HS256 tokens with a process-wide secret
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer creates an issuer. The secret must be at least 32 characters.
func NewTokenIssuer(secret string) (*TokenIssuer, error) {
	if len(secret) < 32 {
		return nil, ErrSecretTooShort
	}
	return &TokenIssuer{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token for accountID valid from now until now+TokenLifetime
func (i *TokenIssuer) Issue(accountID models.AccountID) (string, error) {
	notBefore := i.now()

	claims := Claims{
		AccountID: accountID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			NotBefore: jwt.NewNumericDate(notBefore),
			ExpiresAt: jwt.NewNumericDate(notBefore.Add(TokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}

	return signed, nil
}
