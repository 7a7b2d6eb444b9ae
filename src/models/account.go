package models

import "strconv"

// AccountID is assigned by the store when an account is persisted
type AccountID int32

func (id AccountID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Credential is an email/password pair as submitted by a client.
// Password is plaintext and must not travel past the hashing step.
type Credential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Account is a persisted account. Password holds the encoded hash.
// ID is nil until the store assigns one.
type Account struct {
	ID       *AccountID `json:"id,omitempty"`
	Email    string     `json:"email"`
	Password string     `json:"-"` // never expose
}
