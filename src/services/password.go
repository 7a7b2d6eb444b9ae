package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"
)

// Argon2Params holds the argon2id cost parameters
type Argon2Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params returns the default cost: 4 MiB, 3 passes, 1 lane,
// 32-byte salt and key.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      4096,
		Iterations:  3,
		Parallelism: 1,
		SaltLength:  32,
		KeyLength:   32,
	}
}

// PasswordHasher hashes and verifies passwords with argon2id. Each call
// holds a slot of a bounded pool for the duration of the key derivation, so
// a burst of logins cannot take every CPU and a large amount of memory at
// once.
type PasswordHasher struct {
	params Argon2Params
	slots  *semaphore.Weighted
	random io.Reader
}

// NewPasswordHasher creates a hasher allowing at most concurrency parallel
// derivations. A non-positive concurrency defaults to GOMAXPROCS.
func NewPasswordHasher(params Argon2Params, concurrency int) *PasswordHasher {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &PasswordHasher{
		params: params,
		slots:  semaphore.NewWeighted(int64(concurrency)),
		random: rand.Reader,
	}
}

// Hash derives an encoded hash of password with a fresh random salt.
// The result uses the PHC string format so verification needs nothing else:
// $argon2id$v=19$m=4096,t=3,p=1$<salt>$<key>
func (h *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := io.ReadFull(h.random, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	if err := h.slots.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("failed to acquire hashing slot: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)
	h.slots.Release(1)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches encodedHash. The cost parameters
// come from the encoded hash, not from the hasher. An error means the hash
// could not be decoded, which is distinct from a mismatch.
func (h *PasswordHasher) Verify(ctx context.Context, encodedHash, password string) (bool, error) {
	params, salt, key, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	if err := h.slots.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("failed to acquire hashing slot: %w", err)
	}
	computed := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)
	h.slots.Release(1)

	return subtle.ConstantTimeCompare(key, computed) == 1, nil
}

func decodeHash(encodedHash string) (Argon2Params, []byte, []byte, error) {
	var params Argon2Params

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return params, nil, nil, ErrInvalidHash
	}

	if parts[1] != "argon2id" {
		return params, nil, nil, ErrUnsupportedAlgorithm
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, fmt.Errorf("%w: version: %v", ErrInvalidHash, err)
	}
	if version != argon2.Version {
		return params, nil, nil, ErrIncompatibleVersion
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return params, nil, nil, fmt.Errorf("%w: parameters: %v", ErrInvalidHash, err)
	}
	if params.Iterations == 0 || params.Parallelism == 0 {
		return params, nil, nil, fmt.Errorf("%w: zero cost parameter", ErrInvalidHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	params.SaltLength = uint32(len(salt))

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, fmt.Errorf("%w: key: %v", ErrInvalidHash, err)
	}
	if len(key) == 0 {
		return params, nil, nil, fmt.Errorf("%w: empty key", ErrInvalidHash)
	}
	params.KeyLength = uint32(len(key))

	return params, salt, key, nil
}
