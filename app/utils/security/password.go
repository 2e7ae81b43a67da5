package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"user-auth-service/app/port"
)

// ErrInvalidHash is returned when a stored hash cannot be parsed.
// Callers should treat it as a verification failure, never a crash.
var ErrInvalidHash = errors.New("invalid password hash format")

// Argon2Params holds the tuning parameters for Argon2id hashing
type Argon2Params struct {
	// Memory is the amount of memory used in KiB
	Memory uint32

	// Iterations is the number of passes over the memory
	Iterations uint32

	// Parallelism is the number of threads to use
	Parallelism uint8

	// SaltLength is the length of the random salt in bytes
	SaltLength uint32

	// KeyLength is the length of the derived key in bytes
	KeyLength uint32
}

// DefaultArgon2Params returns secure defaults for Argon2id following
// OWASP recommendations for password storage
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      64 * 1024, // 64 MiB
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// sanitize enforces minima that argon2 itself requires to be sane
func (p Argon2Params) sanitize() Argon2Params {
	if p.Memory < 8*1024 {
		p.Memory = 8 * 1024
	}
	if p.Iterations == 0 {
		p.Iterations = 1
	}
	if p.Parallelism == 0 {
		p.Parallelism = 1
	}
	if p.SaltLength < 8 {
		p.SaltLength = 16
	}
	if p.KeyLength < 16 {
		p.KeyLength = 32
	}
	return p
}

// Argon2Hasher implements port.PasswordHasher using Argon2id
type Argon2Hasher struct {
	params Argon2Params
}

// NewArgon2Hasher creates a new Argon2id hasher with the given parameters
func NewArgon2Hasher(params Argon2Params) *Argon2Hasher {
	return &Argon2Hasher{params: params.sanitize()}
}

// Hash derives an Argon2id hash from a password with a fresh random salt.
// The result is a self-describing PHC string of the form
// $argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>, so verification needs no
// side-channel parameter lookup.
func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		h.params.Iterations,
		h.params.Memory,
		h.params.Parallelism,
		h.params.KeyLength,
	)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Key := base64.RawStdEncoding.EncodeToString(key)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		b64Salt,
		b64Key,
	)

	return encoded, nil
}

// Verify recomputes the hash with the salt and parameters embedded in
// hashedPassword and compares in constant time
func (h *Argon2Hasher) Verify(hashedPassword, password string) (bool, error) {
	params, salt, key, err := decodeHash(hashedPassword)
	if err != nil {
		return false, err
	}

	otherKey := argon2.IDKey(
		[]byte(password),
		salt,
		params.Iterations,
		params.Memory,
		params.Parallelism,
		params.KeyLength,
	)

	// Constant-time comparison to prevent timing attacks
	if subtle.ConstantTimeCompare(key, otherKey) == 1 {
		return true, nil
	}
	return false, nil
}

// decodeHash parses an Argon2id hash in PHC string format
func decodeHash(encoded string) (Argon2Params, []byte, []byte, error) {
	var params Argon2Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return params, nil, nil, ErrInvalidHash
	}

	if parts[1] != "argon2id" {
		return params, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, ErrInvalidHash
	}
	if version != argon2.Version {
		return params, nil, nil, ErrInvalidHash
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d",
		&params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return params, nil, nil, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, ErrInvalidHash
	}
	params.SaltLength = uint32(len(salt))

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, ErrInvalidHash
	}
	params.KeyLength = uint32(len(key))

	return params, salt, key, nil
}

// Ensure Argon2Hasher implements port.PasswordHasher
var _ port.PasswordHasher = (*Argon2Hasher)(nil)
