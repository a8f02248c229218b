// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	"github.com/angelamos/ledger-backend/internal/config"
)

const (
	defaultArgonTime    = 1
	defaultArgonMemory  = 64 * 1024
	defaultArgonThreads = 4
	argonKeyLen         = 32
	saltLength          = 16

	// A stored digest may ask for at most this much work, or four times the
	// configured work when that is higher.
	maxArgonMemory  = 256 * 1024
	maxArgonTime    = 16
	maxArgonThreads = 16
	maxArgonKeyLen  = 64
	costHeadroom    = 4
)

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
}

// PasswordHasher produces argon2id digests in the PHC string format and
// verifies both argon2id digests and bcrypt digests carried over from the
// previous system. Work factors come from config.PasswordConfig.
type PasswordHasher struct {
	params    argonParams
	dummyHash string
}

func NewPasswordHasher(cfg config.PasswordConfig) (*PasswordHasher, error) {
	params := argonParams{
		memory:  cfg.ArgonMemory,
		time:    cfg.ArgonTime,
		threads: cfg.ArgonThreads,
		keyLen:  argonKeyLen,
	}
	if params.memory == 0 {
		params.memory = defaultArgonMemory
	}
	if params.time == 0 {
		params.time = defaultArgonTime
	}
	if params.threads == 0 {
		params.threads = defaultArgonThreads
	}

	h := &PasswordHasher{params: params}

	dummy, err := h.Hash("dummy_password_for_timing_attack_prevention")
	if err != nil {
		return nil, fmt.Errorf("security: generate dummy hash: %w", err)
	}
	h.dummyHash = dummy

	return h, nil
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		h.params.time,
		h.params.memory,
		h.params.threads,
		h.params.keyLen,
	)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.memory,
		h.params.time,
		h.params.threads,
		b64Salt,
		b64Hash,
	)

	return encoded, nil
}

// Verify reports whether password matches encodedHash. A digest that
// cannot be decoded never matches.
func (h *PasswordHasher) Verify(password, encodedHash string) bool {
	if isBcryptHash(encodedHash) {
		return bcrypt.CompareHashAndPassword(
			[]byte(encodedHash),
			[]byte(password),
		) == nil
	}

	params, salt, hash, err := decodeHash(encodedHash)
	if err != nil || !h.affordable(params) {
		return false
	}

	otherHash := argon2.IDKey(
		[]byte(password),
		salt,
		params.time,
		params.memory,
		params.threads,
		params.keyLen,
	)

	return subtle.ConstantTimeCompare(hash, otherHash) == 1
}

// VerifyWithRehash verifies password and, when the stored digest uses an
// outdated algorithm or work factor, returns a fresh digest to persist.
func (h *PasswordHasher) VerifyWithRehash(
	password, encodedHash string,
) (bool, string) {
	if !h.Verify(password, encodedHash) {
		return false, ""
	}

	if !h.NeedsRehash(encodedHash) {
		return true, ""
	}

	newHash, err := h.Hash(password)
	if err != nil {
		return true, ""
	}

	return true, newHash
}

// VerifyTimingSafe always performs one full verification, against a dummy
// digest when encodedHash is absent, so an unknown account costs the same
// as a wrong password.
func (h *PasswordHasher) VerifyTimingSafe(
	password string,
	encodedHash *string,
) (bool, string) {
	hashToVerify := h.dummyHash
	if encodedHash != nil && *encodedHash != "" {
		hashToVerify = *encodedHash
	}

	valid, newHash := h.VerifyWithRehash(password, hashToVerify)

	if encodedHash == nil || *encodedHash == "" {
		return false, ""
	}

	return valid, newHash
}

// affordable reports whether verifying a digest with params stays within
// the cost ceiling.
func (h *PasswordHasher) affordable(params *argonParams) bool {
	return params.memory <= max(maxArgonMemory, costHeadroom*h.params.memory) &&
		params.time <= max(maxArgonTime, costHeadroom*h.params.time) &&
		uint32(params.threads) <= max(maxArgonThreads, costHeadroom*uint32(h.params.threads)) &&
		params.keyLen <= maxArgonKeyLen
}

func (h *PasswordHasher) NeedsRehash(encodedHash string) bool {
	if isBcryptHash(encodedHash) {
		return true
	}

	params, _, _, err := decodeHash(encodedHash)
	if err != nil {
		return true
	}

	return params.memory != h.params.memory ||
		params.time != h.params.time ||
		params.threads != h.params.threads ||
		params.keyLen != h.params.keyLen
}

func isBcryptHash(encodedHash string) bool {
	return strings.HasPrefix(encodedHash, "$2a$") ||
		strings.HasPrefix(encodedHash, "$2b$") ||
		strings.HasPrefix(encodedHash, "$2y$")
}

func decodeHash(encodedHash string) (*argonParams, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, nil, nil, fmt.Errorf("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return nil, nil, nil, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	_, err := fmt.Sscanf(parts[2], "v=%d", &version)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid version: %w", err)
	}

	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("incompatible version: %d", version)
	}

	params := &argonParams{}
	_, err = fmt.Sscanf(
		parts[3],
		"m=%d,t=%d,p=%d",
		&params.memory,
		&params.time,
		&params.threads,
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid params: %w", err)
	}

	if params.memory == 0 || params.time == 0 || params.threads == 0 {
		return nil, nil, nil, fmt.Errorf("invalid params: zero cost")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decode salt: %w", err)
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decode hash: %w", err)
	}

	if len(hash) == 0 {
		return nil, nil, nil, fmt.Errorf("decode hash: empty digest")
	}

	//nolint:gosec // G115: hash length is always small (32 bytes for Argon2id)
	params.keyLen = uint32(len(hash))

	return params, salt, hash, nil
}

// HashToken returns the hex SHA-256 of token, used wherever a bearer token
// has to be stored or used as a key.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
