package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Argon2id parameters - tuned for security vs performance balance
// Time: 3, Memory: 64MB, Threads: 4, KeyLen: 32 bytes
const (
	argon2Time    = 3
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16

	// Stored hashes asking for more than this are rejected before hashing
	argon2MaxMemory  = 4 * argon2Memory
	argon2MaxTime    = 10
	argon2MaxThreads = 16
	argon2MaxKeyLen  = 64
	argon2MaxSaltLen = 64

	argon2Prefix = "$argon2id$"

	// MaxPasswordBytes is the longest input bcrypt accepts
	MaxPasswordBytes = 72
)

// PasswordHasher hashes credentials and verifies them against stored hashes
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) bool
}

// Hasher produces bcrypt or argon2id hashes depending on its algorithm.
// Verify accepts either format so stored hashes survive an algorithm switch.
type Hasher struct {
	useArgon2  bool
	bcryptCost int
}

// NewBcryptHasher returns a hasher using bcrypt with the given cost
func NewBcryptHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{bcryptCost: cost}
}

// NewArgon2Hasher returns a hasher using argon2id
func NewArgon2Hasher() *Hasher {
	return &Hasher{useArgon2: true, bcryptCost: bcrypt.DefaultCost}
}

// Hash creates a salted hash of the password
func (h *Hasher) Hash(password string) (string, error) {
	if h.useArgon2 {
		return hashArgon2(password)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// Verify checks if a password matches the stored hash.
// A malformed hash never matches.
func (h *Hasher) Verify(password, encodedHash string) bool {
	if strings.HasPrefix(encodedHash, argon2Prefix) {
		return verifyArgon2(encodedHash, password)
	}
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}

// hashArgon2 creates an argon2id hash of the password
func hashArgon2(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		argon2Time,
		argon2Memory,
		argon2Threads,
		argon2KeyLen,
	)

	// Encode as: $argon2id$v=19$m=65536,t=3,p=4$salt$hash
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func verifyArgon2(encodedHash, password string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false
	}
	if memory == 0 || iterations == 0 || threads == 0 {
		return false
	}
	if memory > argon2MaxMemory || iterations > argon2MaxTime || threads > argon2MaxThreads {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) > argon2MaxSaltLen {
		return false
	}
	decodedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(decodedHash) == 0 || len(decodedHash) > argon2MaxKeyLen {
		return false
	}

	inputHash := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(decodedHash)))

	return subtle.ConstantTimeCompare(decodedHash, inputHash) == 1
}
