package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"go-auth-api/logger"

	"golang.org/x/crypto/bcrypt"
)

// HashService owns every credential digest in the system: bcrypt for
// passwords, SHA-256 for refresh and reset tokens. Token digests are
// deterministic on purpose: the repository looks rows up by digest, which
// keeps redemption unambiguous and avoids scanning candidate rows.
type HashService struct {
	cost int
}

func NewHashService(cost int) *HashService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &HashService{cost: cost}
}

func (s *HashService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash reports whether password matches the stored digest.
// A malformed digest is treated as a mismatch, never an error.
func (s *HashService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// HashToken returns the hex SHA-256 digest of a token plaintext.
func (s *HashService) HashToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// CheckTokenHash compares the digest of plaintext against a stored digest in
// constant time.
func (s *HashService) CheckTokenHash(plaintext, hash string) bool {
	digest := s.HashToken(plaintext)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(hash)) == 1
}
