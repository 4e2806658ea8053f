// file: service/hash_service_test.go

package service

import (
	"testing"
)

// TestHashService_HashAndCheckPassword ensures that password hashing and verification methods work correctly.
func TestHashService_HashAndCheckPassword(t *testing.T) {
	hasher := NewHashService(10)
	password := "mySecretPassword123"

	// 1. Test Hashing
	hashedPassword, err := hasher.HashPassword(password)
	if err != nil {
		t.Fatalf("hasher.HashPassword() returned an unexpected error: %v", err)
	}

	if hashedPassword == password {
		t.Errorf("Hashed password should not be the same as the original password.")
	}

	// 2. Test Successful Verification
	match := hasher.CheckPasswordHash(password, hashedPassword)
	if !match {
		t.Errorf("hasher.CheckPasswordHash() should have returned true for a matching password, but got false.")
	}

	// 3. Test Failed Verification
	wrongPassword := "notMyPassword"
	match = hasher.CheckPasswordHash(wrongPassword, hashedPassword)
	if match {
		t.Errorf("hasher.CheckPasswordHash() should have returned false for a non-matching password, but got true.")
	}
}

// TestHashService_MalformedDigest verifies that a garbage digest is treated
// as a mismatch rather than a panic or error.
func TestHashService_MalformedDigest(t *testing.T) {
	hasher := NewHashService(10)

	if hasher.CheckPasswordHash("password", "not-a-bcrypt-digest") {
		t.Errorf("CheckPasswordHash() should return false for a malformed digest")
	}
	if hasher.CheckPasswordHash("password", "") {
		t.Errorf("CheckPasswordHash() should return false for an empty digest")
	}
}

func TestHashService_TokenDigest(t *testing.T) {
	hasher := NewHashService(10)
	token := "some-refresh-token-plaintext"

	digest := hasher.HashToken(token)
	if digest == token {
		t.Fatalf("Token digest should not equal the plaintext")
	}

	// Deterministic: same input, same digest. The repository relies on this
	// for digest-keyed lookups.
	if digest != hasher.HashToken(token) {
		t.Errorf("HashToken() should be deterministic")
	}

	if !hasher.CheckTokenHash(token, digest) {
		t.Errorf("CheckTokenHash() should match the digest of the same plaintext")
	}
	if hasher.CheckTokenHash("a-different-token", digest) {
		t.Errorf("CheckTokenHash() should reject a different plaintext")
	}
}

// TestNewHashService_CostClamping ensures out-of-range costs fall back to the
// bcrypt default instead of failing at hash time.
func TestNewHashService_CostClamping(t *testing.T) {
	hasher := NewHashService(99)

	hashed, err := hasher.HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword() with clamped cost returned error: %v", err)
	}
	if !hasher.CheckPasswordHash("password123", hashed) {
		t.Errorf("round trip with clamped cost failed")
	}
}
