package security

import (
	"strings"
	"testing"

	"github.com/rentalhq/rental-backend/pkg/config"
)

func testHasher() *Hasher {
	// Low-cost parameters keep the test fast.
	return NewHasher(config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
}

func TestHashAndVerifyPassword(t *testing.T) {
	h := testHasher()

	encoded, err := h.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("encoded hash = %q, want argon2id format", encoded)
	}

	ok, err := h.VerifyPassword(encoded, "correct horse battery staple")
	if err != nil {
		t.Fatalf("verifying: %v", err)
	}
	if !ok {
		t.Fatal("correct password rejected")
	}

	ok, err = h.VerifyPassword(encoded, "wrong password")
	if err != nil {
		t.Fatalf("verifying wrong password: %v", err)
	}
	if ok {
		t.Fatal("wrong password accepted")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h := testHasher()

	first, err := h.HashPassword("same input")
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	second, err := h.HashPassword("same input")
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password should differ")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	h := testHasher()
	if _, err := h.VerifyPassword("not-a-hash", "anything"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}
