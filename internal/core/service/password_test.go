package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the raw password")
	}
	if !h.Verify("s3cret-pass", hash) {
		t.Fatal("Verify() = false for the correct password")
	}
	if h.Verify("wrong-pass", hash) {
		t.Fatal("Verify() = true for a wrong password")
	}
}

func TestPasswordHashIsSalted(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	a, err := h.Hash("same input")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	b, err := h.Hash("same input")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestPasswordHasherClampsInvalidCost(t *testing.T) {
	h := NewPasswordHasher(-1)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want bcrypt.DefaultCost", h.cost)
	}

	h = NewPasswordHasher(bcrypt.MaxCost + 1)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want bcrypt.DefaultCost", h.cost)
	}
}
