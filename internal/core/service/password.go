package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher wraps bcrypt with a configurable cost. bcrypt embeds a
// per-call random salt in its output and compares in constant time.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given cost. Out-of-range costs
// fall back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of the raw password.
func (h *PasswordHasher) Hash(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether raw matches the stored hash.
func (h *PasswordHasher) Verify(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
