package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/streamvault/streaming-api/internal/core/domain"
)

const (
	defaultTokenTTL = time.Hour
	clockSkewLeeway = 5 * time.Second
)

// TokenDenylist tracks revoked token IDs until their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// accessClaims is the claim set carried by every access token.
type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer mints signed, time-bounded bearer tokens. The secret and TTL
// are fixed at construction and read-only afterwards, so a single issuer is
// safe for concurrent use.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates an issuer signing with secret. A non-positive ttl
// falls back to one hour.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// Issue mints an HS256 token asserting the user's identity. The jti claim is
// random per token so individual tokens can be denylisted.
func (i *TokenIssuer) Issue(user *domain.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(i.ttl)

	claims := accessClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// TokenVerifier validates presented tokens and recovers the asserted
// identity. Every failure collapses into domain.ErrInvalidToken so callers
// cannot distinguish an expired token from a forged one.
type TokenVerifier struct {
	secret   []byte
	denylist TokenDenylist
}

// NewTokenVerifier creates a verifier for tokens signed with secret. The
// denylist is consulted on every verification; a denylist failure rejects the
// token (fail closed).
func NewTokenVerifier(secret string, denylist TokenDenylist) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), denylist: denylist}
}

// Verify checks signature, expiry, and issued-at (with a few seconds of
// clock-skew leeway), then the denylist, and returns the token's identity.
func (v *TokenVerifier) Verify(ctx context.Context, tokenString string) (*domain.Identity, error) {
	claims := &accessClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(clockSkewLeeway),
	)
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Subject == "" || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, domain.ErrInvalidToken
	}

	revoked, err := v.denylist.IsRevoked(ctx, claims.ID)
	if err != nil || revoked {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Identity{
		UserID:    claims.Subject,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
