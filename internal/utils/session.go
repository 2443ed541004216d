package utils

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidSession = errors.New("invalid or expired session")
	ErrRevokedSession = errors.New("session has been revoked")
)

// Claims identify the user a session cookie was issued to.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SessionTokens signs and verifies session cookies. Logged out tokens are
// remembered until they would have expired anyway.
type SessionTokens struct {
	secret []byte
	ttl    time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewSessionTokens(secret string, ttl time.Duration) *SessionTokens {
	return &SessionTokens{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Issue returns a signed token for the user and its expiry.
func (s *SessionTokens) Issue(userID uint, email, role string) (string, time.Time, error) {
	now := s.now()
	expireAt := now.Add(s.ttl)
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expireAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expireAt, nil
}

// Parse verifies signature, expiry and revocation.
func (s *SessionTokens) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}

	if s.isRevoked(claims.ID) {
		return nil, ErrRevokedSession
	}
	return claims, nil
}

// Revoke invalidates a session before its natural expiry.
func (s *SessionTokens) Revoke(claims *Claims) {
	if claims == nil || claims.ID == "" {
		return
	}
	expireAt := s.now().Add(s.ttl)
	if claims.ExpiresAt != nil {
		expireAt = claims.ExpiresAt.Time
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.revoked[claims.ID] = expireAt
}

func (s *SessionTokens) isRevoked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[id]
	return ok
}

func (s *SessionTokens) pruneLocked() {
	now := s.now()
	for id, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, id)
		}
	}
}

// RevokedCount is the number of revoked sessions still tracked.
func (s *SessionTokens) RevokedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.revoked)
}
