// Package auth issues and verifies the signed tokens used by the admin area:
// login sessions and per-form nonces. Both are HS256 JWTs sharing one secret
// and told apart by their audience.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dfryer1193/goslider/slider/domain"
	"github.com/golang-jwt/jwt/v4"
)

const (
	audienceSession = "session"
	audienceNonce   = "nonce"
)

var ErrInvalidToken = errors.New("invalid token")

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type nonceClaims struct {
	Action string `json:"act"`
	Object string `json:"obj"`
	jwt.RegisteredClaims
}

// Signer mints and checks tokens with a shared HMAC secret.
type Signer struct {
	secret     []byte
	sessionTTL time.Duration
	nonceTTL   time.Duration
	now        func() time.Time
}

func NewSigner(secret string, sessionTTL, nonceTTL time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret cannot be empty")
	}
	return &Signer{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		nonceTTL:   nonceTTL,
		now:        time.Now,
	}, nil
}

func (s *Signer) registered(subject, audience string, ttl time.Duration) jwt.RegisteredClaims {
	now := s.now().UTC()
	return jwt.RegisteredClaims{
		Subject:   subject,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (s *Signer) sign(claims jwt.Claims) (string, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *Signer) parse(token string, claims jwt.Claims, audience string) error {
	parser := jwt.Parser{
		ValidMethods: []string{jwt.SigningMethodHS256.Alg()},
	}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}

	// jwt v4 validates exp against the wall clock; re-check against our clock
	// and require the audience.
	type audExp interface {
		VerifyAudience(string, bool) bool
		VerifyExpiresAt(time.Time, bool) bool
	}
	ae, ok := claims.(audExp)
	if !ok || !ae.VerifyAudience(audience, true) || !ae.VerifyExpiresAt(s.now(), true) {
		return ErrInvalidToken
	}
	return nil
}

// IssueSession returns a session token for u.
func (s *Signer) IssueSession(u *domain.User) (string, error) {
	return s.sign(sessionClaims{
		Role:             string(u.Role),
		RegisteredClaims: s.registered(u.ID, audienceSession, s.sessionTTL),
	})
}

// VerifySession returns the principal carried by a valid session token.
func (s *Signer) VerifySession(token string) (domain.Principal, error) {
	var claims sessionClaims
	if err := s.parse(token, &claims, audienceSession); err != nil {
		return domain.Principal{}, err
	}
	role := domain.Role(claims.Role)
	if claims.Subject == "" || !role.Valid() {
		return domain.Principal{}, ErrInvalidToken
	}
	return domain.Principal{UserID: claims.Subject, Role: role}, nil
}

// IssueNonce binds a form submission to an action, the user and the edited object.
func (s *Signer) IssueNonce(action, userID, object string) (string, error) {
	return s.sign(nonceClaims{
		Action:           action,
		Object:           object,
		RegisteredClaims: s.registered(userID, audienceNonce, s.nonceTTL),
	})
}

// VerifyNonce reports whether nonce was issued for exactly this action, user and object.
func (s *Signer) VerifyNonce(nonce, action, userID, object string) bool {
	if nonce == "" {
		return false
	}
	var claims nonceClaims
	if err := s.parse(nonce, &claims, audienceNonce); err != nil {
		return false
	}
	return claims.Action == action && claims.Subject == userID && claims.Object == object
}
