package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

type TokenType string

const (
	TokenTypeUndefined   TokenType = ""
	TokenTypeParticipant TokenType = "participant"
	TokenTypeAdmin       TokenType = "admin"
)

const issuer = "techxaura"

type TokenClaims struct {
	Type TokenType `json:"type"`
	jwt.RegisteredClaims
}

// UserID is the subject of the token; for admins it is the admin username.
func (c *TokenClaims) UserID() string {
	return c.Subject
}

// SessionID keys the checkout session opened together with the token.
func (c *TokenClaims) SessionID() string {
	return c.ID
}

type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) Generate(tokenType TokenType, subject, sessionID string) (string, error) {
	return t.generate(tokenType, subject, sessionID, t.ttl)
}

func (t *Tokens) generate(tokenType TokenType, subject, sessionID string, dur time.Duration) (string, error) {
	now := t.now()
	claims := TokenClaims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(dur)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *Tokens) Verify(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			alg, _ := token.Header["alg"].(string)
			return nil, errors.Wrap(ErrInvalidSigningMethod, alg)
		}
		return t.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(t.now))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		if claims.Type == TokenTypeUndefined || claims.Subject == "" {
			return nil, ErrInvalidToken
		}
		return claims, nil
	}

	return nil, ErrInvalidToken
}
