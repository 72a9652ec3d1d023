// Package jwt implementa los ports auth.TokenIssuer y auth.TokenVerifier
// con HS256. Reemplaza al servicio externo de credenciales: los tokens se
// firman y verifican localmente con JWT_SECRET.
package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption-api/internal/ports/auth"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 7 * 24 * time.Hour

var (
	ErrEmptySecret  = errors.New("jwt secret is empty")
	ErrInvalidToken = errors.New("invalid token")
)

type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret string, ttl time.Duration) (*Tokens, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

type tokenClaims struct {
	Role string `json:"role"`
	jwtlib.RegisteredClaims
}

func (t *Tokens) Issue(ctx context.Context, claims auth.Claims) (string, error) {
	if strings.TrimSpace(claims.UserID) == "" {
		return "", errors.New("claims missing user id")
	}

	now := t.now()
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, tokenClaims{
		Role: string(claims.Role),
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(t.ttl)),
		},
	})

	return tok.SignedString(t.secret)
}

func (t *Tokens) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	var claims tokenClaims
	parsed, err := jwtlib.ParseWithClaims(token, &claims, func(tok *jwtlib.Token) (any, error) {
		// Solo HS256; cualquier otro alg es un token forjado.
		if _, ok := tok.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwtlib.WithTimeFunc(t.now))
	if err != nil || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	userID := strings.TrimSpace(claims.Subject)
	if userID == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		UserID: userID,
		Role:   auth.Role(claims.Role),
	}, nil
}
