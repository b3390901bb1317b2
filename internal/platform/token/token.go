// Package token emite y valida los tokens de identidad (JWT HS256).
// El token viaja como Bearer y embebe el id de usuario en "sub";
// validar es puro (firma + expiración), no toca storage.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptySecret  = errors.New("token secret is required")
	ErrInvalidToken = errors.New("invalid token")
)

const DefaultTTL = 24 * time.Hour

type claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Manager firma y verifica tokens con un secreto compartido.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue genera un token firmado para el usuario.
// Claims: sub (user id), email, iat, exp.
func (m *Manager) Issue(userID, email string) (string, error) {
	now := m.now()
	c := &claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString(m.secret)
}

// Verify valida firma y expiración y devuelve (userID, email).
// Cualquier fallo colapsa en ErrInvalidToken: al cliente no le
// contamos si fue firma, formato o expiración.
func (m *Manager) Verify(tokenString string) (string, string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		// Solo HS256; un token firmado con otro método no pasa.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return "", "", ErrInvalidToken
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.Subject == "" {
		return "", "", ErrInvalidToken
	}
	return c.Subject, c.Email, nil
}
