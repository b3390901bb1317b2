// Package jwtauth implementa auth.AuthVerifier sobre el token manager local.
// Verificar es puro: firma + expiración, sin ir a buscar la cuenta a storage.
package jwtauth

import (
	"context"
	"errors"
	"strings"

	"pet-shop-api/internal/platform/token"
	"pet-shop-api/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

type Verifier struct {
	tokens *token.Manager
}

func NewVerifier(tokens *token.Manager) *Verifier {
	return &Verifier{tokens: tokens}
}

func (v *Verifier) Verify(ctx context.Context, tok string) (auth.Claims, error) {
	if v == nil || v.tokens == nil {
		return auth.Claims{}, errors.New("jwtauth: verifier not configured")
	}
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	userID, email, err := v.tokens.Verify(tok)
	if err != nil {
		return auth.Claims{}, err
	}
	if strings.TrimSpace(userID) == "" {
		return auth.Claims{}, token.ErrInvalidToken
	}

	return auth.Claims{UserID: userID, Email: email}, nil
}
