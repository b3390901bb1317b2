package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
// Es el único punto de confianza: quien pasa por acá queda autenticado.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
