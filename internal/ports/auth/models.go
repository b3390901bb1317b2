package auth

// Claims representa la identidad extraída del token.
// Aguas abajo se confía en UserID tal cual; nadie re-valida credenciales.
type Claims struct {
	UserID string
	Email  string
}
