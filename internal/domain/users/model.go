package users

import "time"

// Role existe para extensibilidad (ADMIN reservado); hoy nadie la consulta
// para autorizar, la política de animals es solo por ownership.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Account es un usuario registrado (el dueño potencial de animales).
// PasswordHash guarda el hash bcrypt; el plaintext no se persiste nunca.
type Account struct {
	ID    string
	Name  string
	Email string // único, es el handle de login
	Role  Role

	PasswordHash []byte
	Contact      string

	CreatedAt time.Time
	UpdatedAt time.Time
}
