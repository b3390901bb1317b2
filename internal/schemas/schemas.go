// Package schemas define los contratos de validación de entrada.
// Es el equivalente backend del paquete compartido que usa el frontend:
// las mismas reglas, en un solo lugar, para que no se desincronicen.
package schemas

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Teléfono brasileño: prefijo país +55/55 opcional, código de área de 2
// dígitos (con o sin paréntesis), prefijo de 4-5 dígitos y sufijo de 4,
// con separadores opcionales. Ej: "11 99999-9999", "+5581987730575".
var phoneRe = regexp.MustCompile(`^(\+55|55)?\s?(\(?[1-9]{2}\)?)?\s?(9?\d{4})[-.\s]?(\d{4})$`)

// Email: chequeo de forma, no de entregabilidad.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError es un error de validación atado a un campo concreto.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa todos los errores de campo de un payload.
// Nunca devolvemos un fallo genérico: el cliente necesita saber qué corregir.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// errOrNil evita devolver un *ValidationError no-nil envuelto en error nil.
func (e *ValidationError) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ValidPhone expone la regla de teléfono para quien la necesite suelta.
func ValidPhone(s string) bool {
	return phoneRe.MatchString(strings.TrimSpace(s))
}

// ValidEmail expone la regla de email.
func ValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// AgeValue acepta edad como número JSON o como string numérico
// ("3" y 3 valen igual; el frontend manda ambos según el input).
type AgeValue struct {
	present bool
	raw     string
}

func (a *AgeValue) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	a.present = true
	a.raw = strings.TrimSpace(s)
	return nil
}

func (a AgeValue) MarshalJSON() ([]byte, error) {
	if !a.present {
		return []byte("null"), nil
	}
	if _, err := strconv.Atoi(a.raw); err != nil {
		// Un raw no numérico (payload inválido) se re-serializa como string.
		return json.Marshal(a.raw)
	}
	return []byte(a.raw), nil
}

// Present indica si el campo vino en el payload.
func (a AgeValue) Present() bool { return a.present }

// Int devuelve la edad parseada. Solo es confiable después de validar.
func (a AgeValue) Int() int {
	n, err := strconv.Atoi(a.raw)
	if err != nil {
		return 0
	}
	return n
}

// NewAge construye un AgeValue ya presente (útil en tests y clientes Go).
func NewAge(n int) AgeValue {
	return AgeValue{present: true, raw: strconv.Itoa(n)}
}

func (a AgeValue) check(field string, v *ValidationError) {
	n, err := strconv.Atoi(a.raw)
	if err != nil {
		v.add(field, "age must be an integer")
		return
	}
	if n < 0 {
		v.add(field, "age must be a positive integer")
	}
}

// RegisterPayload es el body de POST /auth/register.
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Contact  string `json:"contact"`
}

func (p RegisterPayload) Validate() error {
	v := &ValidationError{}
	if len(strings.TrimSpace(p.Name)) < 2 {
		v.add("name", "name must be at least 2 characters")
	}
	if !ValidEmail(p.Email) {
		v.add("email", "invalid email address")
	}
	if len(p.Password) < 6 {
		v.add("password", "password must be at least 6 characters")
	}
	if !ValidPhone(p.Contact) {
		v.add("contact", "contact must be in valid Brazilian format (e.g. 11 99999-9999)")
	}
	return v.errOrNil()
}

// LoginPayload es el body de POST /auth/login.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p LoginPayload) Validate() error {
	v := &ValidationError{}
	if !ValidEmail(p.Email) {
		v.add("email", "invalid email address")
	}
	if len(p.Password) < 6 {
		v.add("password", "password must be at least 6 characters")
	}
	return v.errOrNil()
}

// CreateAnimalPayload es el body de POST /animals.
// ownerId NO está acá a propósito: lo fija el backend con el usuario
// autenticado, nunca el cliente.
type CreateAnimalPayload struct {
	Name         string   `json:"name"`
	Age          AgeValue `json:"age"`
	Type         string   `json:"type"`
	Breed        string   `json:"breed"`
	OwnerName    string   `json:"ownerName"`
	OwnerContact string   `json:"ownerContact"`
}

func (p CreateAnimalPayload) Validate() error {
	v := &ValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		v.add("name", "name is required")
	}
	if !p.Age.Present() {
		v.add("age", "age is required")
	} else {
		p.Age.check("age", v)
	}
	checkAnimalType(p.Type, v)
	if strings.TrimSpace(p.Breed) == "" {
		v.add("breed", "breed is required")
	}
	if strings.TrimSpace(p.OwnerName) == "" {
		v.add("ownerName", "owner name is required")
	}
	if !ValidPhone(p.OwnerContact) {
		v.add("ownerContact", "owner contact must be in valid Brazilian format (e.g. 11 99999-9999)")
	}
	return v.errOrNil()
}

// UpdateAnimalPayload es CreateAnimalPayload con todo opcional (PATCH real:
// nil = no tocar). Solo se valida lo que vino.
type UpdateAnimalPayload struct {
	Name         *string   `json:"name"`
	Age          *AgeValue `json:"age"`
	Type         *string   `json:"type"`
	Breed        *string   `json:"breed"`
	OwnerName    *string   `json:"ownerName"`
	OwnerContact *string   `json:"ownerContact"`
}

func (p UpdateAnimalPayload) Validate() error {
	v := &ValidationError{}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		v.add("name", "name is required")
	}
	if p.Age != nil && p.Age.Present() {
		p.Age.check("age", v)
	}
	if p.Type != nil {
		checkAnimalType(*p.Type, v)
	}
	if p.Breed != nil && strings.TrimSpace(*p.Breed) == "" {
		v.add("breed", "breed is required")
	}
	if p.OwnerName != nil && strings.TrimSpace(*p.OwnerName) == "" {
		v.add("ownerName", "owner name is required")
	}
	if p.OwnerContact != nil && !ValidPhone(*p.OwnerContact) {
		v.add("ownerContact", "owner contact must be in valid Brazilian format (e.g. 11 99999-9999)")
	}
	return v.errOrNil()
}

func checkAnimalType(t string, v *ValidationError) {
	switch t {
	case "DOG", "CAT":
	default:
		v.add("type", "type must be one of: DOG, CAT")
	}
}
