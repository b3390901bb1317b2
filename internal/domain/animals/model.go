package animals

import "time"

// AnimalType es la enumeración cerrada de tipos soportados.
// @Enum DOG, CAT
type AnimalType string

const (
	TypeDog AnimalType = "DOG"
	TypeCat AnimalType = "CAT"
)

func ValidType(t string) bool {
	switch AnimalType(t) {
	case TypeDog, TypeCat:
		return true
	}
	return false
}

// Animal es un registro de mascota del pet shop.
//
// OwnerID se fija al crear y es inmutable: ninguna operación lo reasigna.
// OwnerName/OwnerContact son copias desnormalizadas tomadas del payload al
// crear; no se re-sincronizan contra la cuenta viva.
type Animal struct {
	ID      string
	OwnerID string

	Name  string
	Age   int
	Type  AnimalType
	Breed string

	OwnerName    string
	OwnerContact string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stats es el agregado de solo-lectura de la colección completa.
// Cada tipo declarado aparece siempre, aunque valga 0.
type Stats struct {
	Total  int     `json:"total"`
	Dogs   int     `json:"dogs"`
	Cats   int     `json:"cats"`
	AvgAge float64 `json:"avgAge"`
}
