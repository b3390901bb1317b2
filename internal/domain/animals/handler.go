package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-shop-api/internal/middleware"
	"pet-shop-api/internal/schemas"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals", func(ar chi.Router) {
		// Bearer obligatorio en todo el subárbol: sin claims => 401.
		ar.Use(middleware.RequireAuth)

		ar.Get("/", listAnimalsHandler(svc))
		ar.Post("/", createAnimalHandler(svc))

		// /stats antes que /{animalID}: chi prioriza segmentos estáticos,
		// pero dejarlo explícito no cuesta nada.
		ar.Get("/stats", statsHandler(svc))

		ar.Get("/{animalID}", getAnimalHandler(svc))
		ar.Patch("/{animalID}", updateAnimalHandler(svc))
		ar.Delete("/{animalID}", deleteAnimalHandler(svc))
	})
}

type animalResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Type         string    `json:"type"`
	Breed        string    `json:"breed"`
	OwnerID      string    `json:"ownerId"`
	OwnerName    string    `json:"ownerName"`
	OwnerContact string    `json:"ownerContact"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req schemas.CreateAnimalPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := req.Validate(); err != nil {
			writeValidationError(w, err)
			return
		}

		a, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:         req.Name,
			Age:          req.Age.Int(),
			Type:         req.Type,
			Breed:        req.Breed,
			OwnerName:    req.OwnerName,
			OwnerContact: req.OwnerContact,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Stats(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req schemas.UpdateAnimalPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := req.Validate(); err != nil {
			writeValidationError(w, err)
			return
		}

		var age *int
		if req.Age != nil && req.Age.Present() {
			n := req.Age.Int()
			age = &n
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "animalID"), claims.UserID, UpdateInput{
			Name:         req.Name,
			Age:          age,
			Type:         req.Type,
			Breed:        req.Breed,
			OwnerName:    req.OwnerName,
			OwnerContact: req.OwnerContact,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func deleteAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		a, err := svc.Delete(r.Context(), chi.URLParam(r, "animalID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:           a.ID,
		Name:         a.Name,
		Age:          a.Age,
		Type:         string(a.Type),
		Breed:        a.Breed,
		OwnerID:      a.OwnerID,
		OwnerName:    a.OwnerName,
		OwnerContact: a.OwnerContact,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// writeServiceError mapea errores del service a status HTTP.
// Nada inesperado filtra detalle interno: 500 genérico.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "animal not found")
	case errors.Is(err, ErrForbidden):
		writeError(w, http.StatusForbidden, "you can only modify animals that you own")
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeValidationError(w http.ResponseWriter, err error) {
	var ve *schemas.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, ve)
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON está duplicado a propósito en users y animals; todavía no
// amerita un paquete helper compartido.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
