package router

import (
	"database/sql"
	"net/http"
	"os"

	"pet-shop-api/internal/adapters/auth/jwtauth"
	mem "pet-shop-api/internal/adapters/storage/memory"
	pg "pet-shop-api/internal/adapters/storage/postgres"
	"pet-shop-api/internal/domain/animals"
	"pet-shop-api/internal/domain/users"
	"pet-shop-api/internal/middleware"
	"pet-shop-api/internal/platform/logger"
	"pet-shop-api/internal/platform/token"
	"pet-shop-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Options struct {
	// Tokens emite y verifica los tokens de identidad.
	// nil = modo dev: sin /auth real, identidad por header X-Debug-User-ID.
	Tokens *token.Manager

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	// El frontend corre en otro origen; sin esto el browser no pasa.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	var verifier auth.AuthVerifier
	if opts.Tokens != nil {
		verifier = jwtauth.NewVerifier(opts.Tokens)
	}
	r.Use(middleware.AuthContext(verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to in-memory", map[string]any{"err": err.Error()})
			}
		}
	}

	var (
		userRepo   users.Repository
		animalRepo animals.Repository
	)
	if db != nil {
		userRepo = pg.NewUsersRepo(db)
		animalRepo = pg.NewAnimalsRepo(db)
	} else {
		userRepo = mem.NewUserRepo()
		animalRepo = mem.NewAnimalRepo()
	}

	usersSvc := users.NewService(userRepo)
	animalsSvc := animals.NewService(animalRepo)

	var issuer users.TokenIssuer = opts.Tokens
	if opts.Tokens == nil {
		// En modo dev nadie verifica el token, el valor solo rellena la respuesta.
		issuer = devIssuer{}
	}

	users.RegisterRoutes(r, usersSvc, issuer)
	animals.RegisterRoutes(r, animalsSvc)

	return r
}

type devIssuer struct{}

func (devIssuer) Issue(userID, _ string) (string, error) {
	return "dev-token:" + userID, nil
}
