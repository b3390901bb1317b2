package main

import (
	"net/http"
	"os"
	"time"

	"pet-shop-api/internal/platform/logger"
	"pet-shop-api/internal/platform/token"
	"pet-shop-api/internal/router"
)

func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	ttl := token.DefaultTTL
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		} else {
			log.Warn("invalid TOKEN_TTL, using default", map[string]any{"value": v})
		}
	}

	var tokens *token.Manager
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		m, err := token.NewManager(secret, ttl)
		if err != nil {
			log.Error("token manager init failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		tokens = m
	} else {
		// Solo para desarrollo local: identidad por X-Debug-User-ID.
		log.Warn("JWT_SECRET not set, running in dev mode without token auth", nil)
	}

	r := router.NewRouter(router.Options{
		Tokens: tokens,
		Log:    log,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
