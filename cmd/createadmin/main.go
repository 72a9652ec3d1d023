// createadmin crea (o promueve) la cuenta admin contra la base configurada.
// Env: DB_DSN obligatorio; ADMIN_EMAIL / ADMIN_PASSWORD / ADMIN_NAME opcionales.
package main

import (
	"context"
	"os"
	"time"

	pg "pet-adoption-api/internal/adapters/storage/postgres"
	"pet-adoption-api/internal/domain/users"
	"pet-adoption-api/internal/platform/logger"
)

func main() {
	log := logger.NewFromEnv()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Error("DB_DSN is required", nil)
		os.Exit(1)
	}

	email := envOr("ADMIN_EMAIL", "admin@petadoption.com")
	password := envOr("ADMIN_PASSWORD", "Admin123")
	name := envOr("ADMIN_NAME", "Admin User")

	db, err := pg.Open(dsn)
	if err != nil {
		log.Error("postgres open failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := pg.EnsureSchema(ctx, db); err != nil {
		log.Error("schema bootstrap failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	svc := users.NewService(pg.NewUsersRepo(db))

	u, created, err := svc.EnsureAdmin(ctx, email, password, name)
	if err != nil {
		log.Error("ensure admin failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	if created {
		log.Info("admin user created", map[string]any{"email": u.Email})
	} else {
		log.Info("admin user already present", map[string]any{"email": u.Email, "role": string(u.Role)})
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
