package postgres

import (
	"context"
	"database/sql"
)

// schema es idempotente; se aplica en el arranque.
// El índice único sobre (user_id, pet_id) es la garantía de que dos apply
// concurrentes del mismo usuario a la misma mascota no entran ambos.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'user',
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email);

CREATE TABLE IF NOT EXISTS pets (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	species     TEXT NOT NULL,
	breed       TEXT NOT NULL,
	age         INTEGER NOT NULL CHECK (age >= 0),
	description TEXT NOT NULL,
	photo_url   TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'available',
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS pets_status_idx ON pets (status);
CREATE INDEX IF NOT EXISTS pets_species_idx ON pets (species);
CREATE INDEX IF NOT EXISTS pets_breed_idx ON pets (breed);
CREATE INDEX IF NOT EXISTS pets_created_at_idx ON pets (created_at DESC);

CREATE TABLE IF NOT EXISTS applications (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users (id),
	pet_id     TEXT NOT NULL REFERENCES pets (id),
	status     TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS applications_user_pet_key ON applications (user_id, pet_id);
CREATE INDEX IF NOT EXISTS applications_user_idx ON applications (user_id);
CREATE INDEX IF NOT EXISTS applications_pet_idx ON applications (pet_id);
CREATE INDEX IF NOT EXISTS applications_status_idx ON applications (status);
`

// EnsureSchema crea tablas e índices si no existen.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
