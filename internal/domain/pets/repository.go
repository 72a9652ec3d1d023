package pets

import "context"

// Filter acota el listado público de mascotas.
type Filter struct {
	Search  string // match parcial case-insensitive sobre name o breed
	Species string
	Breed   string
	Age     *int
}

// Page es 1-based; Limit lo fija el servicio.
type Page struct {
	Number int
	Limit  int
}

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error

	// Find devuelve la página pedida (más recientes primero) y el total
	// de registros que matchean el filtro.
	Find(ctx context.Context, f Filter, pg Page) ([]Pet, int, error)
}
