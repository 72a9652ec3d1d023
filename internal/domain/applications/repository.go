package applications

import "context"

// Repository persiste solicitudes. Las implementaciones devuelven los
// sentinels del dominio: ErrNotFound para ids desconocidos y ErrDuplicate
// cuando Create viola la unicidad (user_id, pet_id). Esa unicidad tiene que
// ser atómica en el storage (índice único / insert bajo lock), no un
// check-then-write en memoria: dos apply concurrentes no pueden entrar ambos.
type Repository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	Update(ctx context.Context, a Application) error

	// Listados más recientes primero.
	ListByUser(ctx context.Context, userID string) ([]Application, error)
	ListAll(ctx context.Context, status Status) ([]Application, error) // status vacío = sin filtro

	CountByPet(ctx context.Context, petID string) (int, error)
}
