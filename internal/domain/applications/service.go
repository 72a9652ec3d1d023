package applications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption-api/internal/domain/pets"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrMissingPetID     = errors.New("pet id required")
	ErrPetNotAvailable  = errors.New("pet not available")
	ErrDuplicate        = errors.New("duplicate application")
	ErrNotFound         = errors.New("application not found")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrAlreadyProcessed = errors.New("application already processed")
)

// PetRegistry es lo que el workflow necesita del módulo pets.
// Lo satisface *pets.Service; se inyecta explícito desde el router.
type PetRegistry interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
	SetStatus(ctx context.Context, id string, status pets.Status) (pets.Pet, error)
}

type Service struct {
	repo Repository
	pets PetRegistry
	now  func() time.Time
}

func NewService(repo Repository, registry PetRegistry) *Service {
	return &Service{
		repo: repo,
		pets: registry,
		now:  time.Now,
	}
}

// Create registra una solicitud pending para (userID, petID).
// No hay pre-check de duplicado: la unicidad la garantiza el storage y
// acá solo traducimos la violación a ErrDuplicate, así dos apply
// concurrentes nunca entran ambos.
func (s *Service) Create(ctx context.Context, userID, petID string) (Application, error) {
	userID = strings.TrimSpace(userID)
	petID = strings.TrimSpace(petID)

	if userID == "" {
		return Application{}, ErrInvalidInput
	}
	if petID == "" {
		return Application{}, ErrMissingPetID
	}

	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return Application{}, err
	}
	if p.Status != pets.StatusAvailable {
		return Application{}, ErrPetNotAvailable
	}

	now := s.now()
	a := Application{
		ID:        uuid.NewString(),
		UserID:    userID,
		PetID:     petID,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Application{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]Application, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

// ListAll devuelve todas las solicitudes, opcionalmente filtradas por status.
// Un status que no existe simplemente no matchea nada.
func (s *Service) ListAll(ctx context.Context, status Status) ([]Application, error) {
	return s.repo.ListAll(ctx, status)
}

// TransitionStatus resuelve una solicitud pending: approved o rejected, una
// sola vez. Al aprobar, marca la mascota como adopted sin mirar su estado
// actual (last-writer-wins).
//
// Los dos writes no son una transacción: si la mascota ya no existe, la
// aprobación queda igual; cualquier otra falla del write de la mascota se
// devuelve al caller con la solicitud ya aprobada (ventana de consistencia
// eventual asumida; no hay compensación automática).
func (s *Service) TransitionStatus(ctx context.Context, id string, newStatus Status) (Application, error) {
	if newStatus != StatusApproved && newStatus != StatusRejected {
		return Application{}, ErrInvalidStatus
	}

	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Application{}, err
	}
	if a.Status != StatusPending {
		return Application{}, ErrAlreadyProcessed
	}

	a.Status = newStatus
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Application{}, err
	}

	if newStatus == StatusApproved {
		if _, err := s.pets.SetStatus(ctx, a.PetID, pets.StatusAdopted); err != nil {
			if !errors.Is(err, pets.ErrNotFound) {
				return a, fmt.Errorf("application approved but pet update failed: %w", err)
			}
		}
	}

	return a, nil
}
