package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("pet not found")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrHasApplications = errors.New("pet has applications")
)

// PageLimit es fijo: el listado público siempre pagina de a 20.
const PageLimit = 20

// ApplicationCounter lo implementa el repo de applications; evita que
// pets importe ese módulo solo para chequear dependientes al borrar.
type ApplicationCounter interface {
	CountByPet(ctx context.Context, petID string) (int, error)
}

type Service struct {
	repo Repository
	apps ApplicationCounter
	now  func() time.Time
}

func NewService(repo Repository, apps ApplicationCounter) *Service {
	return &Service{
		repo: repo,
		apps: apps,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	Species     string
	Breed       string
	Age         int
	Description string
	PhotoURL    string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	name := strings.TrimSpace(in.Name)
	species := strings.TrimSpace(in.Species)
	breed := strings.TrimSpace(in.Breed)
	description := strings.TrimSpace(in.Description)

	if name == "" || species == "" || breed == "" || description == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		Name:        name,
		Species:     species,
		Breed:       breed,
		Age:         in.Age,
		Description: description,
		PhotoURL:    strings.TrimSpace(in.PhotoURL),
		Status:      StatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

type UpdateInput struct {
	// Punteros para update parcial: nil = no tocar.
	Name        *string
	Species     *string
	Breed       *string
	Age         *int
	Description *string
	PhotoURL    *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = v
	}
	if in.Species != nil {
		v := strings.TrimSpace(*in.Species)
		if v == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Species = v
	}
	if in.Breed != nil {
		v := strings.TrimSpace(*in.Breed)
		if v == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Breed = v
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Age = *in.Age
	}
	if in.Description != nil {
		v := strings.TrimSpace(*in.Description)
		if v == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Description = v
	}
	if in.PhotoURL != nil {
		// photoUrl es opcional: string vacío lo limpia.
		p.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// SetStatus escribe el estado sin mirar el valor anterior (last-writer-wins).
// Lo usan tanto el admin como el workflow de adopción al aprobar.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) (Pet, error) {
	if !ValidStatus(status) {
		return Pet{}, ErrInvalidStatus
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	p.Status = status
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	n, err := s.apps.CountByPet(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrHasApplications
	}

	return s.repo.Delete(ctx, id)
}

// Find devuelve la página pedida y el total de matches.
func (s *Service) Find(ctx context.Context, f Filter, page int) ([]Pet, int, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.Find(ctx, f, Page{Number: page, Limit: PageLimit})
}
