package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-api/internal/domain/applications"
)

type applicationRepo struct {
	mu     sync.RWMutex
	byID   map[string]applications.Application
	byPair map[string]string // "userID|petID" -> application id
}

func NewApplicationRepo() applications.Repository {
	return &applicationRepo{
		byID:   make(map[string]applications.Application),
		byPair: make(map[string]string),
	}
}

// Create chequea e inserta bajo el mismo lock: equivalente in-memory del
// índice único (user_id, pet_id).
func (r *applicationRepo) Create(ctx context.Context, a applications.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("application id required")
	}
	key := pairKey(a.UserID, a.PetID)
	if _, exists := r.byPair[key]; exists {
		return applications.ErrDuplicate
	}

	r.byID[a.ID] = a
	r.byPair[key] = a.ID
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return applications.Application{}, applications.ErrNotFound
	}
	return a, nil
}

func (r *applicationRepo) Update(ctx context.Context, a applications.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return applications.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *applicationRepo) ListByUser(ctx context.Context, userID string) ([]applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]applications.Application, 0)
	for _, a := range r.byID {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *applicationRepo) ListAll(ctx context.Context, status applications.Status) ([]applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]applications.Application, 0)
	for _, a := range r.byID {
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, a)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *applicationRepo) CountByPet(ctx context.Context, petID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, a := range r.byID {
		if a.PetID == petID {
			n++
		}
	}
	return n, nil
}

func sortNewestFirst(items []applications.Application) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
}

func pairKey(userID, petID string) string {
	return userID + "|" + petID
}
