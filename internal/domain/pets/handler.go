package pets

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-adoption-api/internal/platform/web"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta el módulo bajo /api/pets.
// Lectura pública; mutaciones solo admin (authn + admin vienen del router).
func RegisterRoutes(r chi.Router, svc *Service, authn, admin func(http.Handler) http.Handler) {
	r.Route("/api/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))

		pr.Group(func(ar chi.Router) {
			ar.Use(authn)
			ar.Use(admin)

			ar.Post("/", createPetHandler(svc))
			ar.Put("/{petID}", updatePetHandler(svc))
			ar.Delete("/{petID}", deletePetHandler(svc))
			ar.Patch("/{petID}/status", setStatusHandler(svc))
		})
	})
}

type createPetRequest struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Breed       string `json:"breed"`
	Age         *int   `json:"age"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl"`
}

type updatePetRequest struct {
	// Punteros para update parcial: nil = no tocar.
	Name        *string `json:"name"`
	Species     *string `json:"species"`
	Breed       *string `json:"breed"`
	Age         *int    `json:"age"`
	Description *string `json:"description"`
	PhotoURL    *string `json:"photoUrl"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type petResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed"`
	Age         int       `json:"age"`
	Description string    `json:"description"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type paginationResponse struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// listPetsHandler godoc
// @Summary  Listar mascotas (público, paginado de a 20)
// @Tags     pets
// @Param    search   query  string  false  "match parcial sobre name o breed"
// @Param    species  query  string  false  "filtro exacto"
// @Param    breed    query  string  false  "filtro exacto"
// @Param    age      query  int     false  "filtro exacto"
// @Param    page     query  int     false  "1-based"
// @Success  200  {object}  map[string]any
// @Router   /api/pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		f := Filter{
			Search:  strings.TrimSpace(q.Get("search")),
			Species: strings.TrimSpace(q.Get("species")),
			Breed:   strings.TrimSpace(q.Get("breed")),
		}
		if raw := strings.TrimSpace(q.Get("age")); raw != "" {
			age, err := strconv.Atoi(raw)
			if err != nil {
				web.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "age must be a number")
				return
			}
			f.Age = &age
		}

		page := 1
		if raw := strings.TrimSpace(q.Get("page")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				web.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "page must be a positive number")
				return
			}
			page = n
		}

		items, total, err := svc.Find(r.Context(), f, page)
		if err != nil {
			web.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Server error while fetching pets")
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		web.Data(w, http.StatusOK, map[string]any{
			"pets": out,
			"pagination": paginationResponse{
				Page:  page,
				Limit: PageLimit,
				Total: total,
				Pages: int(math.Ceil(float64(total) / float64(PageLimit))),
			},
		})
	}
}

// getPetHandler godoc
// @Summary  Perfil de una mascota (público)
// @Tags     pets
// @Param    petID  path  string  true  "pet id"
// @Success  200  {object}  map[string]any
// @Router   /api/pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writePetError(w, err)
			return
		}
		web.Data(w, http.StatusOK, map[string]any{"pet": toPetResponse(p)})
	}
}

// createPetHandler godoc
// @Summary  Alta de mascota (admin)
// @Tags     pets
// @Security BearerAuth
// @Success  201  {object}  map[string]any
// @Router   /api/pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := decodeStrict(r, &req); err != nil {
			web.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
			return
		}

		in := CreateInput{
			Name:        req.Name,
			Species:     req.Species,
			Breed:       req.Breed,
			Description: req.Description,
			PhotoURL:    req.PhotoURL,
		}
		if req.Age == nil {
			web.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "age is required")
			return
		}
		in.Age = *req.Age

		p, err := svc.Create(r.Context(), in)
		if err != nil {
			writePetError(w, err)
			return
		}

		web.Data(w, http.StatusCreated, map[string]any{"pet": toPetResponse(p)})
	}
}

// updatePetHandler godoc
// @Summary  Actualización parcial de mascota (admin)
// @Tags     pets
// @Security BearerAuth
// @Param    petID  path  string  true  "pet id"
// @Success  200  {object}  map[string]any
// @Router   /api/pets/{petID} [put]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePetRequest
		if err := decodeStrict(r, &req); err != nil {
			web.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), UpdateInput{
			Name:        req.Name,
			Species:     req.Species,
			Breed:       req.Breed,
			Age:         req.Age,
			Description: req.Description,
			PhotoURL:    req.PhotoURL,
		})
		if err != nil {
			writePetError(w, err)
			return
		}

		web.Data(w, http.StatusOK, map[string]any{"pet": toPetResponse(p)})
	}
}

// deletePetHandler godoc
// @Summary  Baja de mascota sin solicitudes (admin)
// @Tags     pets
// @Security BearerAuth
// @Param    petID  path  string  true  "pet id"
// @Success  200  {object}  map[string]any
// @Router   /api/pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID")); err != nil {
			writePetError(w, err)
			return
		}
		web.Data(w, http.StatusOK, map[string]any{"message": "Pet deleted successfully"})
	}
}

// setStatusHandler godoc
// @Summary  Cambio directo de estado (admin)
// @Tags     pets
// @Security BearerAuth
// @Param    petID  path  string  true  "pet id"
// @Success  200  {object}  map[string]any
// @Router   /api/pets/{petID}/status [patch]
func setStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setStatusRequest
		if err := decodeStrict(r, &req); err != nil {
			web.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
			return
		}

		p, err := svc.SetStatus(r.Context(), chi.URLParam(r, "petID"), Status(req.Status))
		if err != nil {
			writePetError(w, err)
			return
		}

		web.Data(w, http.StatusOK, map[string]any{"pet": toPetResponse(p)})
	}
}

func writePetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		web.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "name, species, breed and description are required; age must be >= 0")
	case errors.Is(err, ErrInvalidStatus):
		web.Error(w, http.StatusBadRequest, "INVALID_STATUS", "Status must be available, pending, or adopted")
	case errors.Is(err, ErrNotFound):
		web.Error(w, http.StatusNotFound, "PET_NOT_FOUND", "Pet not found")
	case errors.Is(err, ErrHasApplications):
		web.Error(w, http.StatusBadRequest, "HAS_APPLICATIONS", "Cannot delete pet with existing applications")
	default:
		web.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Server error")
	}
}

// decodeStrict rechaza campos desconocidos antes de llegar al dominio.
func decodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		Age:         p.Age,
		Description: p.Description,
		PhotoURL:    p.PhotoURL,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
