package applications

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption-api/internal/domain/pets"
	"pet-adoption-api/internal/domain/users"
	"pet-adoption-api/internal/middleware"
	"pet-adoption-api/internal/platform/web"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta el módulo bajo /api/applications. Todo requiere auth;
// listado global y transición de estado son solo admin. El listado "my" sale
// siempre de las claims del caller, nunca de un parámetro.
func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service, usersSvc *users.Service, authn, admin func(http.Handler) http.Handler) {
	r.Route("/api/applications", func(ar chi.Router) {
		ar.Use(authn)

		ar.Post("/", createApplicationHandler(svc, petsSvc, usersSvc))
		ar.Get("/my", myApplicationsHandler(svc, petsSvc))

		ar.Group(func(adm chi.Router) {
			adm.Use(admin)

			adm.Get("/", listApplicationsHandler(svc, petsSvc, usersSvc))
			adm.Patch("/{applicationID}/status", transitionStatusHandler(svc, petsSvc, usersSvc))
		})
	})
}

type createApplicationRequest struct {
	PetID string `json:"petId"`
}

type transitionRequest struct {
	Status string `json:"status"`
}

type applicationResponse struct {
	ID        string       `json:"id"`
	Status    string       `json:"status"`
	Pet       *petSummary  `json:"pet"`
	User      *userSummary `json:"user,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type petSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Species     string `json:"species"`
	Breed       string `json:"breed"`
	Age         int    `json:"age"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	Status      string `json:"status"`
}

type userSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// createApplicationHandler godoc
// @Summary  Solicitar adopción de una mascota disponible
// @Tags     applications
// @Security BearerAuth
// @Success  201  {object}  map[string]any
// @Router   /api/applications [post]
func createApplicationHandler(svc *Service, petsSvc *pets.Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			web.Error(w, http.StatusUnauthorized, "NOT_AUTHENTICATED", "Authentication required")
			return
		}

		var req createApplicationRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			web.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
			return
		}

		a, err := svc.Create(r.Context(), claims.UserID, req.PetID)
		if err != nil {
			writeApplicationError(w, err)
			return
		}

		web.Data(w, http.StatusCreated, map[string]any{
			"application": populate(r, a, petsSvc, usersSvc),
		})
	}
}

// myApplicationsHandler godoc
// @Summary  Solicitudes del caller, más recientes primero
// @Tags     applications
// @Security BearerAuth
// @Success  200  {object}  map[string]any
// @Router   /api/applications/my [get]
func myApplicationsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			web.Error(w, http.StatusUnauthorized, "NOT_AUTHENTICATED", "Authentication required")
			return
		}

		items, err := svc.ListForUser(r.Context(), claims.UserID)
		if err != nil {
			web.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Server error while fetching applications")
			return
		}

		out := make([]applicationResponse, 0, len(items))
		for _, a := range items {
			out = append(out, populate(r, a, petsSvc, nil))
		}

		web.Data(w, http.StatusOK, map[string]any{"applications": out})
	}
}

// listApplicationsHandler godoc
// @Summary  Todas las solicitudes, filtro opcional por status (admin)
// @Tags     applications
// @Security BearerAuth
// @Param    status  query  string  false  "pending|approved|rejected"
// @Success  200  {object}  map[string]any
// @Router   /api/applications [get]
func listApplicationsHandler(svc *Service, petsSvc *pets.Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := Status(strings.TrimSpace(r.URL.Query().Get("status")))

		items, err := svc.ListAll(r.Context(), status)
		if err != nil {
			web.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Server error while fetching applications")
			return
		}

		out := make([]applicationResponse, 0, len(items))
		for _, a := range items {
			out = append(out, populate(r, a, petsSvc, usersSvc))
		}

		web.Data(w, http.StatusOK, map[string]any{"applications": out})
	}
}

// transitionStatusHandler godoc
// @Summary  Aprobar o rechazar una solicitud pending (admin)
// @Tags     applications
// @Security BearerAuth
// @Param    applicationID  path  string  true  "application id"
// @Success  200  {object}  map[string]any
// @Router   /api/applications/{applicationID}/status [patch]
func transitionStatusHandler(svc *Service, petsSvc *pets.Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req transitionRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			web.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
			return
		}

		a, err := svc.TransitionStatus(r.Context(), chi.URLParam(r, "applicationID"), Status(req.Status))
		if err != nil {
			writeApplicationError(w, err)
			return
		}

		web.Data(w, http.StatusOK, map[string]any{
			"application": populate(r, a, petsSvc, usersSvc),
		})
	}
}

func writeApplicationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingPetID):
		web.Error(w, http.StatusBadRequest, "MISSING_PET_ID", "Pet ID is required")
	case errors.Is(err, pets.ErrNotFound):
		web.Error(w, http.StatusNotFound, "PET_NOT_FOUND", "Pet not found")
	case errors.Is(err, ErrPetNotAvailable):
		web.Error(w, http.StatusBadRequest, "PET_NOT_AVAILABLE", "Pet is not available for adoption")
	case errors.Is(err, ErrDuplicate):
		web.Error(w, http.StatusConflict, "DUPLICATE_APPLICATION", "You have already applied for this pet")
	case errors.Is(err, ErrInvalidStatus):
		web.Error(w, http.StatusBadRequest, "INVALID_STATUS", "Status must be approved or rejected")
	case errors.Is(err, ErrNotFound):
		web.Error(w, http.StatusNotFound, "APPLICATION_NOT_FOUND", "Application not found")
	case errors.Is(err, ErrAlreadyProcessed):
		web.Error(w, http.StatusBadRequest, "ALREADY_PROCESSED", "Application has already been processed")
	default:
		web.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Server error while processing application")
	}
}

// populate arma la respuesta con pet y user embebidos, best-effort: una
// referencia que ya no resuelve queda en null (igual que un populate de
// documento borrado). usersSvc nil = vista del propio usuario, sin user.
func populate(r *http.Request, a Application, petsSvc *pets.Service, usersSvc *users.Service) applicationResponse {
	out := applicationResponse{
		ID:        a.ID,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	if p, err := petsSvc.GetByID(r.Context(), a.PetID); err == nil {
		out.Pet = &petSummary{
			ID:          p.ID,
			Name:        p.Name,
			Species:     p.Species,
			Breed:       p.Breed,
			Age:         p.Age,
			Description: p.Description,
			PhotoURL:    p.PhotoURL,
			Status:      string(p.Status),
		}
	}

	if usersSvc != nil {
		if u, err := usersSvc.GetByID(r.Context(), a.UserID); err == nil {
			out.User = &userSummary{
				ID:    u.ID,
				Email: u.Email,
				Name:  u.Name,
				Role:  string(u.Role),
			}
		}
	}

	return out
}
