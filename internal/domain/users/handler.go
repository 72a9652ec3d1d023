package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"pet-adoption-api/internal/middleware"
	"pet-adoption-api/internal/platform/web"
	"pet-adoption-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta registro/login/me bajo /api/auth.
func RegisterRoutes(r chi.Router, svc *Service, issuer auth.TokenIssuer, authn func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc, issuer))
		ar.Post("/login", loginHandler(svc, issuer))

		ar.Group(func(pr chi.Router) {
			pr.Use(authn)
			pr.Get("/me", meHandler(svc))
		})
	})
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// registerHandler godoc
// @Summary  Alta de cuenta; devuelve token + user
// @Tags     auth
// @Success  201  {object}  map[string]any
// @Router   /api/auth/register [post]
func registerHandler(svc *Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			web.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
		})
		if err != nil {
			writeUserError(w, err)
			return
		}

		token, err := issuer.Issue(r.Context(), auth.Claims{UserID: u.ID, Role: auth.Role(u.Role)})
		if err != nil {
			web.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Server error during registration")
			return
		}

		web.Data(w, http.StatusCreated, map[string]any{
			"token": token,
			"user":  toUserResponse(u),
		})
	}
}

// loginHandler godoc
// @Summary  Login; devuelve token + user
// @Tags     auth
// @Success  200  {object}  map[string]any
// @Router   /api/auth/login [post]
func loginHandler(svc *Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			web.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
			return
		}

		u, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeUserError(w, err)
			return
		}

		token, err := issuer.Issue(r.Context(), auth.Claims{UserID: u.ID, Role: auth.Role(u.Role)})
		if err != nil {
			web.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Server error during login")
			return
		}

		web.Data(w, http.StatusOK, map[string]any{
			"token": token,
			"user":  toUserResponse(u),
		})
	}
}

// meHandler godoc
// @Summary  Cuenta del caller
// @Tags     auth
// @Security BearerAuth
// @Success  200  {object}  map[string]any
// @Router   /api/auth/me [get]
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			web.Error(w, http.StatusUnauthorized, "NOT_AUTHENTICATED", "Authentication required")
			return
		}

		u, err := svc.GetByID(r.Context(), claims.UserID)
		if err != nil {
			writeUserError(w, err)
			return
		}

		web.Data(w, http.StatusOK, map[string]any{"user": toUserResponse(u)})
	}
}

func writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		web.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "email, password (6+ chars) and name are required")
	case errors.Is(err, ErrEmailTaken):
		web.Error(w, http.StatusConflict, "USER_EXISTS", "User with this email already exists")
	case errors.Is(err, ErrMissingCredentials):
		web.Error(w, http.StatusBadRequest, "MISSING_CREDENTIALS", "Email and password are required")
	case errors.Is(err, ErrInvalidCredentials):
		web.Error(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
	case errors.Is(err, ErrNotFound):
		web.Error(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	default:
		web.Error(w, http.StatusInternalServerError, "SERVER_ERROR", "Server error")
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
	}
}
