package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-adoption-api/internal/domain/users"
	"pet-adoption-api/internal/router"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

type testServer struct {
	*httptest.Server
	stores *router.Stores
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	stores := router.NewMemoryStores()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		JWTSecret: "test-secret",
		Stores:    stores,
	}))
	t.Cleanup(ts.Close)

	return &testServer{Server: ts, stores: stores}
}

func TestHTTP_AdoptionWorkflow_EndToEnd(t *testing.T) {
	ts := newTestServer(t)

	userToken := registerUser(t, ts, "ana@example.com", "secret1", "Ana")
	adminToken := makeAdmin(t, ts, "admin@example.com")

	// Alta de mascota: solo admin.
	{
		st, body := doReq(t, ts.URL, "POST", "/api/pets", userToken, petPayload("Milo"))
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 create pet as user, got %d body=%s", st, body)
		}
		if code := errorCode(t, body); code != "FORBIDDEN" {
			t.Fatalf("expected FORBIDDEN, got %s", code)
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/api/pets", "", petPayload("Milo"))
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d body=%s", st, body)
		}
		if code := errorCode(t, body); code != "NO_TOKEN" {
			t.Fatalf("expected NO_TOKEN, got %s", code)
		}
	}

	petID := createPet(t, ts, adminToken, petPayload("Milo"))

	// Cualquiera puede ver el catálogo sin token.
	{
		st, body := doReq(t, ts.URL, "GET", "/api/pets/"+petID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 public pet profile, got %d body=%s", st, body)
		}
	}

	// El usuario aplica.
	appID := ""
	{
		st, body := doReq(t, ts.URL, "POST", "/api/applications", userToken, map[string]any{"petId": petID})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 apply, got %d body=%s", st, body)
		}
		var data struct {
			Application struct {
				ID     string `json:"id"`
				Status string `json:"status"`
				Pet    *struct {
					ID string `json:"id"`
				} `json:"pet"`
			} `json:"application"`
		}
		decodeData(t, body, &data)
		if data.Application.Status != "pending" {
			t.Fatalf("expected pending application, got %s", data.Application.Status)
		}
		if data.Application.Pet == nil || data.Application.Pet.ID != petID {
			t.Fatalf("expected populated pet %s, got %+v", petID, data.Application.Pet)
		}
		appID = data.Application.ID
	}

	// Segundo apply del mismo usuario a la misma mascota: 409.
	{
		st, body := doReq(t, ts.URL, "POST", "/api/applications", userToken, map[string]any{"petId": petID})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate apply, got %d body=%s", st, body)
		}
		if code := errorCode(t, body); code != "DUPLICATE_APPLICATION" {
			t.Fatalf("expected DUPLICATE_APPLICATION, got %s", code)
		}
	}

	// /my siempre sale de las claims del caller.
	{
		st, body := doReq(t, ts.URL, "GET", "/api/applications/my", userToken, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 my applications, got %d body=%s", st, body)
		}
		var data struct {
			Applications []struct {
				ID string `json:"id"`
			} `json:"applications"`
		}
		decodeData(t, body, &data)
		if len(data.Applications) != 1 || data.Applications[0].ID != appID {
			t.Fatalf("expected only own application, got %+v", data.Applications)
		}
	}

	// El listado global es solo admin.
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/applications", userToken, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 listing as user, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/api/applications?status=pending", adminToken, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 admin listing, got %d body=%s", st, body)
		}
		var data struct {
			Applications []struct {
				ID   string `json:"id"`
				User *struct {
					Email string `json:"email"`
				} `json:"user"`
			} `json:"applications"`
		}
		decodeData(t, body, &data)
		if len(data.Applications) != 1 {
			t.Fatalf("expected 1 pending application, got %d", len(data.Applications))
		}
		if data.Applications[0].User == nil || data.Applications[0].User.Email != "ana@example.com" {
			t.Fatalf("expected populated user, got %+v", data.Applications[0].User)
		}
	}

	// Aprobación: la solicitud queda approved y la mascota adopted.
	{
		st, body := doReq(t, ts.URL, "PATCH", "/api/applications/"+appID+"/status", adminToken, map[string]any{"status": "approved"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 approve, got %d body=%s", st, body)
		}
		var data struct {
			Application struct {
				Status string `json:"status"`
				Pet    *struct {
					Status string `json:"status"`
				} `json:"pet"`
			} `json:"application"`
		}
		decodeData(t, body, &data)
		if data.Application.Status != "approved" {
			t.Fatalf("expected approved, got %s", data.Application.Status)
		}
		if data.Application.Pet == nil || data.Application.Pet.Status != "adopted" {
			t.Fatalf("expected pet adopted, got %+v", data.Application.Pet)
		}
	}

	// Segunda transición sobre la misma solicitud: 400 ALREADY_PROCESSED.
	{
		st, body := doReq(t, ts.URL, "PATCH", "/api/applications/"+appID+"/status", adminToken, map[string]any{"status": "rejected"})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 on second transition, got %d body=%s", st, body)
		}
		if code := errorCode(t, body); code != "ALREADY_PROCESSED" {
			t.Fatalf("expected ALREADY_PROCESSED, got %s", code)
		}
	}

	// Borrar una mascota con solicitudes: bloqueado.
	{
		st, body := doReq(t, ts.URL, "DELETE", "/api/pets/"+petID, adminToken, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 delete with applications, got %d body=%s", st, body)
		}
		if code := errorCode(t, body); code != "HAS_APPLICATIONS" {
			t.Fatalf("expected HAS_APPLICATIONS, got %s", code)
		}
	}

	// Sin solicitudes sí se puede borrar.
	{
		otherID := createPet(t, ts, adminToken, petPayload("Luna"))
		st, body := doReq(t, ts.URL, "DELETE", "/api/pets/"+otherID, adminToken, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete, got %d body=%s", st, body)
		}
		st, body = doReq(t, ts.URL, "GET", "/api/pets/"+otherID, "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d body=%s", st, body)
		}
		if code := errorCode(t, body); code != "PET_NOT_FOUND" {
			t.Fatalf("expected PET_NOT_FOUND, got %s", code)
		}
	}
}

func TestHTTP_Apply_UnavailableOrUnknownPet(t *testing.T) {
	ts := newTestServer(t)

	userToken := registerUser(t, ts, "ana@example.com", "secret1", "Ana")
	adminToken := makeAdmin(t, ts, "admin@example.com")

	petID := createPet(t, ts, adminToken, petPayload("Milo"))

	// Admin la marca pending a mano.
	{
		st, body := doReq(t, ts.URL, "PATCH", "/api/pets/"+petID+"/status", adminToken, map[string]any{"status": "pending"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 set status, got %d body=%s", st, body)
		}
	}

	{
		st, body := doReq(t, ts.URL, "POST", "/api/applications", userToken, map[string]any{"petId": petID})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 apply to pending pet, got %d body=%s", st, body)
		}
		if code := errorCode(t, body); code != "PET_NOT_AVAILABLE" {
			t.Fatalf("expected PET_NOT_AVAILABLE, got %s", code)
		}
	}

	{
		st, body := doReq(t, ts.URL, "POST", "/api/applications", userToken, map[string]any{"petId": "does-not-exist"})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown pet, got %d body=%s", st, body)
		}
		if code := errorCode(t, body); code != "PET_NOT_FOUND" {
			t.Fatalf("expected PET_NOT_FOUND, got %s", code)
		}
	}

	{
		st, body := doReq(t, ts.URL, "POST", "/api/applications", userToken, map[string]any{"petId": ""})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 missing pet id, got %d body=%s", st, body)
		}
		if code := errorCode(t, body); code != "MISSING_PET_ID" {
			t.Fatalf("expected MISSING_PET_ID, got %s", code)
		}
	}

	// Status inválido en la transición.
	{
		st, body := doReq(t, ts.URL, "PATCH", "/api/applications/whatever/status", adminToken, map[string]any{"status": "maybe"})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 invalid status, got %d body=%s", st, body)
		}
		if code := errorCode(t, body); code != "INVALID_STATUS" {
			t.Fatalf("expected INVALID_STATUS, got %s", code)
		}
	}
}

func TestHTTP_PetList_FiltersAndPagination(t *testing.T) {
	ts := newTestServer(t)
	adminToken := makeAdmin(t, ts, "admin@example.com")

	for i := 0; i < 25; i++ {
		p := petPayload(fmt.Sprintf("Dog %02d", i))
		createPet(t, ts, adminToken, p)
	}
	for i := 0; i < 3; i++ {
		p := petPayload(fmt.Sprintf("Cat %02d", i))
		p["species"] = "Cat"
		p["breed"] = "Siamese"
		createPet(t, ts, adminToken, p)
	}

	var data struct {
		Pets []struct {
			Species string `json:"species"`
			Breed   string `json:"breed"`
		} `json:"pets"`
		Pagination struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
			Total int `json:"total"`
			Pages int `json:"pages"`
		} `json:"pagination"`
	}

	st, body := doReq(t, ts.URL, "GET", "/api/pets?species=Dog&breed=Labrador&page=2", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, body)
	}
	decodeData(t, body, &data)

	if len(data.Pets) != 5 {
		t.Fatalf("expected 5 pets on page 2, got %d", len(data.Pets))
	}
	for _, p := range data.Pets {
		if p.Species != "Dog" || p.Breed != "Labrador" {
			t.Fatalf("filter leaked: %+v", p)
		}
	}
	if data.Pagination.Page != 2 || data.Pagination.Limit != 20 || data.Pagination.Total != 25 || data.Pagination.Pages != 2 {
		t.Fatalf("bad pagination metadata: %+v", data.Pagination)
	}

	// search matchea name o breed, parcial.
	st, body = doReq(t, ts.URL, "GET", "/api/pets?search=siam", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, body)
	}
	decodeData(t, body, &data)
	if data.Pagination.Total != 3 {
		t.Fatalf("expected 3 siamese matches, got %d", data.Pagination.Total)
	}
}

func TestHTTP_Auth(t *testing.T) {
	ts := newTestServer(t)

	token := registerUser(t, ts, "ana@example.com", "secret1", "Ana")

	// /me con token válido.
	{
		st, body := doReq(t, ts.URL, "GET", "/api/auth/me", token, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 me, got %d body=%s", st, body)
		}
		var data struct {
			User struct {
				Email string `json:"email"`
				Role  string `json:"role"`
			} `json:"user"`
		}
		decodeData(t, body, &data)
		if data.User.Email != "ana@example.com" || data.User.Role != "user" {
			t.Fatalf("unexpected me payload: %+v", data.User)
		}
	}

	// Token con firma inválida.
	{
		st, body := doReq(t, ts.URL, "GET", "/api/auth/me", token+"tampered", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 tampered token, got %d body=%s", st, body)
		}
		if code := errorCode(t, body); code != "INVALID_TOKEN" {
			t.Fatalf("expected INVALID_TOKEN, got %s", code)
		}
	}

	// Registro duplicado.
	{
		st, body := doReq(t, ts.URL, "POST", "/api/auth/register", "", map[string]any{
			"email": "ana@example.com", "password": "secret1", "name": "Ana",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate register, got %d body=%s", st, body)
		}
		if code := errorCode(t, body); code != "USER_EXISTS" {
			t.Fatalf("expected USER_EXISTS, got %s", code)
		}
	}

	// Login con password incorrecto.
	{
		st, body := doReq(t, ts.URL, "POST", "/api/auth/login", "", map[string]any{
			"email": "ana@example.com", "password": "wrong-pass",
		})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 bad login, got %d body=%s", st, body)
		}
		if code := errorCode(t, body); code != "INVALID_CREDENTIALS" {
			t.Fatalf("expected INVALID_CREDENTIALS, got %s", code)
		}
	}
}

// -------------------------
// Helpers
// -------------------------

func petPayload(name string) map[string]any {
	return map[string]any{
		"name":        name,
		"species":     "Dog",
		"breed":       "Labrador",
		"age":         3,
		"description": "friendly and house trained",
	}
}

func registerUser(t *testing.T, ts *testServer, email, password, name string) string {
	t.Helper()

	st, body := doReq(t, ts.URL, "POST", "/api/auth/register", "", map[string]any{
		"email":    email,
		"password": password,
		"name":     name,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, body)
	}

	var data struct {
		Token string `json:"token"`
	}
	decodeData(t, body, &data)
	if data.Token == "" {
		t.Fatalf("register: missing token body=%s", body)
	}
	return data.Token
}

// makeAdmin registra una cuenta, la promueve directo en el store (como lo
// haría el comando createadmin) y hace login para obtener un token con rol
// admin.
func makeAdmin(t *testing.T, ts *testServer, email string) string {
	t.Helper()

	registerUser(t, ts, email, "Admin123", "Admin User")

	u, err := ts.stores.Users.GetByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("lookup admin account: %v", err)
	}
	u.Role = users.RoleAdmin
	u.UpdatedAt = time.Now()
	if err := ts.stores.Users.Update(context.Background(), u); err != nil {
		t.Fatalf("promote admin: %v", err)
	}

	st, body := doReq(t, ts.URL, "POST", "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": "Admin123",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 admin login, got %d body=%s", st, body)
	}

	var data struct {
		Token string `json:"token"`
	}
	decodeData(t, body, &data)
	if data.Token == "" {
		t.Fatalf("admin login: missing token body=%s", body)
	}
	return data.Token
}

func createPet(t *testing.T, ts *testServer, token string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, ts.URL, "POST", "/api/pets", token, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, body)
	}

	var data struct {
		Pet struct {
			ID string `json:"id"`
		} `json:"pet"`
	}
	decodeData(t, body, &data)
	if data.Pet.ID == "" {
		t.Fatalf("create pet: missing id body=%s", body)
	}
	return data.Pet.ID
}

func decodeData(t *testing.T, body []byte, v any) {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, body)
	}
	if !env.Success {
		t.Fatalf("expected success envelope, got body=%s", body)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v body=%s", err, body)
	}
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, body)
	}
	if env.Success {
		t.Fatalf("expected error envelope, got body=%s", body)
	}
	return env.Error.Code
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
