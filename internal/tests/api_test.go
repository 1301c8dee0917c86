package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"gantabya/internal/app"
	"gantabya/internal/auth"
	"gantabya/internal/handler"
	"gantabya/internal/middleware"
	"gantabya/internal/service"
)

type apiFixture struct {
	router      *gin.Engine
	userRepo    *MockUserRepository
	captainRepo *MockCaptainRepository
	denylist    *MockTokenDenylist
}

func newAPIFixture() *apiFixture {
	gin.SetMode(gin.TestMode)

	f := &apiFixture{
		userRepo:    NewMockUserRepository(),
		captainRepo: NewMockCaptainRepository(),
		denylist:    NewMockTokenDenylist(),
	}

	tokens := auth.NewManager("test-secret", time.Hour)
	sessions := service.NewSessionService(tokens, f.denylist)
	userService := service.NewUserService(f.userRepo, tokens)
	captainService := service.NewCaptainService(f.captainRepo, NewMockCacheStore(), NewMockLockStore(), &MockPublisher{}, tokens)

	f.router = app.NewRouter(app.RouterDeps{
		UserHandler:      handler.NewUserHandler(userService, sessions, tokens.TTL()),
		CaptainHandler:   handler.NewCaptainHandler(captainService, sessions, tokens.TTL()),
		Authenticator:    sessions,
		IdempotencyStore: NewMockIdempotencyStore(),
	})
	return f
}

func (f *apiFixture) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

const captainSignupBody = `{
	"fullname": {"firstname": "Ramesh", "lastname": "Thapa"},
	"email": "ramesh@example.com",
	"password": "secret123",
	"vehicle": {"color": "red", "plate": "BA 2 PA 1234", "capacity": "4", "vehicleType": "car"}
}`

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

// ──────────────────────────────────────────────
// 1. CAPTAIN REGISTRATION OVER HTTP
// ──────────────────────────────────────────────

func TestAPI_CaptainRegister_Created(t *testing.T) {
	f := newAPIFixture()

	w := f.do(http.MethodPost, "/captains/register", captainSignupBody, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.CaptainAuthResponse
	decodeJSON(t, w, &resp)

	if resp.Token == "" {
		t.Error("expected token in response")
	}
	if resp.Captain.FullName.FirstName != "Ramesh" || resp.Captain.FullName.LastName != "Thapa" {
		t.Errorf("unexpected name %+v", resp.Captain.FullName)
	}
	if resp.Captain.Vehicle.Capacity != 4 || resp.Captain.Vehicle.VehicleType != "car" {
		t.Errorf("unexpected vehicle %+v", resp.Captain.Vehicle)
	}
	if resp.Captain.Status != "inactive" {
		t.Errorf("expected inactive status, got %s", resp.Captain.Status)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("expected no password in response")
	}

	var cookieSet bool
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.TokenCookie && c.Value == resp.Token && c.HttpOnly {
			cookieSet = true
		}
	}
	if !cookieSet {
		t.Error("expected HttpOnly token cookie")
	}
}

func TestAPI_CaptainRegister_ValidationErrors(t *testing.T) {
	f := newAPIFixture()

	body := `{"fullname":{"firstname":"A","lastname":"B"},"email":"a@b.com","password":"x",` +
		`"vehicle":{"color":"","plate":"","capacity":"","vehicleType":""}}`

	w := f.do(http.MethodPost, "/captains/register", body, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Error   string            `json:"error"`
		Message map[string]string `json:"message"`
	}
	decodeJSON(t, w, &resp)

	if resp.Error != "validation failed" {
		t.Errorf("unexpected error %q", resp.Error)
	}
	for _, field := range []string{
		"fullname.firstname", "password", "vehicle.color", "vehicle.plate", "vehicle.capacity", "vehicle.vehicleType",
	} {
		if resp.Message[field] == "" {
			t.Errorf("expected message for %s, got %v", field, resp.Message)
		}
	}
	if _, ok := resp.Message["email"]; ok {
		t.Error("expected valid email to pass")
	}
	if f.captainRepo.Count() != 0 {
		t.Error("expected nothing persisted")
	}
}

func TestAPI_CaptainRegister_CapacityAsNumber(t *testing.T) {
	f := newAPIFixture()

	body := strings.Replace(captainSignupBody, `"capacity": "4"`, `"capacity": 3`, 1)
	w := f.do(http.MethodPost, "/v1/captains/register", body, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.CaptainAuthResponse
	decodeJSON(t, w, &resp)
	if resp.Captain.Vehicle.Capacity != 3 {
		t.Errorf("expected capacity 3, got %d", resp.Captain.Vehicle.Capacity)
	}
}

func TestAPI_CaptainRegister_ExistingEmail(t *testing.T) {
	f := newAPIFixture()

	if w := f.do(http.MethodPost, "/captains/register", captainSignupBody, nil); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	w := f.do(http.MethodPost, "/captains/register", captainSignupBody, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.ErrorResponse
	decodeJSON(t, w, &resp)
	if resp.Message != "captain already exists" {
		t.Errorf("unexpected message %v", resp.Message)
	}
}

func TestAPI_CaptainRegister_MalformedBody(t *testing.T) {
	f := newAPIFixture()

	w := f.do(http.MethodPost, "/captains/register", `{"fullname":`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAPI_IdempotentRegistrationReplays(t *testing.T) {
	f := newAPIFixture()
	headers := map[string]string{"Idempotency-Key": "signup-1"}

	first := f.do(http.MethodPost, "/captains/register", captainSignupBody, headers)
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}

	second := f.do(http.MethodPost, "/captains/register", captainSignupBody, headers)
	if second.Code != http.StatusCreated {
		t.Fatalf("expected replayed 201, got %d: %s", second.Code, second.Body.String())
	}
	if second.Header().Get("Idempotent-Replayed") != "true" {
		t.Error("expected replay header")
	}
	if second.Body.String() != first.Body.String() {
		t.Error("expected identical replayed body")
	}
	if f.captainRepo.CreateCallCount != 1 {
		t.Errorf("expected one create, got %d", f.captainRepo.CreateCallCount)
	}
	if len(second.Result().Cookies()) != 0 {
		t.Error("expected no cookie on a replayed response")
	}
}

func TestAPI_IdempotencyKeyReusedWithDifferentBody(t *testing.T) {
	f := newAPIFixture()
	headers := map[string]string{"Idempotency-Key": "signup-1"}

	first := f.do(http.MethodPost, "/captains/register", captainSignupBody, headers)
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}

	other := strings.Replace(captainSignupBody, "ramesh@example.com", "hari@example.com", 1)
	second := f.do(http.MethodPost, "/captains/register", other, headers)
	if second.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", second.Code, second.Body.String())
	}
	if second.Header().Get("Idempotent-Replayed") != "" {
		t.Error("expected no replay for a different body")
	}
	if strings.Contains(second.Body.String(), "ramesh@example.com") {
		t.Error("expected the first response not to leak")
	}
	if f.captainRepo.CreateCallCount != 1 {
		t.Errorf("expected one create, got %d", f.captainRepo.CreateCallCount)
	}
}

func TestAPI_LoginIgnoresIdempotencyKey(t *testing.T) {
	f := newAPIFixture()
	f.do(http.MethodPost, "/captains/register", captainSignupBody, nil)
	other := strings.Replace(captainSignupBody, "ramesh@example.com", "hari@example.com", 1)
	f.do(http.MethodPost, "/captains/register", other, nil)

	headers := map[string]string{"Idempotency-Key": "k1"}

	w := f.do(http.MethodPost, "/captains/login", `{"email":"ramesh@example.com","password":"secret123"}`, headers)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = f.do(http.MethodPost, "/captains/login", `{"email":"hari@example.com","password":"wrongpass"}`, headers)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d: %s", w.Code, w.Body.String())
	}
	if w.Header().Get("Idempotent-Replayed") != "" || len(w.Result().Cookies()) != 0 {
		t.Error("expected no replayed token or cookie")
	}
}

// ──────────────────────────────────────────────
// 2. AUTHENTICATED CAPTAIN ROUTES
// ──────────────────────────────────────────────

func TestAPI_CaptainProfileAndLogout(t *testing.T) {
	f := newAPIFixture()

	w := f.do(http.MethodPost, "/captains/register", captainSignupBody, nil)
	var reg handler.CaptainAuthResponse
	decodeJSON(t, w, &reg)

	if w := f.do(http.MethodGet, "/captains/profile", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}

	w = f.do(http.MethodGet, "/captains/profile", "", bearer(reg.Token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var profile handler.CaptainProfileResponse
	decodeJSON(t, w, &profile)
	if profile.Captain.ID != reg.Captain.ID {
		t.Errorf("expected captain %s, got %s", reg.Captain.ID, profile.Captain.ID)
	}

	if w := f.do(http.MethodGet, "/captains/logout", "", bearer(reg.Token)); w.Code != http.StatusOK {
		t.Fatalf("expected 200 on logout, got %d", w.Code)
	}

	if w := f.do(http.MethodGet, "/captains/profile", "", bearer(reg.Token)); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", w.Code)
	}
}

func TestAPI_CaptainLogin(t *testing.T) {
	f := newAPIFixture()
	f.do(http.MethodPost, "/captains/register", captainSignupBody, nil)

	w := f.do(http.MethodPost, "/captains/login", `{"email":"ramesh@example.com","password":"secret123"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = f.do(http.MethodPost, "/captains/login", `{"email":"ramesh@example.com","password":"wrong-pass"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAPI_UserTokenCannotReachCaptainRoutes(t *testing.T) {
	f := newAPIFixture()

	w := f.do(http.MethodPost, "/users/register",
		`{"fullname":{"firstname":"Sita","lastname":"Sharma"},"email":"sita@example.com","password":"secret123"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var reg handler.UserAuthResponse
	decodeJSON(t, w, &reg)

	if w := f.do(http.MethodGet, "/captains/profile", "", bearer(reg.Token)); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for user token on captain route, got %d", w.Code)
	}
}

// ──────────────────────────────────────────────
// 3. USER ROUTES
// ──────────────────────────────────────────────

func TestAPI_UserRegisterLoginProfile(t *testing.T) {
	f := newAPIFixture()

	w := f.do(http.MethodPost, "/users/register",
		`{"fullname":{"firstname":"Sita","lastname":"Sharma"},"email":"sita@example.com","password":"secret123"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = f.do(http.MethodPost, "/users/login", `{"email":"sita@example.com","password":"secret123"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var login handler.UserAuthResponse
	decodeJSON(t, w, &login)

	// The cookie set by login authenticates as well as the header.
	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: login.Token})
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var profile handler.UserResponse
	decodeJSON(t, rec, &profile)
	if profile.FullName.FirstName != "Sita" || profile.Email != "sita@example.com" {
		t.Errorf("unexpected profile %+v", profile)
	}
}

func TestAPI_UserRegister_ExistingEmail(t *testing.T) {
	f := newAPIFixture()
	body := `{"fullname":{"firstname":"Sita"},"email":"sita@example.com","password":"secret123"}`

	f.do(http.MethodPost, "/users/register", body, nil)
	w := f.do(http.MethodPost, "/users/register", body, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAPI_Health(t *testing.T) {
	f := newAPIFixture()

	w := f.do(http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("unexpected health response %d %s", w.Code, w.Body.String())
	}
}

func TestAPI_CORSPreflight(t *testing.T) {
	f := newAPIFixture()

	w := f.do(http.MethodOptions, "/captains/register", "", map[string]string{"Origin": "http://localhost:5173"})
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("expected origin echoed, got %q", got)
	}
}
