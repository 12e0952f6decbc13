package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinichub/auth-service/internal/core/domain"
	"github.com/clinichub/auth-service/internal/core/security"
	"github.com/clinichub/auth-service/internal/core/service"
)

// memoryUserRepo is an in-memory directory with the same contract as the
// MongoDB adapter: unique emails, sequential numeric IDs.
type memoryUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	created := *user
	created.ID = r.nextID
	r.users[created.Email] = &created
	clone := created
	return &clone, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

const testSecret = "router-test-secret"

// TestRouter_EndToEnd walks the full register → login → /me flow through the
// real router, middleware stack and error handler.
func TestRouter_EndToEnd(t *testing.T) {
	repo := newMemoryUserRepo()
	codec, err := security.NewTokenCodec(testSecret, "HS256")
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	authService := service.NewAuthService(repo, codec, 30*time.Minute)
	e := NewRouter(authService, nil, nil, zerolog.Nop())

	do := func(req *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	// --- Register ---
	body := `{"email":"user@example.com","first_name":"Test","last_name":"Testov","role":"patient","password":"password","confirm_password":"password"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := do(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var registered map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &registered); err != nil {
		t.Fatalf("register: invalid json: %v", err)
	}
	if registered["email"] != "user@example.com" {
		t.Fatalf("register: unexpected body %v", registered)
	}
	if strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatalf("register: password hash leaked")
	}

	// --- Duplicate registration ---
	req = httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if rec = do(req); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", rec.Code)
	}

	// --- Login ---
	login := func(username, password string) *httptest.ResponseRecorder {
		form := url.Values{}
		form.Set("username", username)
		form.Set("password", password)
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return do(req)
	}

	rec = login("user@example.com", "password")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var tokenBody struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &tokenBody); err != nil {
		t.Fatalf("login: invalid json: %v", err)
	}
	if tokenBody.AccessToken == "" || tokenBody.TokenType != "Bearer" {
		t.Fatalf("login: unexpected token body %+v", tokenBody)
	}

	// --- Wrong password and unknown email are indistinguishable ---
	wrongPassword := login("user@example.com", "wrong-password")
	unknownEmail := login("ghost@example.com", "password")
	if wrongPassword.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("bad logins: expected 401/401, got %d/%d", wrongPassword.Code, unknownEmail.Code)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Fatalf("bad login bodies differ: %q vs %q", wrongPassword.Body.String(), unknownEmail.Body.String())
	}

	// --- /me with the issued token ---
	me := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		return do(req)
	}

	rec = me("Bearer " + tokenBody.AccessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("/me: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var meBody map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &meBody); err != nil {
		t.Fatalf("/me: invalid json: %v", err)
	}
	if meBody["email"] != "user@example.com" {
		t.Fatalf("/me: unexpected body %v", meBody)
	}

	// --- /me rejections ---
	if rec = me(""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("/me without token: expected 401, got %d", rec.Code)
	}

	tampered := tokenBody.AccessToken[:len(tokenBody.AccessToken)-2] + "xx"
	if rec = me("Bearer " + tampered); rec.Code != http.StatusUnauthorized {
		t.Fatalf("/me with tampered token: expected 401, got %d", rec.Code)
	}

	expired, err := codec.Issue("user@example.com", "patient", -time.Minute)
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}
	if rec = me("Bearer " + expired); rec.Code != http.StatusUnauthorized {
		t.Fatalf("/me with expired token: expected 401, got %d", rec.Code)
	}

	foreignCodec, err := security.NewTokenCodec("some-other-secret", "HS256")
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	foreign, err := foreignCodec.Issue("user@example.com", "patient", time.Hour)
	if err != nil {
		t.Fatalf("issue foreign token: %v", err)
	}
	if rec = me("Bearer " + foreign); rec.Code != http.StatusUnauthorized {
		t.Fatalf("/me with foreign signature: expected 401, got %d", rec.Code)
	}

	// --- Liveness probe ---
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	if rec = do(req); rec.Code != http.StatusOK {
		t.Fatalf("/health: expected 200, got %d", rec.Code)
	}
}
