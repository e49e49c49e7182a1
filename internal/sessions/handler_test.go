package sessions

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"chempaper-backend/internal/shared/server/middleware"
)

type resetRecorder struct {
	sessions []string
}

func (r *resetRecorder) Reset(ctx context.Context, sessionID string) error {
	r.sessions = append(r.sessions, sessionID)
	return nil
}

func setupSessionRouter(t *testing.T) (*gin.Engine, *Service, *resetRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(NewMemoryRepo(), "secret")
	data := &resetRecorder{}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.SessionAuth(svc))
	api := r.Group("/api/v1")
	NewHandler(svc, data).RegisterRoutes(api)
	return r, svc, data
}

func TestLoginEndpoint(t *testing.T) {
	router, svc, _ := setupSessionRouter(t)

	body, _ := json.Marshal(map[string]string{"password": "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var got struct {
		SessionToken string `json:"sessionToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.SessionToken == "" {
		t.Fatal("expected a session token")
	}
	if !svc.Verify(got.SessionToken) {
		t.Fatal("token from login should verify")
	}
}

func TestLoginWrongPasswordEndpoint(t *testing.T) {
	router, _, _ := setupSessionRouter(t)

	body, _ := json.Marshal(map[string]string{"password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestResetEndpoint(t *testing.T) {
	router, svc, data := setupSessionRouter(t)

	sess, err := svc.Login("secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/session", nil)
	req.Header.Set("X-Session-Token", sess.Token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
	if len(data.sessions) != 1 || data.sessions[0] != sess.Token {
		t.Fatalf("data reset calls = %v", data.sessions)
	}
	if svc.Verify(sess.Token) {
		t.Fatal("token should be invalid after reset")
	}
}

func TestResetWithoutToken(t *testing.T) {
	router, _, _ := setupSessionRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/session", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}
