package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wasa-portal/auth-service/internal/models"
	"github.com/wasa-portal/auth-service/internal/service"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

// =============================================================================
// Test Helpers
// =============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testJWTService(t *testing.T) service.JWTService {
	t.Helper()
	jwtService, err := service.NewJWTService(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to create JWT service: %v", err)
	}
	return jwtService
}

func issueToken(t *testing.T, jwtService service.JWTService, role string) string {
	t.Helper()
	token, err := jwtService.GenerateToken(1, "alice", role)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return token
}

func createTestContext(authHeader string) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/api/users", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	return w, c
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) (int, string) {
	t.Helper()
	var body struct {
		Error struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse error body: %v", err)
	}
	return body.Error.Status, body.Error.Message
}

// =============================================================================
// RequireAuth Tests
// =============================================================================

func TestRequireAuth_ValidToken(t *testing.T) {
	jwtService := testJWTService(t)
	token := issueToken(t, jwtService, models.RoleAdmin)

	w, c := createTestContext("Bearer " + token)
	RequireAuth(jwtService, testLogger())(c)

	if c.IsAborted() {
		t.Fatalf("request aborted, status %d", w.Code)
	}

	claims := ClaimsFromContext(c)
	if claims == nil {
		t.Fatal("claims not attached to context")
	}
	if claims.Username != "alice" {
		t.Errorf("claims.Username = %s, want alice", claims.Username)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("claims.Role = %s, want admin", claims.Role)
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	jwtService := testJWTService(t)

	expiredService, err := service.NewJWTService(testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("Failed to create JWT service: %v", err)
	}
	foreignService, err := service.NewJWTService("another-secret-key-also-32-chars-long!", time.Hour)
	if err != nil {
		t.Fatalf("Failed to create JWT service: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "no bearer prefix", header: issueToken(t, jwtService, models.RoleAdmin)},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "empty token", header: "Bearer "},
		{name: "garbage token", header: "Bearer not-a-token"},
		{name: "expired token", header: "Bearer " + issueToken(t, expiredService, models.RoleAdmin)},
		{name: "foreign signature", header: "Bearer " + issueToken(t, foreignService, models.RoleAdmin)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := createTestContext(tt.header)
			RequireAuth(jwtService, testLogger())(c)

			if !c.IsAborted() {
				t.Fatal("request should have been aborted")
			}
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}

			status, _ := decodeErrorBody(t, w)
			if status != http.StatusUnauthorized {
				t.Errorf("body status = %d, want 401", status)
			}
			if ClaimsFromContext(c) != nil {
				t.Error("claims must not be attached on rejection")
			}
		})
	}
}

// =============================================================================
// RequireRole Tests
// =============================================================================

func TestRequireRole_AdminPasses(t *testing.T) {
	jwtService := testJWTService(t)
	token := issueToken(t, jwtService, models.RoleAdmin)

	w, c := createTestContext("Bearer " + token)
	RequireAuth(jwtService, testLogger())(c)
	RequireRole(models.RoleAdmin)(c)

	if c.IsAborted() {
		t.Errorf("admin should pass the admin gate, status %d", w.Code)
	}
}

func TestRequireRole_SupervisorForbidden(t *testing.T) {
	jwtService := testJWTService(t)
	token := issueToken(t, jwtService, models.RoleSupervisor)

	w, c := createTestContext("Bearer " + token)
	RequireAuth(jwtService, testLogger())(c)
	RequireRole(models.RoleAdmin)(c)

	if !c.IsAborted() {
		t.Fatal("supervisor should be rejected by the admin gate")
	}
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}

	status, message := decodeErrorBody(t, w)
	if status != http.StatusForbidden {
		t.Errorf("body status = %d, want 403", status)
	}
	if message != "Forbidden: admin access required" {
		t.Errorf("message = %q", message)
	}
}

func TestRequireRole_NoClaims(t *testing.T) {
	w, c := createTestContext("")
	RequireRole(models.RoleAdmin)(c)

	if !c.IsAborted() {
		t.Fatal("missing claims should be rejected")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
