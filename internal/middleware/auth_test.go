package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"risk_screening_backend/internal/config"
	"risk_screening_backend/internal/model"
	"risk_screening_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "middleware-test-secret"

func testConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: testSecret, ExpireTime: time.Hour}}
}

func tokenFor(t *testing.T, role model.UserRole, secret string, ttl time.Duration) string {
	t.Helper()
	user := &model.User{BaseModel: model.BaseModel{ID: 42}, Email: "user@example.com", Role: role}
	token, err := util.GenerateJWT(user, secret, ttl)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	return token
}

func run(handlers []gin.HandlerFunc, authHeader string) (*httptest.ResponseRecorder, *util.Claims) {
	var seen *util.Claims
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		seen = util.GetUserFromContext(c)
		c.Status(http.StatusOK)
	})
	r.GET("/", chain...)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, seen
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	cases := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + tokenFor(t, model.RoleUser, testSecret, time.Hour), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + tokenFor(t, model.RoleUser, "other-secret", time.Hour), http.StatusUnauthorized},
		{"expired", "Bearer " + tokenFor(t, model.RoleUser, testSecret, -time.Minute), http.StatusUnauthorized},
		{"garbage", "Bearer not.a.jwt", http.StatusUnauthorized},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, claims := run([]gin.HandlerFunc{AuthMiddleware(cfg)}, c.header)
			if w.Code != c.status {
				t.Fatalf("status %d, want %d", w.Code, c.status)
			}
			if c.status == http.StatusOK && (claims == nil || claims.UserID != 42) {
				t.Fatalf("claims = %+v", claims)
			}
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	cfg := testConfig()

	w, claims := run([]gin.HandlerFunc{OptionalAuthMiddleware(cfg)}, "")
	if w.Code != http.StatusOK || claims != nil {
		t.Fatalf("anonymous: status %d claims %+v", w.Code, claims)
	}

	w, claims = run([]gin.HandlerFunc{OptionalAuthMiddleware(cfg)}, "Bearer broken")
	if w.Code != http.StatusOK || claims != nil {
		t.Fatalf("bad token should continue anonymously: status %d claims %+v", w.Code, claims)
	}

	w, claims = run([]gin.HandlerFunc{OptionalAuthMiddleware(cfg)}, "Bearer "+tokenFor(t, model.RoleUser, testSecret, time.Hour))
	if w.Code != http.StatusOK || claims == nil || claims.UserID != 42 {
		t.Fatalf("valid token: status %d claims %+v", w.Code, claims)
	}
}

func TestRoleMiddleware(t *testing.T) {
	cfg := testConfig()
	cases := []struct {
		name   string
		role   model.UserRole
		status int
	}{
		{"admin allowed", model.RoleAdmin, http.StatusOK},
		{"user forbidden", model.RoleUser, http.StatusForbidden},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			header := "Bearer " + tokenFor(t, c.role, testSecret, time.Hour)
			w, _ := run([]gin.HandlerFunc{AuthMiddleware(cfg), RoleMiddleware(model.RoleAdmin)}, header)
			if w.Code != c.status {
				t.Fatalf("status %d, want %d", w.Code, c.status)
			}
		})
	}

	w, _ := run([]gin.HandlerFunc{RoleMiddleware(model.RoleAdmin)}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no claims: status %d", w.Code)
	}
}
