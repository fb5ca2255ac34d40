package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"onboarding/backend/config"
	"onboarding/backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-at-least-16",
		Issuer:         "onboarding",
		AccessTokenTTL: 15 * time.Minute,
	})
}

func authRouter(mgr *jwt.Manager, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuth(mgr, nil)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":     c.GetString("user_id"),
			"role":        c.GetString("role"),
			"division_id": c.GetString("division_id"),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestJWTAuth_ValidToken(t *testing.T) {
	mgr := newTestJWT()
	token, err := mgr.GenerateAccessToken("u-1", "member", "d-1")
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	authRouter(mgr).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"division_id":"d-1","role":"member","user_id":"u-1"}` {
		t.Errorf("unexpected context values: %s", body)
	}
}

func TestJWTAuth_Rejects(t *testing.T) {
	mgr := newTestJWT()
	other := jwt.NewManager(&config.AuthConfig{JWTSecret: "another-secret-16chars", AccessTokenTTL: time.Minute})
	forged, _ := other.GenerateAccessToken("u-1", "admin", "d-1")

	tests := []struct {
		name   string
		header string
	}{
		{"缺少认证头", ""},
		{"格式错误", "Token abc"},
		{"签名不匹配", "Bearer " + forged},
		{"乱码", "Bearer not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			authRouter(mgr).ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestRoleAuth(t *testing.T) {
	mgr := newTestJWT()
	member, _ := mgr.GenerateAccessToken("u-1", "member", "d-1")
	hrbp, _ := mgr.GenerateAccessToken("u-2", "hrbp", "d-1")

	r := authRouter(mgr, RoleAuth("admin", "hrbp"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+member)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("member: expected 403, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+hrbp)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("hrbp: expected 200, got %d", w.Code)
	}
}

func TestRateLimit_NilRedisPassesThrough(t *testing.T) {
	r := gin.New()
	r.GET("/limited", RateLimit(nil, 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/limited", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "trace-1")
	r.ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") != "trace-1" || w.Body.String() != "trace-1" {
		t.Errorf("expected request id to be propagated, got header=%q body=%q", w.Header().Get("X-Request-ID"), w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	if len(w.Header().Get("X-Request-ID")) != 36 {
		t.Errorf("expected generated uuid, got %q", w.Header().Get("X-Request-ID"))
	}
}
