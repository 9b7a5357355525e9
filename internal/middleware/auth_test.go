package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"hearth/internal/session"
)

func authRouter(t *testing.T) (*gin.Engine, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := session.NewManager(session.NewJWTCodec("test-secret"), time.Hour)

	r := gin.New()
	r.GET("/protected", Auth(sessions), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"household_id": c.GetString(HouseholdIDKey)})
	})
	return r, sessions
}

func TestAuth(t *testing.T) {
	t.Run("valid_cookie", func(t *testing.T) {
		r, sessions := authRouter(t)

		token, err := sessions.Create("household-1")
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("missing_cookie", func(t *testing.T) {
		r, _ := authRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("garbage_token", func(t *testing.T) {
		r, _ := authRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-token"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong_signature", func(t *testing.T) {
		r, _ := authRouter(t)

		other := session.NewManager(session.NewJWTCodec("other-secret"), time.Hour)
		token, err := other.Create("household-1")
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}
