package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corpvm/vendorhub/internal/auth"
	"github.com/gin-gonic/gin"
)

type fakeVerifier struct {
	claims *auth.Claims
	err    error
}

func (f *fakeVerifier) VerifyAccessToken(token string) (*auth.Claims, error) {
	return f.claims, f.err
}

func protectedRouter(v TokenVerifier, requiredRole string) *gin.Engine {
	m := NewAuthMiddleware(v)

	r := gin.New()
	chain := []gin.HandlerFunc{m.RequireAuth()}

	if requiredRole != "" {
		chain = append(chain, m.RequireRole(requiredRole))
	}

	chain = append(chain, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/secure", chain...)

	return r
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifier   *fakeVerifier
		wantStatus int
	}{
		{
			name:       "valid token",
			header:     "Bearer good-token",
			verifier:   &fakeVerifier{claims: &auth.Claims{UserID: "7", Role: "Admin"}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			header:     "",
			verifier:   &fakeVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			verifier:   &fakeVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			header:     "Bearer bad-token",
			verifier:   &fakeVerifier{err: errors.New("expired")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := protectedRouter(tt.verifier, "")

			req := httptest.NewRequest(http.MethodGet, "/secure", nil)

			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	t.Run("matching role passes", func(t *testing.T) {
		v := &fakeVerifier{claims: &auth.Claims{UserID: "7", Role: "Admin"}}
		r := protectedRouter(v, "Admin")

		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", "Bearer t")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("other role forbidden", func(t *testing.T) {
		v := &fakeVerifier{claims: &auth.Claims{UserID: "7", Role: "Vendor"}}
		r := protectedRouter(v, "Admin")

		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", "Bearer t")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})
}
