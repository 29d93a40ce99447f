package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/corpvm/vendorhub/internal/auth"
	"github.com/corpvm/vendorhub/internal/config"
	"github.com/corpvm/vendorhub/internal/domain/user"
	"github.com/corpvm/vendorhub/internal/domain/vendor"
	"github.com/corpvm/vendorhub/internal/http/handlers"
	"github.com/corpvm/vendorhub/internal/repo/postgres"
	"github.com/corpvm/vendorhub/internal/security"
	"github.com/jackc/pgx/v5"
)

// fakeTx only supports Commit and Rollback; the embedded interface
// covers the rest of pgx.Tx, which the handlers never touch.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeUsersRepo struct {
	getFn      func(ctx context.Context, username string) (user.User, error)
	createFn   func(ctx context.Context, username, passwordHash string, role user.Role) (user.User, error)
	createTxFn func(ctx context.Context, tx pgx.Tx, username, passwordHash string, role user.Role) (user.User, error)
	tx         *fakeTx
	beginErr   error
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	if f.getFn != nil {
		return f.getFn(ctx, username)
	}
	return user.User{}, postgres.ErrUserNotFound
}

func (f *fakeUsersRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	if f.tx == nil {
		f.tx = &fakeTx{}
	}
	return f.tx, nil
}

func (f *fakeUsersRepo) Create(ctx context.Context, username, passwordHash string, role user.Role) (user.User, error) {
	if f.createFn != nil {
		return f.createFn(ctx, username, passwordHash, role)
	}
	return user.User{ID: 1, Username: username, Role: role}, nil
}

func (f *fakeUsersRepo) CreateTx(ctx context.Context, tx pgx.Tx, username, passwordHash string, role user.Role) (user.User, error) {
	if f.createTxFn != nil {
		return f.createTxFn(ctx, tx, username, passwordHash, role)
	}
	return user.User{ID: 1, Username: username, Role: role}, nil
}

type fakeVendorWriter struct {
	createTxFn func(ctx context.Context, tx pgx.Tx, v vendor.Vendor) (vendor.Vendor, error)
}

func (f *fakeVendorWriter) CreateTx(ctx context.Context, tx pgx.Tx, v vendor.Vendor) (vendor.Vendor, error) {
	if f.createTxFn != nil {
		return f.createTxFn(ctx, tx, v)
	}
	v.ID = 1
	return v, nil
}

func newAuthHandler(users *fakeUsersRepo, vendors *fakeVendorWriter) *handlers.AuthHandler {
	jwtManager := auth.NewManager("test-secret", 15*time.Minute)
	cfg := config.Config{BcryptCost: security.MinCost}

	return handlers.NewAuthHandler(users, users, vendors, jwtManager, cfg, testLogger())
}

func TestLogin(t *testing.T) {
	hash, err := security.HashPassword("correct-horse", security.MinCost)

	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	tests := []struct {
		name           string
		body           string
		repoSetUp      func(*fakeUsersRepo)
		wantStatusCode int
		wantRedirect   string
	}{
		{
			name: "success redirects by role",
			body: `{"email":"fin@corp.example","password":"correct-horse"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.getFn = func(ctx context.Context, username string) (user.User, error) {
					return user.User{ID: 7, Username: username, PasswordHash: hash, Role: user.RoleFinanceTeam}, nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantRedirect:   "/Finance_Team/dashboard.html",
		},
		{
			name: "unknown user",
			body: `{"email":"ghost@corp.example","password":"whatever"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.getFn = func(ctx context.Context, username string) (user.User, error) {
					return user.User{}, postgres.ErrUserNotFound
				}
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			body: `{"email":"fin@corp.example","password":"wrong"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.getFn = func(ctx context.Context, username string) (user.User, error) {
					return user.User{ID: 7, Username: username, PasswordHash: hash, Role: user.RoleFinanceTeam}, nil
				}
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "missing fields",
			body:           `{"email":"fin@corp.example"}`,
			repoSetUp:      func(f *fakeUsersRepo) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "lookup failure",
			body: `{"email":"fin@corp.example","password":"correct-horse"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.getFn = func(ctx context.Context, username string) (user.User, error) {
					return user.User{}, errors.New("connection refused")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &fakeUsersRepo{}
			tt.repoSetUp(users)

			h := newAuthHandler(users, &fakeVendorWriter{})
			r := setupRouter(http.MethodPost, "/login", h.Login)

			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatusCode, w.Code, w.Body.String())
			}

			if tt.wantRedirect == "" {
				return
			}

			var resp struct {
				Success     bool   `json:"success"`
				RedirectURL string `json:"redirectUrl"`
				AccessToken string `json:"accessToken"`
			}

			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}

			if !resp.Success {
				t.Fatalf("expected success=true")
			}

			if resp.RedirectURL != tt.wantRedirect {
				t.Fatalf("expected redirect %q, got %q", tt.wantRedirect, resp.RedirectURL)
			}

			if resp.AccessToken == "" {
				t.Fatalf("expected an access token")
			}
		})
	}
}

func TestVendorSignup(t *testing.T) {
	body := `{
		"name": "Acme Supplies",
		"email": "sales@acme.example",
		"password": "pw-123456",
		"serviceCategory": "Office Supplies",
		"compliance": "ISO 9001"
	}`

	t.Run("commits both inserts", func(t *testing.T) {
		users := &fakeUsersRepo{}
		vendors := &fakeVendorWriter{}

		h := newAuthHandler(users, vendors)
		r := setupRouter(http.MethodPost, "/vendor-signup", h.VendorSignup)

		req := httptest.NewRequest(http.MethodPost, "/vendor-signup", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		if users.tx == nil || !users.tx.committed {
			t.Fatalf("expected the transaction to be committed")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := &fakeUsersRepo{
			createTxFn: func(ctx context.Context, tx pgx.Tx, username, passwordHash string, role user.Role) (user.User, error) {
				return user.User{}, postgres.ErrEmailTaken
			},
		}

		h := newAuthHandler(users, &fakeVendorWriter{})
		r := setupRouter(http.MethodPost, "/vendor-signup", h.VendorSignup)

		req := httptest.NewRequest(http.MethodPost, "/vendor-signup", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
		}

		if users.tx != nil && users.tx.committed {
			t.Fatalf("duplicate email must not commit")
		}
	})

	t.Run("vendor insert failure rolls back the user", func(t *testing.T) {
		users := &fakeUsersRepo{}
		vendors := &fakeVendorWriter{
			createTxFn: func(ctx context.Context, tx pgx.Tx, v vendor.Vendor) (vendor.Vendor, error) {
				return vendor.Vendor{}, errors.New("insert failed")
			},
		}

		h := newAuthHandler(users, vendors)
		r := setupRouter(http.MethodPost, "/vendor-signup", h.VendorSignup)

		req := httptest.NewRequest(http.MethodPost, "/vendor-signup", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
		}

		if users.tx == nil {
			t.Fatalf("expected a transaction to have started")
		}

		if users.tx.committed {
			t.Fatalf("failed signup must not commit")
		}

		if !users.tx.rolledBack {
			t.Fatalf("failed signup must roll back")
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		h := newAuthHandler(&fakeUsersRepo{}, &fakeVendorWriter{})
		r := setupRouter(http.MethodPost, "/vendor-signup", h.VendorSignup)

		bad := `{"name":"A","email":"not-an-email","password":"pw","serviceCategory":"x","compliance":"y"}`
		req := httptest.NewRequest(http.MethodPost, "/vendor-signup", strings.NewReader(bad))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStatusCode int
	}{
		{
			name:           "success",
			body:           `{"name":"Dana","email":"dana@corp.example","password":"pw-123","role":"Department Head"}`,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "unknown role",
			body:           `{"name":"Dana","email":"dana@corp.example","password":"pw-123","role":"Wizard"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "missing password",
			body:           `{"name":"Dana","email":"dana@corp.example","role":"Admin"}`,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAuthHandler(&fakeUsersRepo{}, &fakeVendorWriter{})
			r := setupRouter(http.MethodPost, "/signup", h.Signup)

			req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatusCode, w.Code, w.Body.String())
			}
		})
	}
}
