package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/corpvm/vendorhub/internal/domain/notification"
	"github.com/corpvm/vendorhub/internal/domain/user"
	"github.com/corpvm/vendorhub/internal/http/handlers"
	"github.com/corpvm/vendorhub/internal/repo/postgres"
)

type fakeNotificationsRepo struct {
	createFn     func(ctx context.Context, req notification.SendRequest) (notification.Notification, error)
	listAllFn    func(ctx context.Context) ([]notification.Row, error)
	listByRoleFn func(ctx context.Context, role user.Role) ([]notification.Row, error)

	lastRole user.Role
}

func (f *fakeNotificationsRepo) Create(ctx context.Context, req notification.SendRequest) (notification.Notification, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return notification.Notification{ID: 1, UserID: req.UserID, Message: req.Message}, nil
}

func (f *fakeNotificationsRepo) ListAll(ctx context.Context) ([]notification.Row, error) {
	if f.listAllFn != nil {
		return f.listAllFn(ctx)
	}
	return []notification.Row{}, nil
}

func (f *fakeNotificationsRepo) ListByRole(ctx context.Context, role user.Role) ([]notification.Row, error) {
	f.lastRole = role

	if f.listByRoleFn != nil {
		return f.listByRoleFn(ctx, role)
	}
	return []notification.Row{}, nil
}

func TestSendNotification(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		repoSetUp      func(*fakeNotificationsRepo)
		wantStatusCode int
	}{
		{
			name:           "success",
			body:           `{"userID":4,"relatedEntity":"Contract","message":"Contract 8 approved"}`,
			repoSetUp:      func(f *fakeNotificationsRepo) {},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "unknown recipient",
			body: `{"userID":999,"relatedEntity":"Contract","message":"hello"}`,
			repoSetUp: func(f *fakeNotificationsRepo) {
				f.createFn = func(ctx context.Context, req notification.SendRequest) (notification.Notification, error) {
					return notification.Notification{}, postgres.ErrUserNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "missing message",
			body:           `{"userID":4,"relatedEntity":"Contract"}`,
			repoSetUp:      func(f *fakeNotificationsRepo) {},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeNotificationsRepo{}
			tt.repoSetUp(repo)

			h := handlers.NewNotificationsHandler(repo, testLogger())
			r := setupRouter(http.MethodPost, "/send-notification", h.SendNotification)

			req := httptest.NewRequest(http.MethodPost, "/send-notification", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatusCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestListNotifications_RoleFilter(t *testing.T) {
	t.Run("no filter lists everything", func(t *testing.T) {
		repo := &fakeNotificationsRepo{}

		h := handlers.NewNotificationsHandler(repo, testLogger())
		r := setupRouter(http.MethodGet, "/notifications", h.ListNotifications)

		req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		if repo.lastRole != "" {
			t.Fatalf("expected no role filter, got %q", repo.lastRole)
		}
	})

	t.Run("role query narrows the feed", func(t *testing.T) {
		repo := &fakeNotificationsRepo{}

		h := handlers.NewNotificationsHandler(repo, testLogger())
		r := setupRouter(http.MethodGet, "/notifications", h.ListNotifications)

		req := httptest.NewRequest(http.MethodGet, "/notifications?role=Department+Head", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		if repo.lastRole != user.RoleDepartmentHead {
			t.Fatalf("expected Department Head filter, got %q", repo.lastRole)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		h := handlers.NewNotificationsHandler(&fakeNotificationsRepo{}, testLogger())
		r := setupRouter(http.MethodGet, "/notifications", h.ListNotifications)

		req := httptest.NewRequest(http.MethodGet, "/notifications?role=Wizard", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestTeamNotificationPaths(t *testing.T) {
	repo := &fakeNotificationsRepo{}
	h := handlers.NewNotificationsHandler(repo, testLogger())

	r := setupRouter(http.MethodGet, "/notifications-finance", h.ListFinanceNotifications)
	req := httptest.NewRequest(http.MethodGet, "/notifications-finance", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if repo.lastRole != user.RoleFinanceTeam {
		t.Fatalf("expected Finance Team filter, got %q", repo.lastRole)
	}

	r = setupRouter(http.MethodGet, "/notifications-contract", h.ListContractNotifications)
	req = httptest.NewRequest(http.MethodGet, "/notifications-contract", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if repo.lastRole != user.RoleContractTeam {
		t.Fatalf("expected Contract Team filter, got %q", repo.lastRole)
	}
}
