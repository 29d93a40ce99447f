package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/corpvm/vendorhub/internal/config"
	"github.com/corpvm/vendorhub/internal/domain/notification"
	"github.com/corpvm/vendorhub/internal/domain/user"
	"github.com/corpvm/vendorhub/internal/repo/postgres"
	"github.com/gin-gonic/gin"
)

type NotificationsStore interface {
	Create(ctx context.Context, req notification.SendRequest) (notification.Notification, error)
	ListAll(ctx context.Context) ([]notification.Row, error)
	ListByRole(ctx context.Context, role user.Role) ([]notification.Row, error)
}

type NotificationsHandler struct {
	repo NotificationsStore
	log  *slog.Logger
}

func NewNotificationsHandler(repo NotificationsStore, log *slog.Logger) *NotificationsHandler {
	return &NotificationsHandler{repo: repo, log: log}
}

func (h *NotificationsHandler) SendNotification(ctx *gin.Context) {
	var req notification.SendRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	_, err := h.repo.Create(cctx, req)

	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			RespondNotFound(ctx, "User not found.")
			return
		}

		h.log.Error("send notification", "err", err, "user_id", req.UserID)
		RespondInternal(ctx, "Failed to send notification.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification sent successfully",
	})
}

// ListNotifications serves the shared feed; an optional ?role= query
// narrows it to one recipient role.
func (h *NotificationsHandler) ListNotifications(ctx *gin.Context) {
	roleParam := ctx.Query("role")

	if roleParam == "" {
		h.respondAll(ctx)
		return
	}

	role, err := user.ParseRole(roleParam)

	if err != nil {
		RespondBadRequest(ctx, "Unknown role.", nil)
		return
	}

	h.respondByRole(ctx, role)
}

// ListFinanceNotifications and ListContractNotifications keep the
// legacy per-team paths as fixed-role views of the same feed.
func (h *NotificationsHandler) ListFinanceNotifications(ctx *gin.Context) {
	h.respondByRole(ctx, user.RoleFinanceTeam)
}

func (h *NotificationsHandler) ListContractNotifications(ctx *gin.Context) {
	h.respondByRole(ctx, user.RoleContractTeam)
}

func (h *NotificationsHandler) respondAll(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	notifications, err := h.repo.ListAll(cctx)

	if err != nil {
		h.log.Error("list notifications", "err", err)
		RespondInternal(ctx, "Failed to fetch notifications.")
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

func (h *NotificationsHandler) respondByRole(ctx *gin.Context, role user.Role) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	notifications, err := h.repo.ListByRole(cctx, role)

	if err != nil {
		h.log.Error("list notifications by role", "err", err, "role", role)
		RespondInternal(ctx, "Failed to fetch notifications.")
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}
