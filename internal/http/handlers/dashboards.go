package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/corpvm/vendorhub/internal/config"
	"github.com/corpvm/vendorhub/internal/domain/contract"
	"github.com/corpvm/vendorhub/internal/repo/postgres"
	"github.com/gin-gonic/gin"
)

type DashboardsStore interface {
	Department(ctx context.Context) (contract.DepartmentDashboard, error)
	ContractTeam(ctx context.Context) (contract.TeamDashboard, error)
	Admin(ctx context.Context) (contract.AdminDashboard, error)
	Metrics(ctx context.Context) (postgres.Metrics, error)
	OrderStatusCounts(ctx context.Context) (map[string]int, error)
}

// DashboardsHandler serves the per-role aggregate cards. Each endpoint
// is a fixed-shape read, no query parameters.
type DashboardsHandler struct {
	repo DashboardsStore
	log  *slog.Logger
}

func NewDashboardsHandler(repo DashboardsStore, log *slog.Logger) *DashboardsHandler {
	return &DashboardsHandler{repo: repo, log: log}
}

func (h *DashboardsHandler) DepartmentDashboard(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	dashboard, err := h.repo.Department(cctx)

	if err != nil {
		h.log.Error("department dashboard", "err", err)
		RespondInternal(ctx, "Failed to fetch dashboard data.")
		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}

func (h *DashboardsHandler) ContractDashboard(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	dashboard, err := h.repo.ContractTeam(cctx)

	if err != nil {
		h.log.Error("contract dashboard", "err", err)
		RespondInternal(ctx, "Failed to fetch dashboard data.")
		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}

func (h *DashboardsHandler) AdminDashboard(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	dashboard, err := h.repo.Admin(cctx)

	if err != nil {
		h.log.Error("admin dashboard", "err", err)
		RespondInternal(ctx, "Failed to fetch dashboard data.")
		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}

func (h *DashboardsHandler) DashboardMetrics(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	metrics, err := h.repo.Metrics(cctx)

	if err != nil {
		h.log.Error("dashboard metrics", "err", err)
		RespondInternal(ctx, "Failed to fetch dashboard metrics.")
		return
	}

	ctx.JSON(http.StatusOK, metrics)
}

func (h *DashboardsHandler) OrderStatus(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	counts, err := h.repo.OrderStatusCounts(cctx)

	if err != nil {
		h.log.Error("order status counts", "err", err)
		RespondInternal(ctx, "Failed to fetch order status.")
		return
	}

	ctx.JSON(http.StatusOK, counts)
}
