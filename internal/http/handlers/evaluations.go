package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/corpvm/vendorhub/internal/config"
	"github.com/corpvm/vendorhub/internal/domain/evaluation"
	"github.com/corpvm/vendorhub/internal/domain/vendor"
	"github.com/gin-gonic/gin"
)

type EvaluationsStore interface {
	Create(ctx context.Context, req evaluation.CreateEvaluationRequest) (evaluation.Evaluation, error)
	List(ctx context.Context) ([]evaluation.Row, error)
	LatestForVendor(ctx context.Context, vendorID int64) (evaluation.Snapshot, error)
}

type VendorRatingsReader interface {
	ListWithRatings(ctx context.Context) ([]vendor.WithRating, error)
	PerformanceRows(ctx context.Context) ([]vendor.PerformanceRow, error)
}

type EvaluationsHandler struct {
	repo    EvaluationsStore
	vendors VendorRatingsReader
	log     *slog.Logger
}

func NewEvaluationsHandler(repo EvaluationsStore, vendors VendorRatingsReader, log *slog.Logger) *EvaluationsHandler {
	return &EvaluationsHandler{repo: repo, vendors: vendors, log: log}
}

func (h *EvaluationsHandler) CreateEvaluation(ctx *gin.Context) {
	var req evaluation.CreateEvaluationRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	_, err := h.repo.Create(cctx, req)

	if err != nil {
		h.log.Error("create evaluation", "err", err, "vendor_id", req.VendorID)
		RespondInternal(ctx, "Failed to create evaluation.")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Evaluation recorded successfully.",
	})
}

func (h *EvaluationsHandler) ListEvaluations(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	evaluations, err := h.repo.List(cctx)

	if err != nil {
		h.log.Error("list evaluations", "err", err)
		RespondInternal(ctx, "Failed to fetch evaluations.")
		return
	}

	ctx.JSON(http.StatusOK, evaluations)
}

// ListVendorsWithRatings keeps never-evaluated vendors in the output
// with a null average rather than dropping them.
func (h *EvaluationsHandler) ListVendorsWithRatings(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	vendors, err := h.vendors.ListWithRatings(cctx)

	if err != nil {
		h.log.Error("list vendors with ratings", "err", err)
		RespondInternal(ctx, "Failed to fetch vendors.")
		return
	}

	ctx.JSON(http.StatusOK, vendors)
}

func (h *EvaluationsHandler) VendorPerformance(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	rows, err := h.vendors.PerformanceRows(cctx)

	if err != nil {
		h.log.Error("vendor performance", "err", err)
		RespondInternal(ctx, "Failed to fetch vendor performance.")
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

// VendorLatestRatings returns the most recent evaluation's three
// ratings, or a JSON null body when the vendor was never evaluated.
func (h *EvaluationsHandler) VendorLatestRatings(ctx *gin.Context) {
	vendorID, ok := pathID(ctx, "vendorID")

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	snapshot, err := h.repo.LatestForVendor(cctx, vendorID)

	if err != nil {
		if errors.Is(err, evaluation.ErrNotFound) {
			ctx.JSON(http.StatusOK, nil)
			return
		}

		h.log.Error("vendor latest ratings", "err", err, "vendor_id", vendorID)
		RespondInternal(ctx, "Failed to fetch vendor performance.")
		return
	}

	ctx.JSON(http.StatusOK, snapshot)
}
