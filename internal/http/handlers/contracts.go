package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/corpvm/vendorhub/internal/config"
	"github.com/corpvm/vendorhub/internal/domain/contract"
	"github.com/gin-gonic/gin"
)

type ContractsStore interface {
	Create(ctx context.Context, vendorID int64, startDate, endDate time.Time, terms string) (contract.Contract, error)
	List(ctx context.Context) ([]contract.Row, error)
	Approve(ctx context.Context, contractID int64, status, notes string) error
}

type ContractsHandler struct {
	repo ContractsStore
	log  *slog.Logger
}

func NewContractsHandler(repo ContractsStore, log *slog.Logger) *ContractsHandler {
	return &ContractsHandler{repo: repo, log: log}
}

const dateLayout = "2006-01-02"

func (h *ContractsHandler) CreateContract(ctx *gin.Context) {
	var req contract.CreateContractRequest

	if !BindJSON(ctx, &req) {
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)

	if err != nil {
		RespondBadRequest(ctx, "startDate must be YYYY-MM-DD.", nil)
		return
	}

	endDate, err := time.Parse(dateLayout, req.EndDate)

	if err != nil {
		RespondBadRequest(ctx, "endDate must be YYYY-MM-DD.", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	_, err = h.repo.Create(cctx, req.VendorID, startDate, endDate, req.Terms)

	if err != nil {
		h.log.Error("create contract", "err", err)
		RespondInternal(ctx, "Internal server error.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Contract created successfully.",
	})
}

func (h *ContractsHandler) ListContracts(ctx *gin.Context) {
	// the dashboards poll this; never serve a stale approval status
	ctx.Header("Cache-Control", "no-store")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	contracts, err := h.repo.List(cctx)

	if err != nil {
		h.log.Error("list contracts", "err", err)
		RespondInternal(ctx, "Failed to fetch contracts.")
		return
	}

	ctx.JSON(http.StatusOK, contracts)
}

// ApproveContract records or overwrites the one status row per
// contract; calling it again simply reflects the latest decision.
func (h *ContractsHandler) ApproveContract(ctx *gin.Context) {
	var req contract.ApproveContractRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Approve(cctx, req.ContractID, req.Status, req.Notes)

	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			RespondNotFound(ctx, "Contract not found.")
			return
		}

		h.log.Error("approve contract", "err", err)
		RespondInternal(ctx, "Failed to update contract status")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Contract updated successfully.",
	})
}
