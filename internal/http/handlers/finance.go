package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/corpvm/vendorhub/internal/config"
	"github.com/corpvm/vendorhub/internal/domain/department"
	"github.com/corpvm/vendorhub/internal/domain/finance"
	"github.com/gin-gonic/gin"
)

type FinanceStore interface {
	CreateAllocation(ctx context.Context, req finance.CreateAllocationRequest) (finance.Allocation, error)
	ListAllocations(ctx context.Context) ([]finance.AllocationRow, error)
	ListWithExpenses(ctx context.Context) ([]finance.AllocationWithExpenses, error)
	RecordExpense(ctx context.Context, allocationID int64, amountSpent float64) (int64, error)
	Dashboard(ctx context.Context) (finance.Dashboard, error)
}

type BudgetAdjuster interface {
	AdjustBudget(ctx context.Context, departmentID int64, action department.BudgetAction, amount float64) error
}

type FinanceHandler struct {
	repo        FinanceStore
	departments BudgetAdjuster
	log         *slog.Logger
}

func NewFinanceHandler(repo FinanceStore, departments BudgetAdjuster, log *slog.Logger) *FinanceHandler {
	return &FinanceHandler{repo: repo, departments: departments, log: log}
}

func (h *FinanceHandler) AllocateBudget(ctx *gin.Context) {
	var req finance.CreateAllocationRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.Amount <= 0 {
		RespondBadRequest(ctx, "Amount must be greater than zero.", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	_, err := h.repo.CreateAllocation(cctx, req)

	if err != nil {
		h.log.Error("create allocation", "err", err)
		RespondInternal(ctx, "Failed to allocate budget.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Budget allocated successfully.",
	})
}

func (h *FinanceHandler) ListAllocations(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	allocations, err := h.repo.ListAllocations(cctx)

	if err != nil {
		h.log.Error("list allocations", "err", err)
		RespondInternal(ctx, "Failed to fetch budget allocations.")
		return
	}

	ctx.JSON(http.StatusOK, allocations)
}

func (h *FinanceHandler) ListAllocationsWithExpenses(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	allocations, err := h.repo.ListWithExpenses(cctx)

	if err != nil {
		h.log.Error("list allocations with expenses", "err", err)
		RespondInternal(ctx, "Failed to fetch budget allocations.")
		return
	}

	ctx.JSON(http.StatusOK, allocations)
}

func (h *FinanceHandler) RecordExpense(ctx *gin.Context) {
	var req finance.RecordExpenseRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.AmountSpent <= 0 {
		RespondBadRequest(ctx, "AmountSpent must be greater than zero.", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	expenseID, err := h.repo.RecordExpense(cctx, req.AllocationID, req.AmountSpent)

	if err != nil {
		if errors.Is(err, finance.ErrNotFound) {
			RespondNotFound(ctx, "Allocation not found.")
			return
		}

		h.log.Error("record expense", "err", err, "allocation_id", req.AllocationID)
		RespondInternal(ctx, "Failed to record expense.")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":   "Expense added successfully",
		"expenseId": expenseID,
	})
}

func (h *FinanceHandler) FinanceDashboard(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	dashboard, err := h.repo.Dashboard(cctx)

	if err != nil {
		h.log.Error("finance dashboard", "err", err)
		RespondInternal(ctx, "Failed to fetch dashboard data.")
		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}

// AdjustBudget applies a signed delta to one department's budget. The
// action string decides the sign; anything but increase/decrease is a
// client error.
func (h *FinanceHandler) AdjustBudget(ctx *gin.Context) {
	var req finance.AdjustBudgetRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.Amount <= 0 {
		RespondBadRequest(ctx, "Amount must be greater than zero.", nil)
		return
	}

	action := department.BudgetAction(req.Action)

	if action != department.ActionIncrease && action != department.ActionDecrease {
		RespondBadRequest(ctx, "Invalid action", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.departments.AdjustBudget(cctx, req.DepartmentID, action, req.Amount)

	if err != nil {
		if errors.Is(err, department.ErrNotFound) {
			RespondNotFound(ctx, "Department not found.")
			return
		}

		h.log.Error("adjust budget", "err", err, "department_id", req.DepartmentID)
		RespondInternal(ctx, "Failed to adjust budget.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
