package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/corpvm/vendorhub/internal/config"
	"github.com/corpvm/vendorhub/internal/domain/procurement"
	"github.com/gin-gonic/gin"
)

type OrdersStore interface {
	Create(ctx context.Context, req procurement.CreateOrderRequest) (procurement.Order, error)
	List(ctx context.Context) ([]procurement.Row, error)
	ListByVendor(ctx context.Context, vendorID int64) ([]procurement.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status string) error
	Completion(ctx context.Context, vendorID int64) (procurement.Completion, error)
}

type OrdersHandler struct {
	repo OrdersStore
	log  *slog.Logger
}

func NewOrdersHandler(repo OrdersStore, log *slog.Logger) *OrdersHandler {
	return &OrdersHandler{repo: repo, log: log}
}

func (h *OrdersHandler) CreateOrder(ctx *gin.Context) {
	var req procurement.CreateOrderRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	_, err := h.repo.Create(cctx, req)

	if err != nil {
		h.log.Error("create order", "err", err)
		RespondInternal(ctx, "Failed to create purchase order.")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Purchase order created",
	})
}

func (h *OrdersHandler) ListOrders(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	orders, err := h.repo.List(cctx)

	if err != nil {
		h.log.Error("list orders", "err", err)
		RespondInternal(ctx, "Failed to fetch purchase orders.")
		return
	}

	ctx.JSON(http.StatusOK, orders)
}

func (h *OrdersHandler) ListVendorOrders(ctx *gin.Context) {
	vendorID, ok := pathID(ctx, "vendorID")

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	orders, err := h.repo.ListByVendor(cctx, vendorID)

	if err != nil {
		h.log.Error("list vendor orders", "err", err, "vendor_id", vendorID)
		RespondInternal(ctx, "Failed to fetch purchase orders.")
		return
	}

	ctx.JSON(http.StatusOK, orders)
}

func (h *OrdersHandler) UpdateOrderStatus(ctx *gin.Context) {
	orderID, ok := pathID(ctx, "orderID")

	if !ok {
		return
	}

	var req procurement.UpdateStatusRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.UpdateStatus(cctx, orderID, req.Status)

	if err != nil {
		if errors.Is(err, procurement.ErrNotFound) {
			RespondNotFound(ctx, "Purchase order not found.")
			return
		}

		h.log.Error("update order status", "err", err, "order_id", orderID)
		RespondInternal(ctx, "Failed to update order status.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// OrderCompletion reports the fulfilled share of a vendor's orders as a
// raw percentage; a vendor with no orders reads 0.
func (h *OrdersHandler) OrderCompletion(ctx *gin.Context) {
	vendorID, ok := pathID(ctx, "vendorID")

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	completion, err := h.repo.Completion(cctx, vendorID)

	if err != nil {
		h.log.Error("order completion", "err", err, "vendor_id", vendorID)
		RespondInternal(ctx, "Failed to fetch order completion.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"completionPercentage": completion.Percentage(),
	})
}

// pathID parses a numeric path parameter, answering the 400 itself when
// the segment is not a positive integer.
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)

	if err != nil || id <= 0 {
		RespondBadRequest(ctx, "Invalid "+name+".", nil)
		return 0, false
	}
	return id, true
}
