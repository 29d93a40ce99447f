package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/corpvm/vendorhub/internal/config"
	"github.com/corpvm/vendorhub/internal/domain/department"
	"github.com/corpvm/vendorhub/internal/domain/user"
	"github.com/corpvm/vendorhub/internal/domain/vendor"
	"github.com/gin-gonic/gin"
)

type VendorLister interface {
	List(ctx context.Context) ([]vendor.Vendor, error)
}

type DepartmentLister interface {
	List(ctx context.Context) ([]department.Department, error)
}

type UserLister interface {
	List(ctx context.Context) ([]user.User, error)
}

// DirectoryHandler serves the read-only listings the dashboards build
// their dropdowns and tables from.
type DirectoryHandler struct {
	vendors     VendorLister
	departments DepartmentLister
	users       UserLister
	log         *slog.Logger
}

func NewDirectoryHandler(vendors VendorLister, departments DepartmentLister, users UserLister, log *slog.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		vendors:     vendors,
		departments: departments,
		users:       users,
		log:         log,
	}
}

func (h *DirectoryHandler) ListVendors(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	vendors, err := h.vendors.List(cctx)

	if err != nil {
		h.log.Error("list vendors", "err", err)
		RespondInternal(ctx, "Failed to fetch vendors.")
		return
	}

	ctx.JSON(http.StatusOK, vendors)
}

func (h *DirectoryHandler) ListDepartments(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	departments, err := h.departments.List(cctx)

	if err != nil {
		h.log.Error("list departments", "err", err)
		RespondInternal(ctx, "Failed to fetch departments.")
		return
	}

	ctx.JSON(http.StatusOK, departments)
}

// ListUsers returns the user directory. The repo never selects the
// password hash and the domain struct hides it from JSON, so it cannot
// appear in the output.
func (h *DirectoryHandler) ListUsers(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	users, err := h.users.List(cctx)

	if err != nil {
		h.log.Error("list users", "err", err)
		RespondInternal(ctx, "Failed to fetch users.")
		return
	}

	ctx.JSON(http.StatusOK, users)
}
