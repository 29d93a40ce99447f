package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/corpvm/vendorhub/internal/auth"
	"github.com/corpvm/vendorhub/internal/config"
	"github.com/corpvm/vendorhub/internal/domain/user"
	"github.com/corpvm/vendorhub/internal/domain/vendor"
	"github.com/corpvm/vendorhub/internal/repo/postgres"
	"github.com/corpvm/vendorhub/internal/security"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type UserReader interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
}

type UserWriter interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	Create(ctx context.Context, username, passwordHash string, role user.Role) (user.User, error)
	CreateTx(ctx context.Context, tx pgx.Tx, username, passwordHash string, role user.Role) (user.User, error)
}

type VendorWriter interface {
	CreateTx(ctx context.Context, tx pgx.Tx, v vendor.Vendor) (vendor.Vendor, error)
}

type AuthHandler struct {
	users   UserReader
	writer  UserWriter
	vendors VendorWriter
	jwt     *auth.Manager
	cfg     config.Config
	log     *slog.Logger
}

func NewAuthHandler(users UserReader, writer UserWriter, vendors VendorWriter, jwtManager *auth.Manager, cfg config.Config, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:   users,
		writer:  writer,
		vendors: vendors,
		jwt:     jwtManager,
		cfg:     cfg,
		log:     log,
	}
}

type VendorSignupRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ServiceCategory string `json:"serviceCategory" binding:"required"`
	Compliance      string `json:"compliance" binding:"required"`
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// VendorSignup creates the User (role Vendor) and the Vendor profile in
// one transaction: both rows land or neither does.
func (h *AuthHandler) VendorSignup(ctx *gin.Context) {
	var req VendorSignupRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	hash, err := security.HashPassword(req.Password, h.cfg.BcryptCost)

	if err != nil {
		h.log.Error("hash password", "err", err)
		RespondInternal(ctx, "Internal server error.")
		return
	}

	tx, err := h.writer.BeginTx(cctx)

	if err != nil {
		h.log.Error("begin vendor signup tx", "err", err)
		RespondInternal(ctx, "Internal server error.")
		return
	}

	defer func() { _ = tx.Rollback(cctx) }()

	_, err = h.writer.CreateTx(cctx, tx, req.Email, hash, user.RoleVendor)

	if err != nil {
		if errors.Is(err, postgres.ErrEmailTaken) {
			RespondBadRequest(ctx, "Email is already registered.", nil)
			return
		}

		h.log.Error("vendor signup user insert", "err", err)
		RespondInternal(ctx, "Internal server error.")
		return
	}

	_, err = h.vendors.CreateTx(cctx, tx, vendor.Vendor{
		Name:                    req.Name,
		ContactInfo:             req.Email,
		ServiceCategory:         req.ServiceCategory,
		ComplianceCertification: req.Compliance,
	})

	if err != nil {
		h.log.Error("vendor signup vendor insert", "err", err)
		RespondInternal(ctx, "Internal server error.")
		return
	}

	if err := tx.Commit(cctx); err != nil {
		h.log.Error("vendor signup commit", "err", err)
		RespondInternal(ctx, "Internal server error.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Vendor registered successfully.",
	})
}

// Signup registers a non-vendor user; a single insert, no transaction.
func (h *AuthHandler) Signup(ctx *gin.Context) {
	var req SignupRequest

	if !BindJSON(ctx, &req) {
		return
	}

	role, err := user.ParseRole(req.Role)

	if err != nil {
		RespondBadRequest(ctx, "Unknown role.", nil)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	hash, err := security.HashPassword(req.Password, h.cfg.BcryptCost)

	if err != nil {
		h.log.Error("hash password", "err", err)
		RespondInternal(ctx, "Internal server error")
		return
	}

	_, err = h.writer.Create(cctx, req.Email, hash, role)

	if err != nil {
		if errors.Is(err, postgres.ErrEmailTaken) {
			RespondBadRequest(ctx, "Email is already registered", nil)
			return
		}

		h.log.Error("signup insert", "err", err)
		RespondInternal(ctx, "Internal server error")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// Login verifies credentials and resolves the dashboard redirect from
// the role alone. The failure message never says which half was wrong.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByUsername(cctx, req.Email)

	if err != nil {
		if !errors.Is(err, postgres.ErrUserNotFound) {
			h.log.Error("login lookup", "err", err)
			RespondInternal(ctx, "Internal server error.")
			return
		}

		RespondUnauthorized(ctx, "Invalid email or password.")
		return
	}

	if err := security.CheckPassword(foundUser.PasswordHash, req.Password); err != nil {
		RespondUnauthorized(ctx, "Invalid email or password.")
		return
	}

	redirectURL, err := foundUser.Role.DashboardPath()

	if err != nil {
		RespondForbidden(ctx, "Access denied.")
		return
	}

	accessToken, err := h.jwt.GenerateAccessToken(foundUser.ID, foundUser.Username, string(foundUser.Role))

	if err != nil {
		h.log.Error("generate access token", "err", err)
		RespondInternal(ctx, "Internal server error.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":     true,
		"redirectUrl": redirectURL,
		"accessToken": accessToken,
	})
}
