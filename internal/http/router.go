package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/corpvm/vendorhub/internal/auth"
	"github.com/corpvm/vendorhub/internal/config"
	"github.com/corpvm/vendorhub/internal/http/handlers"
	"github.com/corpvm/vendorhub/internal/http/middlewares"
	"github.com/corpvm/vendorhub/internal/observability"
	"github.com/corpvm/vendorhub/internal/repo/postgres"
	"github.com/corpvm/vendorhub/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(cfg config.Config, log *slog.Logger, pool *pgxpool.Pool, certs *storage.CertificateStore) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.MaxBodyBytes(cfg.MaxUploadBytes))
	r.Use(middlewares.RequireJSON())
	r.Use(prom.GinHandleMiddleware())

	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware("vendorhub"))
	}

	// health + metrics
	ping := func(ctx context.Context) error {
		if pool == nil {
			return nil
		}
		return pool.Ping(ctx)
	}

	health := handlers.NewHealthHandler(ping)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	vendorsRepo := postgres.NewVendorsRepo(pool, prom)
	departmentsRepo := postgres.NewDepartmentsRepo(pool, prom)
	contractsRepo := postgres.NewContractsRepo(pool, prom)
	ordersRepo := postgres.NewOrdersRepo(pool, prom)
	financeRepo := postgres.NewFinanceRepo(pool, prom)
	evaluationsRepo := postgres.NewEvaluationsRepo(pool, prom)
	notificationsRepo := postgres.NewNotificationsRepo(pool, prom)
	dashboardsRepo := postgres.NewDashboardsRepo(pool, prom)

	jwtManager := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
	authMW := middlewares.NewAuthMiddleware(jwtManager)

	// wire up handlers
	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, vendorsRepo, jwtManager, cfg, log)
	directoryHandler := handlers.NewDirectoryHandler(vendorsRepo, departmentsRepo, usersRepo, log)
	contractsHandler := handlers.NewContractsHandler(contractsRepo, log)
	ordersHandler := handlers.NewOrdersHandler(ordersRepo, log)
	financeHandler := handlers.NewFinanceHandler(financeRepo, departmentsRepo, log)
	evaluationsHandler := handlers.NewEvaluationsHandler(evaluationsRepo, vendorsRepo, log)
	notificationsHandler := handlers.NewNotificationsHandler(notificationsRepo, log)
	certificatesHandler := handlers.NewCertificatesHandler(certs, cfg.MaxUploadBytes, log)
	dashboardsHandler := handlers.NewDashboardsHandler(dashboardsRepo, log)

	// login and signup share one IP-keyed limiter
	limiter := middlewares.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow)
	limited := limiter.RateLimiterMiddleware(middlewares.KeyByIP)

	r.POST("/vendor-signup", limited, authHandler.VendorSignup)
	r.POST("/signup", limited, authHandler.Signup)
	r.POST("/login", limited, authHandler.Login)

	// directory listings
	r.GET("/vendors", directoryHandler.ListVendors)
	r.GET("/departments", directoryHandler.ListDepartments)
	r.GET("/get-departments", directoryHandler.ListDepartments)

	// contracts
	r.POST("/create-contract", contractsHandler.CreateContract)
	r.GET("/contracts", contractsHandler.ListContracts)
	r.POST("/approve-contract", contractsHandler.ApproveContract)

	// purchase orders
	r.POST("/create-purchase-order", ordersHandler.CreateOrder)
	r.GET("/purchase-orders", ordersHandler.ListOrders)
	r.GET("/get-orders/:vendorID", ordersHandler.ListVendorOrders)
	r.POST("/update-order-status/:orderID", ordersHandler.UpdateOrderStatus)
	r.GET("/get-order-completion/:vendorID", ordersHandler.OrderCompletion)

	// finance
	r.POST("/budget-allocation", financeHandler.AllocateBudget)
	r.GET("/budget-allocations", financeHandler.ListAllocations)
	r.GET("/budget-allocations-with-expenses", financeHandler.ListAllocationsWithExpenses)
	r.POST("/budget-allocations-with-expenses", financeHandler.RecordExpense)
	r.GET("/dashboard-data-finance", financeHandler.FinanceDashboard)
	r.POST("/adjust-budget", financeHandler.AdjustBudget)

	// evaluations
	r.POST("/create-evaluation", evaluationsHandler.CreateEvaluation)
	r.GET("/vendor-evaluations", evaluationsHandler.ListEvaluations)
	r.POST("/vendor-evaluations", evaluationsHandler.CreateEvaluation)
	r.GET("/vendors-with-ratings", evaluationsHandler.ListVendorsWithRatings)
	r.GET("/vendor-performance", evaluationsHandler.VendorPerformance)
	r.GET("/get-vendor-performance/:vendorID", evaluationsHandler.VendorLatestRatings)

	// notifications
	r.POST("/send-notification", notificationsHandler.SendNotification)
	r.GET("/notifications", notificationsHandler.ListNotifications)
	r.GET("/notifications-finance", notificationsHandler.ListFinanceNotifications)
	r.GET("/notifications-contract", notificationsHandler.ListContractNotifications)

	// compliance certificates
	r.POST("/upload-certification", certificatesHandler.Upload)
	r.GET("/certifications", certificatesHandler.ListCertifications)
	r.GET("/certificates/:filename", certificatesHandler.Download)
	r.Static("/uploads/certificates", certs.Root())

	// dashboards
	r.GET("/department-dashboard", dashboardsHandler.DepartmentDashboard)
	r.GET("/contract-dashboard", dashboardsHandler.ContractDashboard)
	r.GET("/dashboard-metrics", dashboardsHandler.DashboardMetrics)
	r.GET("/order-status", dashboardsHandler.OrderStatus)

	// user directory and the admin dashboard optionally sit behind the
	// token; the flag keeps existing dashboard clients working until
	// they all send one.
	if cfg.EnforceAuth {
		adminOnly := []gin.HandlerFunc{authMW.RequireAuth(), authMW.RequireRole("Admin")}
		r.GET("/users", append(adminOnly, directoryHandler.ListUsers)...)
		r.GET("/admin-dashboard", append(adminOnly, dashboardsHandler.AdminDashboard)...)
	} else {
		r.GET("/users", directoryHandler.ListUsers)
		r.GET("/admin-dashboard", dashboardsHandler.AdminDashboard)
	}

	return r
}
