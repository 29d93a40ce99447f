package postgres

import (
	"context"

	"github.com/corpvm/vendorhub/internal/domain/contract"
	"github.com/corpvm/vendorhub/internal/observability"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardsRepo serves the fixed-shape per-role aggregates. Each query
// is a single SELECT of correlated subqueries, so it always yields
// exactly one row and missing counts come back as 0.
type DashboardsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewDashboardsRepo(pool *pgxpool.Pool, prom *observability.Prom) *DashboardsRepo {
	return &DashboardsRepo{pool: pool, prom: prom}
}

func (r *DashboardsRepo) Department(ctx context.Context) (contract.DepartmentDashboard, error) {
	var d contract.DepartmentDashboard

	err := observe(r.prom, "dashboards.department", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT
				(SELECT COUNT(*) FROM contracts
				 WHERE id IN (SELECT contract_id FROM contract_approvals WHERE status = 'Active')),
				(SELECT COUNT(*) FROM contract_approvals WHERE status = 'Rejected'),
				(SELECT COUNT(*) FROM contract_approvals WHERE status = 'Active')`,
		).Scan(&d.ActiveContracts, &d.PendingReview, &d.CompletedReviews)
	})

	if err != nil {
		return contract.DepartmentDashboard{}, err
	}
	return d, nil
}

func (r *DashboardsRepo) ContractTeam(ctx context.Context) (contract.TeamDashboard, error) {
	var d contract.TeamDashboard

	err := observe(r.prom, "dashboards.contract_team", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT
				(SELECT COUNT(*) FROM contracts c JOIN contract_approvals ca ON c.id = ca.contract_id WHERE ca.status = 'Active'),
				(SELECT COUNT(*) FROM contracts c JOIN contract_approvals ca ON c.id = ca.contract_id WHERE ca.status = 'Pending'),
				(SELECT COUNT(*) FROM contracts c JOIN contract_approvals ca ON c.id = ca.contract_id WHERE ca.status = 'Pending')`,
		).Scan(&d.TotalActiveContracts, &d.ContractsUnderReview, &d.ContractsPendingApproval)
	})

	if err != nil {
		return contract.TeamDashboard{}, err
	}
	return d, nil
}

func (r *DashboardsRepo) Admin(ctx context.Context) (contract.AdminDashboard, error) {
	var d contract.AdminDashboard

	err := observe(r.prom, "dashboards.admin", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT
				(SELECT COUNT(*) FROM users),
				(SELECT COUNT(*) FROM contracts c JOIN contract_approvals ca ON c.id = ca.contract_id WHERE ca.status = 'Active'),
				(SELECT COUNT(*) FROM contract_approvals WHERE status = 'Active')`,
		).Scan(&d.TotalUsers, &d.TotalActiveContracts, &d.PendingApprovals)
	})

	if err != nil {
		return contract.AdminDashboard{}, err
	}
	return d, nil
}

// Metrics is the admin landing-page summary.
type Metrics struct {
	TotalVendors    int      `json:"totalVendors"`
	ActiveContracts int      `json:"activeContracts"`
	PurchaseOrders  int      `json:"purchaseOrders"`
	AverageRating   *float64 `json:"averageRating"`
}

func (r *DashboardsRepo) Metrics(ctx context.Context) (Metrics, error) {
	var m Metrics

	err := observe(r.prom, "dashboards.metrics", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT
				(SELECT COUNT(*) FROM vendors),
				(SELECT COUNT(*) FROM contracts WHERE start_date <= CURRENT_DATE AND end_date >= CURRENT_DATE),
				(SELECT COUNT(*) FROM purchase_orders),
				(SELECT AVG(performance_rating) FROM contracts WHERE performance_rating IS NOT NULL)`,
		).Scan(&m.TotalVendors, &m.ActiveContracts, &m.PurchaseOrders, &m.AverageRating)
	})

	if err != nil {
		return Metrics{}, err
	}
	return m, nil
}

// OrderStatusCounts groups purchase orders by their status string.
func (r *DashboardsRepo) OrderStatusCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT status, COUNT(*) FROM purchase_orders GROUP BY status`,
	)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make(map[string]int)

	for rows.Next() {
		var status string
		var count int

		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		out[status] = count
	}
	return out, rows.Err()
}
