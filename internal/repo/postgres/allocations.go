package postgres

import (
	"context"

	"github.com/corpvm/vendorhub/internal/domain/finance"
	"github.com/corpvm/vendorhub/internal/observability"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FinanceRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewFinanceRepo(pool *pgxpool.Pool, prom *observability.Prom) *FinanceRepo {
	return &FinanceRepo{pool: pool, prom: prom}
}

func (r *FinanceRepo) CreateAllocation(ctx context.Context, req finance.CreateAllocationRequest) (finance.Allocation, error) {
	var a finance.Allocation

	err := observe(r.prom, "finance.create_allocation", func() error {
		return r.pool.QueryRow(
			ctx,
			`INSERT INTO budget_allocations (department_id, vendor_id, amount_allocated)
			 VALUES ($1, $2, $3)
			 RETURNING id, department_id, vendor_id, amount_allocated, allocation_date`,
			req.DepartmentID, req.VendorID, req.Amount,
		).Scan(&a.ID, &a.DepartmentID, &a.VendorID, &a.AmountAllocated, &a.AllocationDate)
	})

	if err != nil {
		return finance.Allocation{}, err
	}
	return a, nil
}

func (r *FinanceRepo) ListAllocations(ctx context.Context) ([]finance.AllocationRow, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT
			ba.id,
			d.name,
			v.name,
			ba.amount_allocated,
			ba.allocation_date
		 FROM budget_allocations ba
		 JOIN departments d ON ba.department_id = d.id
		 JOIN vendors v ON ba.vendor_id = v.id
		 ORDER BY ba.allocation_date DESC, ba.id DESC`,
	)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]finance.AllocationRow, 0)

	for rows.Next() {
		var row finance.AllocationRow

		err = rows.Scan(&row.AllocationID, &row.DepartmentName, &row.VendorName, &row.AmountAllocated, &row.AllocationDate)

		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListWithExpenses groups expenses per allocation. Department and vendor
// names come from correlated subqueries, and an allocation with no
// expenses coalesces to a 0 total.
func (r *FinanceRepo) ListWithExpenses(ctx context.Context) ([]finance.AllocationWithExpenses, error) {
	var out []finance.AllocationWithExpenses

	err := observe(r.prom, "finance.list_with_expenses", func() error {
		rows, err := r.pool.Query(
			ctx,
			`SELECT
				ba.id,
				(SELECT name FROM departments WHERE id = ba.department_id),
				(SELECT name FROM vendors WHERE id = ba.vendor_id),
				ROUND(ba.amount_allocated, 2),
				COALESCE(SUM(e.amount_spent), 0)
			 FROM budget_allocations ba
			 LEFT JOIN expenses e ON ba.id = e.allocation_id
			 GROUP BY ba.id, ba.department_id, ba.vendor_id, ba.amount_allocated
			 ORDER BY ba.id`,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]finance.AllocationWithExpenses, 0)

		for rows.Next() {
			var row finance.AllocationWithExpenses

			err = rows.Scan(&row.AllocationID, &row.DepartmentName, &row.VendorName, &row.AmountAllocated, &row.TotalExpenses)

			if err != nil {
				return err
			}
			out = append(out, row)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

// RecordExpense inserts and returns the generated expense id.
func (r *FinanceRepo) RecordExpense(ctx context.Context, allocationID int64, amountSpent float64) (int64, error) {
	var id int64

	err := observe(r.prom, "finance.record_expense", func() error {
		return r.pool.QueryRow(
			ctx,
			`INSERT INTO expenses (allocation_id, amount_spent)
			 VALUES ($1, $2)
			 RETURNING id`,
			allocationID, amountSpent,
		).Scan(&id)
	})

	if err != nil {
		if IsForeignKeyViolation(err) {
			return 0, finance.ErrNotFound
		}
		return 0, err
	}
	return id, nil
}

// Dashboard sums the allocated budget and spent totals; both coalesce to
// 0 over an empty store.
func (r *FinanceRepo) Dashboard(ctx context.Context) (finance.Dashboard, error) {
	var totalBudget, totalExpenses float64

	err := observe(r.prom, "finance.dashboard", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT
				COALESCE(SUM(ba.amount_allocated), 0),
				COALESCE((SELECT SUM(amount_spent) FROM expenses), 0)
			 FROM budget_allocations ba`,
		).Scan(&totalBudget, &totalExpenses)
	})

	if err != nil {
		return finance.Dashboard{}, err
	}
	return finance.NewDashboard(totalBudget, totalExpenses), nil
}
