package postgres

import (
	"context"

	"github.com/corpvm/vendorhub/internal/domain/department"
	"github.com/corpvm/vendorhub/internal/observability"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DepartmentsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewDepartmentsRepo(pool *pgxpool.Pool, prom *observability.Prom) *DepartmentsRepo {
	return &DepartmentsRepo{pool: pool, prom: prom}
}

func (r *DepartmentsRepo) List(ctx context.Context) ([]department.Department, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, name, budget FROM departments ORDER BY id`,
	)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]department.Department, 0)

	for rows.Next() {
		var d department.Department

		if err := rows.Scan(&d.ID, &d.Name, &d.Budget); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// AdjustBudget applies the delta inside the UPDATE itself so concurrent
// adjustments cannot lose writes; the value is never read back into the
// application first.
func (r *DepartmentsRepo) AdjustBudget(ctx context.Context, departmentID int64, action department.BudgetAction, amount float64) error {
	query := `UPDATE departments SET budget = budget + $1 WHERE id = $2`

	if action == department.ActionDecrease {
		query = `UPDATE departments SET budget = budget - $1 WHERE id = $2`
	}

	return observe(r.prom, "departments.adjust_budget", func() error {
		tag, err := r.pool.Exec(ctx, query, amount, departmentID)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return department.ErrNotFound
		}
		return nil
	})
}
