package postgres

import (
	"context"
	"time"

	"github.com/corpvm/vendorhub/internal/domain/contract"
	"github.com/corpvm/vendorhub/internal/observability"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContractsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewContractsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ContractsRepo {
	return &ContractsRepo{pool: pool, prom: prom}
}

func (r *ContractsRepo) Create(ctx context.Context, vendorID int64, startDate, endDate time.Time, terms string) (contract.Contract, error) {
	var c contract.Contract

	err := observe(r.prom, "contracts.create", func() error {
		return r.pool.QueryRow(
			ctx,
			`INSERT INTO contracts (vendor_id, start_date, end_date, terms)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, vendor_id, start_date, end_date, terms, performance_rating`,
			vendorID, startDate, endDate, terms,
		).Scan(&c.ID, &c.VendorID, &c.StartDate, &c.EndDate, &c.Terms, &c.PerformanceRating)
	})

	if err != nil {
		return contract.Contract{}, err
	}
	return c, nil
}

// List left-joins the approval record so contracts that were never
// reviewed still appear, with a NULL status.
func (r *ContractsRepo) List(ctx context.Context) ([]contract.Row, error) {
	var out []contract.Row

	err := observe(r.prom, "contracts.list", func() error {
		rows, err := r.pool.Query(
			ctx,
			`SELECT
				c.id,
				v.name,
				c.start_date,
				c.end_date,
				c.terms,
				c.performance_rating,
				ca.status,
				ca.notes
			 FROM contracts c
			 JOIN vendors v ON c.vendor_id = v.id
			 LEFT JOIN contract_approvals ca ON c.id = ca.contract_id
			 ORDER BY c.start_date DESC, c.id DESC`,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]contract.Row, 0)

		for rows.Next() {
			var row contract.Row

			err = rows.Scan(
				&row.ContractID,
				&row.VendorName,
				&row.StartDate,
				&row.EndDate,
				&row.Terms,
				&row.PerformanceRating,
				&row.Status,
				&row.Notes,
			)

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

// Approve upserts the single status record per contract. A repeat call
// overwrites status, notes and the approval date ("today" at call time).
func (r *ContractsRepo) Approve(ctx context.Context, contractID int64, status, notes string) error {
	return observe(r.prom, "contracts.approve", func() error {
		_, err := r.pool.Exec(
			ctx,
			`INSERT INTO contract_approvals (contract_id, status, approval_date, notes)
			 VALUES ($1, $2, CURRENT_DATE, $3)
			 ON CONFLICT (contract_id) DO UPDATE SET
				status = EXCLUDED.status,
				approval_date = EXCLUDED.approval_date,
				notes = EXCLUDED.notes`,
			contractID, status, notes,
		)

		if IsForeignKeyViolation(err) {
			return contract.ErrNotFound
		}
		return err
	})
}
