package postgres

import (
	"context"

	"github.com/corpvm/vendorhub/internal/domain/vendor"
	"github.com/corpvm/vendorhub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VendorsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewVendorsRepo(pool *pgxpool.Pool, prom *observability.Prom) *VendorsRepo {
	return &VendorsRepo{pool: pool, prom: prom}
}

func (r *VendorsRepo) List(ctx context.Context) ([]vendor.Vendor, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, name, contact_info, service_category, compliance_certification
		 FROM vendors
		 ORDER BY id`,
	)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]vendor.Vendor, 0)

	for rows.Next() {
		var v vendor.Vendor

		err = rows.Scan(&v.ID, &v.Name, &v.ContactInfo, &v.ServiceCategory, &v.ComplianceCertification)

		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// CreateTx inserts the vendor half of a vendor signup inside the same
// transaction as the user insert.
func (r *VendorsRepo) CreateTx(ctx context.Context, tx pgx.Tx, v vendor.Vendor) (vendor.Vendor, error) {
	err := observe(r.prom, "vendors.create_tx", func() error {
		return tx.QueryRow(
			ctx,
			`INSERT INTO vendors (name, contact_info, service_category, compliance_certification)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			v.Name, v.ContactInfo, v.ServiceCategory, v.ComplianceCertification,
		).Scan(&v.ID)
	})

	if err != nil {
		return vendor.Vendor{}, err
	}
	return v, nil
}

// ListWithRatings averages the three evaluation ratings per vendor.
// Vendors with no evaluations keep a NULL average instead of being
// dropped, hence the left join.
func (r *VendorsRepo) ListWithRatings(ctx context.Context) ([]vendor.WithRating, error) {
	var out []vendor.WithRating

	err := observe(r.prom, "vendors.list_with_ratings", func() error {
		rows, err := r.pool.Query(
			ctx,
			`SELECT
				v.id,
				v.name,
				v.service_category,
				'Active' AS status,
				AVG((vp.quality_rating + vp.pricing_rating + vp.timeliness_rating) / 3.0)
			 FROM vendors v
			 LEFT JOIN vendor_performance vp ON v.id = vp.vendor_id
			 GROUP BY v.id, v.name, v.service_category
			 ORDER BY v.id`,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]vendor.WithRating, 0)

		for rows.Next() {
			var w vendor.WithRating

			if err := rows.Scan(&w.ID, &w.Name, &w.ServiceCategory, &w.Status, &w.AverageRating); err != nil {
				return err
			}
			out = append(out, w)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

// PerformanceRows is the chart feed: vendor name plus averaged rating,
// best first. NULL averages sort last.
func (r *VendorsRepo) PerformanceRows(ctx context.Context) ([]vendor.PerformanceRow, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT
			v.name,
			AVG(vp.quality_rating + vp.pricing_rating + vp.timeliness_rating) / 3.0
		 FROM vendors v
		 LEFT JOIN vendor_performance vp ON v.id = vp.vendor_id
		 GROUP BY v.id, v.name
		 ORDER BY 2 DESC NULLS LAST`,
	)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]vendor.PerformanceRow, 0)

	for rows.Next() {
		var p vendor.PerformanceRow

		if err := rows.Scan(&p.Name, &p.AvgRating); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
