package postgres

import (
	"context"
	"errors"

	"github.com/corpvm/vendorhub/internal/domain/evaluation"
	"github.com/corpvm/vendorhub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EvaluationsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewEvaluationsRepo(pool *pgxpool.Pool, prom *observability.Prom) *EvaluationsRepo {
	return &EvaluationsRepo{pool: pool, prom: prom}
}

// Create inserts with the evaluation date defaulted by the store.
func (r *EvaluationsRepo) Create(ctx context.Context, req evaluation.CreateEvaluationRequest) (evaluation.Evaluation, error) {
	var e evaluation.Evaluation

	err := observe(r.prom, "evaluations.create", func() error {
		return r.pool.QueryRow(
			ctx,
			`INSERT INTO vendor_performance
				(vendor_id, quality_rating, pricing_rating, timeliness_rating, performance_summary)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, vendor_id, quality_rating, pricing_rating, timeliness_rating, performance_summary, evaluation_date`,
			req.VendorID, req.QualityRating, req.PricingRating, req.TimelinessRating, req.PerformanceSummary,
		).Scan(&e.ID, &e.VendorID, &e.QualityRating, &e.PricingRating, &e.TimelinessRating, &e.PerformanceSummary, &e.EvaluationDate)
	})

	if err != nil {
		return evaluation.Evaluation{}, err
	}
	return e, nil
}

func (r *EvaluationsRepo) List(ctx context.Context) ([]evaluation.Row, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT
			vp.id,
			v.name,
			vp.quality_rating,
			vp.pricing_rating,
			vp.timeliness_rating,
			vp.performance_summary,
			vp.evaluation_date
		 FROM vendor_performance vp
		 JOIN vendors v ON vp.vendor_id = v.id
		 ORDER BY vp.evaluation_date DESC, vp.id DESC`,
	)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]evaluation.Row, 0)

	for rows.Next() {
		var row evaluation.Row

		err = rows.Scan(
			&row.EvaluationID,
			&row.VendorName,
			&row.QualityRating,
			&row.PricingRating,
			&row.TimelinessRating,
			&row.PerformanceSummary,
			&row.EvaluationDate,
		)

		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// LatestForVendor returns the most recent evaluation's ratings, or
// ErrNotFound when the vendor was never evaluated.
func (r *EvaluationsRepo) LatestForVendor(ctx context.Context, vendorID int64) (evaluation.Snapshot, error) {
	var s evaluation.Snapshot

	err := observe(r.prom, "evaluations.latest_for_vendor", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT quality_rating, pricing_rating, timeliness_rating
			 FROM vendor_performance
			 WHERE vendor_id = $1
			 ORDER BY evaluation_date DESC, id DESC
			 LIMIT 1`,
			vendorID,
		).Scan(&s.QualityRating, &s.PricingRating, &s.TimelinessRating)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return evaluation.Snapshot{}, evaluation.ErrNotFound
		}
		return evaluation.Snapshot{}, err
	}
	return s, nil
}
