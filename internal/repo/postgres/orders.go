package postgres

import (
	"context"

	"github.com/corpvm/vendorhub/internal/domain/procurement"
	"github.com/corpvm/vendorhub/internal/observability"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrdersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewOrdersRepo(pool *pgxpool.Pool, prom *observability.Prom) *OrdersRepo {
	return &OrdersRepo{pool: pool, prom: prom}
}

// Create inserts with the status left to the store default (Pending).
func (r *OrdersRepo) Create(ctx context.Context, req procurement.CreateOrderRequest) (procurement.Order, error) {
	var o procurement.Order

	err := observe(r.prom, "orders.create", func() error {
		return r.pool.QueryRow(
			ctx,
			`INSERT INTO purchase_orders (vendor_id, item_details, quantity, total_cost)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, vendor_id, item_details, quantity, total_cost, status`,
			req.VendorID, req.ItemDetails, req.Quantity, req.TotalCost,
		).Scan(&o.ID, &o.VendorID, &o.ItemDetails, &o.Quantity, &o.TotalCost, &o.Status)
	})

	if err != nil {
		return procurement.Order{}, err
	}
	return o, nil
}

func (r *OrdersRepo) List(ctx context.Context) ([]procurement.Row, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT
			po.id,
			v.name,
			po.item_details,
			po.quantity,
			ROUND(po.total_cost, 2),
			po.status
		 FROM purchase_orders po
		 JOIN vendors v ON po.vendor_id = v.id
		 ORDER BY po.id`,
	)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]procurement.Row, 0)

	for rows.Next() {
		var row procurement.Row

		err = rows.Scan(&row.POID, &row.VendorName, &row.ItemDetails, &row.Quantity, &row.TotalCost, &row.Status)

		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *OrdersRepo) ListByVendor(ctx context.Context, vendorID int64) ([]procurement.Order, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, vendor_id, item_details, quantity, total_cost, status
		 FROM purchase_orders
		 WHERE vendor_id = $1
		 ORDER BY id`,
		vendorID,
	)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]procurement.Order, 0)

	for rows.Next() {
		var o procurement.Order

		err = rows.Scan(&o.ID, &o.VendorID, &o.ItemDetails, &o.Quantity, &o.TotalCost, &o.Status)

		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateStatus accepts any status string; see the domain note on why the
// value set stays open.
func (r *OrdersRepo) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	return observe(r.prom, "orders.update_status", func() error {
		tag, err := r.pool.Exec(
			ctx,
			`UPDATE purchase_orders SET status = $1 WHERE id = $2`,
			status, orderID,
		)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return procurement.ErrNotFound
		}
		return nil
	})
}

// Completion counts fulfilled vs total orders for one vendor in a single
// scan; the zero-order division guard lives on the domain type.
func (r *OrdersRepo) Completion(ctx context.Context, vendorID int64) (procurement.Completion, error) {
	var c procurement.Completion

	err := observe(r.prom, "orders.completion", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT
				COUNT(*),
				COUNT(*) FILTER (WHERE status = $2)
			 FROM purchase_orders
			 WHERE vendor_id = $1`,
			vendorID, procurement.StatusFulfilled,
		).Scan(&c.Total, &c.Fulfilled)
	})

	if err != nil {
		return procurement.Completion{}, err
	}
	return c, nil
}
