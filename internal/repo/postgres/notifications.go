package postgres

import (
	"context"

	"github.com/corpvm/vendorhub/internal/domain/notification"
	"github.com/corpvm/vendorhub/internal/domain/user"
	"github.com/corpvm/vendorhub/internal/observability"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewNotificationsRepo(pool *pgxpool.Pool, prom *observability.Prom) *NotificationsRepo {
	return &NotificationsRepo{pool: pool, prom: prom}
}

// Create persists the notification; delivery is at rest in the store,
// there is no push fan-out.
func (r *NotificationsRepo) Create(ctx context.Context, req notification.SendRequest) (notification.Notification, error) {
	var n notification.Notification

	err := observe(r.prom, "notifications.create", func() error {
		return r.pool.QueryRow(
			ctx,
			`INSERT INTO notifications (user_id, related_entity, message)
			 VALUES ($1, $2, $3)
			 RETURNING id, user_id, related_entity, message, date`,
			req.UserID, req.RelatedEntity, req.Message,
		).Scan(&n.ID, &n.UserID, &n.RelatedEntity, &n.Message, &n.Date)
	})

	if err != nil {
		if IsForeignKeyViolation(err) {
			return notification.Notification{}, ErrUserNotFound
		}
		return notification.Notification{}, err
	}
	return n, nil
}

func (r *NotificationsRepo) ListAll(ctx context.Context) ([]notification.Row, error) {
	return r.scanRows(ctx,
		`SELECT id, message, date
		 FROM notifications
		 ORDER BY date DESC, id DESC`,
	)
}

// ListByRole joins the recipient and filters on their role.
func (r *NotificationsRepo) ListByRole(ctx context.Context, role user.Role) ([]notification.Row, error) {
	return r.scanRows(ctx,
		`SELECT n.id, n.message, n.date
		 FROM notifications n
		 JOIN users u ON n.user_id = u.id
		 WHERE u.role = $1
		 ORDER BY n.date DESC, n.id DESC`,
		role,
	)
}

func (r *NotificationsRepo) scanRows(ctx context.Context, query string, args ...any) ([]notification.Row, error) {
	rows, err := r.pool.Query(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]notification.Row, 0)

	for rows.Next() {
		var row notification.Row

		if err := rows.Scan(&row.NotificationID, &row.Message, &row.Date); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
