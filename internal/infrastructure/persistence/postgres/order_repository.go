package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/domain"
	"github.com/jackc/pgx/v5"
)

const orderColumns = `
	id, fingerprint, user_id, course_id, gateway, external_id,
	amount::text, currency, status, gateway_payload, entitlements_granted_at,
	created_at, updated_at`

type OrderRepository struct {
	db Executor
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db.Pool}
}

var _ application.OrderRepository = (*OrderRepository)(nil)

// FindByFingerprint retrieves the order reserved for a fingerprint
func (r *OrderRepository) FindByFingerprint(ctx context.Context, fingerprint string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE fingerprint = $1`
	return scanOrder(r.db.QueryRow(ctx, query, fingerprint))
}

// FindByID retrieves an order
func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrder(r.db.QueryRow(ctx, query, id))
}

// FindByExternalID retrieves an order by its gateway order id
func (r *OrderRepository) FindByExternalID(ctx context.Context, externalID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE external_id = $1 ORDER BY id LIMIT 1`
	return scanOrder(r.db.QueryRow(ctx, query, externalID))
}

func (r *OrderRepository) InsertIfAbsent(ctx context.Context, order *domain.Order) (int64, bool, error) {
	m, err := toOrderModel(order)
	if err != nil {
		return 0, false, err
	}

	query := `
		INSERT INTO orders (
			fingerprint, user_id, course_id, gateway, external_id,
			amount, currency, status, gateway_payload, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6::text::numeric, $7, $8, $9, $10, $11)
		ON CONFLICT (fingerprint) DO NOTHING
		RETURNING id
	`

	var id int64
	err = r.db.QueryRow(ctx, query,
		m.Fingerprint,
		m.UserID,
		m.CourseID,
		m.Gateway,
		m.ExternalID,
		m.Amount,
		m.Currency,
		m.Status,
		m.GatewayPayload,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("insert order: %w", err)
	}

	// The fingerprint is already held by another row.
	err = r.db.QueryRow(ctx, `SELECT id FROM orders WHERE fingerprint = $1`, m.Fingerprint).Scan(&id)
	if err != nil {
		return 0, false, fmt.Errorf("read order holding fingerprint: %w", err)
	}
	return id, false, nil
}

func (r *OrderRepository) CompareAndSetStatus(
	ctx context.Context,
	id int64,
	expected, next domain.OrderStatus,
	externalID *string,
	payload domain.GatewayPayload,
) (bool, error) {
	raw, err := payload.Encode()
	if err != nil {
		return false, err
	}

	query := `
		UPDATE orders
		SET status = $3,
			external_id = COALESCE(external_id, $4::varchar),
			gateway_payload = COALESCE($5::jsonb, gateway_payload),
			updated_at = NOW()
		WHERE id = $1
		  AND status = $2
		  AND ($4::varchar IS NULL OR external_id IS NULL OR external_id = $4::varchar)
	`

	tag, err := r.db.Exec(ctx, query, id, string(expected), string(next), externalID, raw)
	if err != nil {
		return false, fmt.Errorf("update order %d status: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *OrderRepository) MarkEntitlementsGranted(ctx context.Context, id int64) error {
	query := `
		UPDATE orders
		SET entitlements_granted_at = COALESCE(entitlements_granted_at, NOW()),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark order %d granted: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewOrderNotFoundError(id)
	}
	return nil
}

// FindUngranted returns completed orders whose entitlements were never
// recorded. Orders changed within minAge are left to the call that
// completed them.
func (r *OrderRepository) FindUngranted(ctx context.Context, minAge time.Duration, limit int) ([]*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE status = 'completed'
		  AND entitlements_granted_at IS NULL
		  AND updated_at <= NOW() - make_interval(secs => $1)
		ORDER BY id ASC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, minAge.Seconds(), limit)
	if err != nil {
		return nil, fmt.Errorf("query ungranted orders: %w", err)
	}
	return collectOrders(rows)
}

func (r *OrderRepository) List(ctx context.Context, filter application.OrderFilter) ([]*domain.Order, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.BuyerID != nil {
		add("user_id = $%d", int64(*filter.BuyerID))
	}
	if filter.CourseID != nil {
		add("course_id = $%d", *filter.CourseID)
	}
	if filter.Status != nil {
		add("status = $%d", string(*filter.Status))
	}
	if filter.Gateway != nil {
		add("gateway = $%d", *filter.Gateway)
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + orderColumns + ` FROM orders`)
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC, id DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]*domain.Order, error) {
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Order, error) {
		m, err := scanOrderModel(row)
		if err != nil {
			return nil, err
		}
		return toDomainOrder(m)
	})
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}
	return results, nil
}

func scanOrderModel(row pgx.Row) (OrderModel, error) {
	var m OrderModel
	err := row.Scan(
		&m.ID, &m.Fingerprint, &m.UserID, &m.CourseID, &m.Gateway, &m.ExternalID,
		&m.Amount, &m.Currency, &m.Status, &m.GatewayPayload, &m.EntitlementsGrantedAt,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// scanOrder converts a database row into a domain Order.
// Returns an error wrapping domain.ErrOrderNotFound if the row doesn't exist.
func scanOrder(row pgx.Row) (*domain.Order, error) {
	m, err := scanOrderModel(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("scan order: %w", domain.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return toDomainOrder(m)
}
