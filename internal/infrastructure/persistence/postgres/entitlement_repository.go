package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/domain"
	"github.com/jackc/pgx/v5"
)

// EntitlementRepository grants course access by writing user_entitlements rows.
type EntitlementRepository struct {
	db     Executor
	logger *slog.Logger
}

func NewEntitlementRepository(db *DB, logger *slog.Logger) *EntitlementRepository {
	return &EntitlementRepository{db: db.Pool, logger: logger}
}

var _ application.EntitlementGranter = (*EntitlementRepository)(nil)

func (r *EntitlementRepository) Grant(ctx context.Context, userID domain.BuyerID, entitlementID, source string) error {
	query := `
		INSERT INTO user_entitlements (user_id, entitlement_id, source)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, entitlement_id) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query, int64(userID), entitlementID, source)
	if err != nil {
		return fmt.Errorf("grant entitlement %s to user %d: %w", entitlementID, userID, err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug("entitlement already held",
			"user_id", int64(userID),
			"entitlement_id", entitlementID,
		)
	}
	return nil
}

// ListForUser returns the entitlement ids a user holds, oldest first.
func (r *EntitlementRepository) ListForUser(ctx context.Context, userID domain.BuyerID) ([]string, error) {
	query := `
		SELECT entitlement_id FROM user_entitlements
		WHERE user_id = $1
		ORDER BY granted_at ASC, entitlement_id ASC
	`

	rows, err := r.db.Query(ctx, query, int64(userID))
	if err != nil {
		return nil, fmt.Errorf("query entitlements for user %d: %w", userID, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan entitlements: %w", err)
	}
	return ids, nil
}
