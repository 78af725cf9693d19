package repository

import (
	"context"
	"time"

	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/infra/db"

	"github.com/google/uuid"
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

const tryInsertIdempotencySQL = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, user_id) DO NOTHING`

// TryInsert registers a new processing key. A conflicting row is not an
// error here; callers re-read the record to decide replay vs. conflict.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	if _, err := tx.Exec(ctx, tryInsertIdempotencySQL, key, userID, endpoint, requestHash, expiresAt); err != nil {
		return infra.WrapRepoErr("failed to register idempotency key", err, infra.ClassifyPgError(err))
	}
	return nil
}

const completeIdempotencySQL = `
UPDATE idempotency_keys
SET status = 'completed', response_body_hash = $3, result_order_id = $4, updated_at = now()
WHERE key = $1 AND user_id = $2`

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, resultHash string, orderID uuid.UUID) error {
	tag, err := tx.Exec(ctx, completeIdempotencySQL, key, userID, resultHash, orderID)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}

const claimExpiredIdempotencySQL = `
UPDATE idempotency_keys
SET request_hash = $3, status = 'processing', response_body_hash = NULL,
    result_order_id = NULL, expires_at = $4, updated_at = now()
WHERE key = $1 AND user_id = $2 AND expires_at < now()`

// ClaimExpiredIdempotencyKey takes over an expired key for a fresh attempt.
// Returns the number of rows claimed (0 means the key is still live).
func (r *IdempotencyRepository) ClaimExpiredIdempotencyKey(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, claimExpiredIdempotencySQL, key, userID, requestHash, expiresAt)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}
	return tag.RowsAffected(), nil
}
