//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"
const TestPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, role, display_name, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) DO NOTHING",
		userID, email, TestPasswordHash, role, "Test User")
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND is_active = true", email).Scan(&userID)
	}

	return userID
}

func CreateTestProduct(t *testing.T, db DBLike, name, category string, priceCents int64) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO products (id, name, category, price_cents, in_stock) VALUES ($1, $2, $3, $4, true)",
		productID, name, category, priceCents)
	require.NoError(t, err)

	return productID
}

// CreateTestRentableProduct inserts a product that can also be rented.
func CreateTestRentableProduct(t *testing.T, db DBLike, name, category string, priceCents, rentPriceCents, depositCents int64) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO products (id, name, category, price_cents, rent_price_cents, security_deposit_cents, in_stock) VALUES ($1, $2, $3, $4, $5, $6, true)",
		productID, name, category, priceCents, rentPriceCents, depositCents)
	require.NoError(t, err)

	return productID
}

func SetProductStock(t *testing.T, db DBLike, productID uuid.UUID, inStock bool) {
	t.Helper()

	_, err := db.Exec(context.Background(), "UPDATE products SET in_stock = $1, updated_at = now() WHERE id = $2", inStock, productID)
	require.NoError(t, err)
}

func CreateTestCoupon(t *testing.T, db DBLike, code string, amountOffCents, minOrderCents int64) uuid.UUID {
	t.Helper()

	couponID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO coupons (id, code, amount_off_cents, min_order_cents) VALUES ($1, $2, $3, $4)",
		couponID, code, amountOffCents, minOrderCents)
	require.NoError(t, err)

	return couponID
}

func CreateTestPercentCoupon(t *testing.T, db DBLike, code string, percentOff float64, minOrderCents int64) uuid.UUID {
	t.Helper()

	couponID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO coupons (id, code, percent_off, min_order_cents) VALUES ($1, $2, $3, $4)",
		couponID, code, percentOff, minOrderCents)
	require.NoError(t, err)

	return couponID
}

func UpdateStoreSettings(t *testing.T, db DBLike, taxRatePercent float64, freeShippingThresholdCents, shippingFeeCents int64, codEnabled bool) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE store_settings SET tax_rate_percent = $1, free_shipping_threshold_cents = $2, shipping_fee_cents = $3, cod_enabled = $4, updated_at = now() WHERE id = TRUE",
		taxRatePercent, freeShippingThresholdCents, shippingFeeCents, codEnabled)
	require.NoError(t, err)
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	// The settings row normally comes from the migration; after a
	// TRUNCATE it has to be put back.
	_, err := pool.Exec(ctx, `INSERT INTO store_settings DEFAULT VALUES ON CONFLICT (id) DO NOTHING;`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
