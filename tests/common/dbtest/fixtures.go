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

// CreateTestEquipment inserts an equipment row owned by ownerID and returns
// its id.
func CreateTestEquipment(t *testing.T, db DBLike, name string, totalQuantity int, ownerID uuid.UUID) uuid.UUID {
	t.Helper()

	equipmentID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO equipment (id, name, total_quantity, owner_id) VALUES ($1, $2, $3, $4)",
		equipmentID, name, totalQuantity, ownerID)
	require.NoError(t, err)

	return equipmentID
}

// CreateTestBooking inserts a settled booking row directly, bypassing the
// usecase layer, for seeding contention scenarios.
func CreateTestBooking(t *testing.T, db DBLike, equipmentID, renterID, ownerID uuid.UUID, status string, dates []string, amountCents int64) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO bookings
			(id, equipment_id, renter_id, owner_id, booked_dates, start_date, end_date,
			 total_amount_cents, status, payment_status, is_payment_hold)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'pending', FALSE)`,
		bookingID, equipmentID, renterID, ownerID, dates, dates[0], dates[len(dates)-1],
		amountCents, status)
	require.NoError(t, err)

	return bookingID
}

// no reference data: equipment and bookings are seeded per test
func SeedReferenceData(_ *pgxpool.Pool) error {
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
