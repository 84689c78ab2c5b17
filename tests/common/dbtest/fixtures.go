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

	"wedding-booking/internal/domain/booking"
	"wedding-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CreateTestBooking inserts the builder's booking as-is, bypassing the lifecycle rules.
func CreateTestBooking(t *testing.T, db DBLike, b *builder.BookingBuilder) uuid.UUID {
	t.Helper()

	s := b.BuildSnapshot()
	var quoted *int64
	if s.QuotedAmount != nil {
		q := s.QuotedAmount.Minor()
		quoted = &q
	}

	_, err := db.Exec(context.Background(), `
		INSERT INTO bookings (id, couple_id, vendor_id, service_type, status, event_date, quoted_amount_minor,
			total_paid_minor, vendor_completed, vendor_completed_at, couple_completed, couple_completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		s.ID, s.CoupleID, s.VendorID, s.ServiceType, s.Status.String(), s.EventDate, quoted,
		s.TotalPaid.Minor(), s.VendorCompleted, s.VendorCompletedAt, s.CoupleCompleted, s.CoupleCompletedAt,
		s.CreatedAt, s.UpdatedAt)
	require.NoError(t, err)

	return s.ID
}

// BookingState is the stored status and paid total of one booking.
func BookingState(t *testing.T, db DBLike, id uuid.UUID) (booking.Status, int64) {
	t.Helper()

	var (
		status    string
		totalPaid int64
	)
	err := db.QueryRow(context.Background(), "SELECT status, total_paid_minor FROM bookings WHERE id = $1", id).Scan(&status, &totalPaid)
	require.NoError(t, err)
	return booking.Status(status), totalPaid
}

func CountRows(t *testing.T, db DBLike, table string, bookingID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM "+table+" WHERE booking_id = $1", bookingID).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables except the migration bookkeeping
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
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
