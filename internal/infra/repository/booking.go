package repository

import (
	"context"
	"log/slog"
	"time"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/infra"
	"wedding-booking/internal/infra/db"
	"wedding-booking/internal/pkg/pgconv"
	"wedding-booking/internal/pkg/ptr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingColumns is the select list ScanBooking expects.
const BookingColumns = `id, couple_id, vendor_id, service_type, status, event_date, quoted_amount_minor, total_paid_minor,
	vendor_completed, vendor_completed_at, couple_completed, couple_completed_at, created_at, updated_at`

const insertBooking = `INSERT INTO bookings (` + BookingColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

const selectBooking = `SELECT ` + BookingColumns + ` FROM bookings WHERE id = $1`

// The WHERE clause is the compare-and-swap: status and total as observed at load.
const updateBookingGuarded = `UPDATE bookings SET
	status = $4,
	event_date = $5,
	quoted_amount_minor = $6,
	total_paid_minor = $7,
	vendor_completed = $8,
	vendor_completed_at = $9,
	couple_completed = $10,
	couple_completed_at = $11,
	updated_at = $12
WHERE id = $1 AND status = $2 AND total_paid_minor = $3`

type BookingRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBookingRepository(dbtx db.DBTX, logger *slog.Logger) *BookingRepository {
	return &BookingRepository{
		db:     dbtx,
		logger: logger,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	s := b.Snapshot()
	_, err := r.db.Exec(ctx, insertBooking,
		s.ID, s.CoupleID, s.VendorID, s.ServiceType, s.Status.String(), pgconv.DateToPgtype(s.EventDate),
		quotedToPgtype(s.QuotedAmount), s.TotalPaid.Minor(),
		s.VendorCompleted, pgconv.TimePtrToPgtype(s.VendorCompletedAt),
		s.CoupleCompleted, pgconv.TimePtrToPgtype(s.CoupleCompletedAt),
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "booking already exists", err)
		}
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Load(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	snap, err := ScanBooking(r.db.QueryRow(ctx, selectBooking, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to load booking", err)
	}

	b, err := booking.ReconstructBooking(snap)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "stored booking is inconsistent", err)
	}
	return b, nil
}

func (r *BookingRepository) Save(ctx context.Context, b *booking.Booking, expected booking.Guard) error {
	s := b.Snapshot()
	tag, err := r.db.Exec(ctx, updateBookingGuarded,
		s.ID, expected.Status.String(), expected.TotalPaid.Minor(),
		s.Status.String(), pgconv.DateToPgtype(s.EventDate),
		quotedToPgtype(s.QuotedAmount), s.TotalPaid.Minor(),
		s.VendorCompleted, pgconv.TimePtrToPgtype(s.VendorCompletedAt),
		s.CoupleCompleted, pgconv.TimePtrToPgtype(s.CoupleCompletedAt),
		s.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to save booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindConflict, "booking changed since load", nil)
	}
	return nil
}

// ScanBooking reads one row selected with BookingColumns.
func ScanBooking(row pgx.Row) (booking.Snapshot, error) {
	var (
		s                    booking.Snapshot
		status               string
		eventDate            pgtype.Date
		quoted               pgtype.Int8
		totalPaid            int64
		vendorAt, coupleAt   pgtype.Timestamptz
		createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&s.ID, &s.CoupleID, &s.VendorID, &s.ServiceType, &status, &eventDate, &quoted, &totalPaid,
		&s.VendorCompleted, &vendorAt, &s.CoupleCompleted, &coupleAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return booking.Snapshot{}, err
	}

	s.Status = booking.Status(status)
	s.EventDate = pgconv.DateFromPgtype(eventDate)
	if q := pgconv.Int64PtrFromPgtype(quoted); q != nil {
		m := booking.NewMoney(*q)
		s.QuotedAmount = &m
	}
	s.TotalPaid = booking.NewMoney(totalPaid)
	s.VendorCompletedAt = pgconv.TimePtrFromPgtype(vendorAt)
	s.CoupleCompletedAt = pgconv.TimePtrFromPgtype(coupleAt)
	s.CreatedAt = createdAt.UTC()
	s.UpdatedAt = updatedAt.UTC()
	return s, nil
}

func quotedToPgtype(m *booking.Money) pgtype.Int8 {
	if m == nil {
		return pgtype.Int8{}
	}
	return pgconv.Int64PtrToPgtype(ptr.Of(m.Minor()))
}
