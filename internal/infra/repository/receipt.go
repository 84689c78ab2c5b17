package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/infra"
	"wedding-booking/internal/infra/db"
	"wedding-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const receiptPaymentIDConstraint = "receipts_payment_id_key"

// ReceiptColumns is the select list ScanReceipt expects.
const ReceiptColumns = `id, booking_id, payment_id, number, amount_minor, payment_type, issued_at`

const insertReceipt = `INSERT INTO receipts (` + ReceiptColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

const selectReceiptByPayment = `SELECT ` + ReceiptColumns + ` FROM receipts WHERE payment_id = $1`

type ReceiptRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewReceiptRepository(dbtx db.DBTX, logger *slog.Logger) *ReceiptRepository {
	return &ReceiptRepository{
		db:     dbtx,
		logger: logger,
	}
}

func (r *ReceiptRepository) Append(ctx context.Context, rc *booking.Receipt) error {
	s := rc.Snapshot()
	_, err := r.db.Exec(ctx, insertReceipt,
		s.ID, s.BookingID, s.PaymentID, s.Number, s.Amount.Minor(), s.PaymentType.String(), s.IssuedAt)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	switch {
	case pgconv.IsUniqueViolation(err) && errors.As(err, &pgErr) && pgErr.ConstraintName == receiptPaymentIDConstraint:
		return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "payment already receipted", err)
	case pgconv.IsForeignKeyViolation(err):
		return infra.WrapRepoErr(r.logger, infra.KindForeignKeyViolated, "receipt references unknown booking", err)
	default:
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to append receipt", err)
	}
}

func (r *ReceiptRepository) FindByPaymentID(ctx context.Context, paymentID uuid.UUID) (*booking.Receipt, error) {
	snap, err := ScanReceipt(r.db.QueryRow(ctx, selectReceiptByPayment, paymentID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "receipt not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to find receipt", err)
	}

	rc, err := booking.ReconstructReceipt(snap)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "stored receipt is inconsistent", err)
	}
	return rc, nil
}

func ScanReceipt(row pgx.Row) (booking.ReceiptSnapshot, error) {
	var (
		s           booking.ReceiptSnapshot
		amount      int64
		paymentType string
		issuedAt    time.Time
	)
	if err := row.Scan(&s.ID, &s.BookingID, &s.PaymentID, &s.Number, &amount, &paymentType, &issuedAt); err != nil {
		return booking.ReceiptSnapshot{}, err
	}
	s.Amount = booking.NewMoney(amount)
	s.PaymentType = booking.PaymentType(paymentType)
	s.IssuedAt = issuedAt.UTC()
	return s, nil
}
