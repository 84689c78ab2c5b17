package readstore

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/domain/report"
	"wedding-booking/internal/infra"
	"wedding-booking/internal/infra/db"
	"wedding-booking/internal/infra/repository"
	"wedding-booking/internal/pkg/pgconv"
	"wedding-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBookingReadStore(dbtx db.DBTX, logger *slog.Logger) *BookingReadStore {
	return &BookingReadStore{
		db:     dbtx,
		logger: logger,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	snap, err := repository.ScanBooking(r.db.QueryRow(ctx, `SELECT `+repository.BookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to get booking view by id", err)
	}
	return r.toView(snap)
}

// ListByParty pages newest first on (created_at, id).
func (r *BookingReadStore) ListByParty(ctx context.Context, actor booking.Actor, filter queries.BookingFilter, after *queries.Keyset, limit int32) ([]*queries.BookingView, error) {
	column, err := partyColumn(actor)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	args := []any{actor.ID}
	sb.WriteString(`SELECT ` + repository.BookingColumns + ` FROM bookings WHERE ` + column + ` = $1`)
	if filter.Status != nil {
		args = append(args, filter.Status.String())
		sb.WriteString(` AND status = $` + strconv.Itoa(len(args)))
	}
	if after != nil {
		args = append(args, pgconv.TimeToPgtype(after.CreatedAt), after.ID)
		sb.WriteString(` AND (created_at, id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`)
	}
	args = append(args, limit)
	sb.WriteString(` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(len(args)))

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list bookings", err)
	}
	defer rows.Close()

	var out []*queries.BookingView
	for rows.Next() {
		snap, err := repository.ScanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan booking", err)
		}
		v, err := r.toView(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate bookings", err)
	}
	return out, nil
}

func (r *BookingReadStore) ListReceipts(ctx context.Context, bookingID uuid.UUID) ([]*queries.ReceiptView, error) {
	rows, err := r.db.Query(ctx, `SELECT `+repository.ReceiptColumns+` FROM receipts WHERE booking_id = $1 ORDER BY issued_at, id`, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list receipts", err)
	}
	defer rows.Close()

	var out []*queries.ReceiptView
	for rows.Next() {
		snap, err := repository.ScanReceipt(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan receipt", err)
		}
		rc, err := booking.ReconstructReceipt(snap)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "stored receipt is inconsistent", err)
		}
		out = append(out, queries.ReceiptViewOf(rc))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate receipts", err)
	}
	return out, nil
}

func (r *BookingReadStore) ReportRows(ctx context.Context, actor booking.Actor) ([]report.BookingSnapshot, error) {
	column, err := partyColumn(actor)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT status, quoted_amount_minor, total_paid_minor FROM bookings WHERE `+column+` = $1`, actor.ID)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to read report rows", err)
	}
	defer rows.Close()

	var out []report.BookingSnapshot
	for rows.Next() {
		var (
			status string
			quoted pgtype.Int8
			paid   int64
		)
		if err := rows.Scan(&status, &quoted, &paid); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan report row", err)
		}
		row := report.BookingSnapshot{Status: booking.Status(status), TotalPaid: booking.NewMoney(paid)}
		if q := pgconv.Int64PtrFromPgtype(quoted); q != nil {
			m := booking.NewMoney(*q)
			row.QuotedAmount = &m
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate report rows", err)
	}
	return out, nil
}

func (r *BookingReadStore) toView(snap booking.Snapshot) (*queries.BookingView, error) {
	b, err := booking.ReconstructBooking(snap)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "stored booking is inconsistent", err)
	}
	return queries.ViewOf(b), nil
}

func partyColumn(actor booking.Actor) (string, error) {
	switch actor.Role {
	case booking.RoleCouple:
		return "couple_id", nil
	case booking.RoleVendor:
		return "vendor_id", nil
	default:
		return "", booking.ErrUnauthorized
	}
}
