package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"github.com/Tarikokc/RATE/internal/domain"
	"github.com/Tarikokc/RATE/internal/store"
)

const roomConflictMessage = "Room already booked during that time. Pick a different slot."

type ReservationRepo struct {
	db *bun.DB
}

func NewReservationRepo(db *bun.DB) *ReservationRepo {
	return &ReservationRepo{db: db}
}

func (r *ReservationRepo) List(ctx context.Context, filter store.ReservationFilter) ([]domain.Reservation, error) {
	rows := make([]domain.Reservation, 0)
	q := r.db.NewSelect().
		Model(&rows).
		ColumnExpr("reservation.*").
		ColumnExpr("room.name AS room_name").
		Join("JOIN rooms AS room ON room.id = reservation.room_id").
		OrderExpr("reservation.start_datetime ASC")

	if filter.RoomID != uuid.Nil {
		q = q.Where("reservation.room_id = ?", filter.RoomID)
	}
	if !filter.Date.IsZero() {
		dayStart := domain.StartOfDay(filter.Date)
		q = q.Where("reservation.start_datetime >= ?", dayStart).
			Where("reservation.start_datetime < ?", domain.AddDays(dayStart, 1))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a reservation after re-checking for overlaps inside a
// transaction holding a per-room advisory lock, so two concurrent bookings
// for the same room serialize here. The exclusion constraint backs this up.
func (r *ReservationRepo) Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error) {
	var out domain.Reservation
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockRoom(ctx, tx, res.RoomID); err != nil {
			return err
		}

		exists, err := tx.NewSelect().
			Model((*domain.Reservation)(nil)).
			Where("room_id = ?", res.RoomID).
			Where("start_datetime < ?", res.EndDatetime).
			Where("end_datetime > ?", res.StartDatetime).
			Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return &store.ConflictError{Message: roomConflictMessage}
		}

		roomExists, err := tx.NewSelect().
			Model((*domain.Room)(nil)).
			Where("id = ?", res.RoomID).
			Exists(ctx)
		if err != nil {
			return err
		}
		if !roomExists {
			return store.ErrNotFound
		}

		m := res
		if _, err := tx.NewInsert().Model(&m).Exec(ctx); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23P01" && pgErr.ConstraintName == "reservations_no_overlap" {
				return &store.ConflictError{Message: roomConflictMessage}
			}
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}
	return out, nil
}

func (r *ReservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*domain.Reservation)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func lockRoom(ctx context.Context, tx bun.Tx, roomID uuid.UUID) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", roomID.String()).Exec(ctx)
	return err
}
