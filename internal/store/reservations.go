package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Tarikokc/RATE/internal/domain"
)

// ReservationFilter narrows a listing. Zero values mean "no filter". Date
// matches the calendar day a reservation starts on. Callers must not assume
// the store applied either filter and should filter defensively.
type ReservationFilter struct {
	RoomID uuid.UUID
	Date   time.Time
}

// ReservationStore is durable CRUD over reservations. It is the single
// source of truth for conflict rejection: Create must refuse any reservation
// overlapping an existing one for the same room.
type ReservationStore interface {
	List(ctx context.Context, filter ReservationFilter) ([]domain.Reservation, error)
	Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
