package postgres

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/Tarikokc/RATE/internal/domain"
)

type RoomRepo struct {
	db *bun.DB
}

func NewRoomRepo(db *bun.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// EnsureRoom inserts the room unless one with the same name already exists,
// and returns the stored row either way. Used by the seeder.
func (r *RoomRepo) EnsureRoom(ctx context.Context, room domain.Room) (domain.Room, error) {
	_, err := r.db.NewInsert().
		Model(&room).
		On("CONFLICT (name) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return domain.Room{}, err
	}

	var stored domain.Room
	err = r.db.NewSelect().
		Model(&stored).
		Where("name = ?", room.Name).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return domain.Room{}, err
	}
	return stored, nil
}

func (r *RoomRepo) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rows := make([]domain.Room, 0)
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
