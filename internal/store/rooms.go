package store

import (
	"context"

	"github.com/Tarikokc/RATE/internal/domain"
)

// RoomDirectory exposes the set of bookable rooms.
type RoomDirectory interface {
	ListRooms(ctx context.Context) ([]domain.Room, error)
}
