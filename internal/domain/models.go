package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Room is a bookable space. Owned by the room directory; immutable once
// fetched.
type Room struct {
	bun.BaseModel `bun:"table:rooms"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Capacity    int       `bun:"capacity,notnull" json:"capacity"`
	Floor       string    `bun:"floor" json:"floor"`
	Description string    `bun:"description" json:"description"`
}

func (r *Room) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && r.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		r.ID = id
	}
	return nil
}

// Reservation books a room for the half-open interval
// [StartDatetime, EndDatetime). ID is assigned by the store and is zero
// before creation. RoomName is denormalized by the store on reads.
type Reservation struct {
	bun.BaseModel `bun:"table:reservations,alias:reservation"`

	ID            uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	RoomID        uuid.UUID `bun:"room_id,notnull,type:uuid" json:"room_id"`
	RoomName      string    `bun:"room_name,scanonly" json:"room_name,omitempty"`
	UserName      string    `bun:"user_name,notnull" json:"user_name"`
	Title         string    `bun:"title,notnull" json:"title"`
	StartDatetime time.Time `bun:"start_datetime,notnull" json:"start_datetime"`
	EndDatetime   time.Time `bun:"end_datetime,notnull" json:"end_datetime"`
	PeopleCount   int       `bun:"people_count,notnull" json:"people_count"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"-"`
}

func (r *Reservation) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok {
		if r.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			r.ID = id
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = time.Now().UTC()
		}
	}
	return nil
}

// Measurement is one sensor sample. The server assigns Timestamp on ingest.
type Measurement struct {
	bun.BaseModel `bun:"table:measurements"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"-"`
	Temperature float64   `bun:"temp,notnull" json:"temp"`
	Humidity    float64   `bun:"hum,notnull" json:"hum"`
	Pressure    float64   `bun:"pres,notnull" json:"pres"`
	Motion      bool      `bun:"motion,notnull" json:"motion"`
	Timestamp   time.Time `bun:"timestamp,notnull" json:"timestamp"`
}

func (m *Measurement) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && m.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		m.ID = id
	}
	return nil
}
