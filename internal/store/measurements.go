package store

import (
	"context"

	"github.com/Tarikokc/RATE/internal/domain"
)

// MeasurementStore records and replays sensor samples in arrival order.
type MeasurementStore interface {
	Append(ctx context.Context, m domain.Measurement) (domain.Measurement, error)
	Latest(ctx context.Context) (domain.Measurement, error)
	All(ctx context.Context) ([]domain.Measurement, error)
}
