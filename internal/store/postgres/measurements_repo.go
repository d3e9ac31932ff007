package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/Tarikokc/RATE/internal/domain"
	"github.com/Tarikokc/RATE/internal/store"
)

type MeasurementRepo struct {
	db *bun.DB
}

func NewMeasurementRepo(db *bun.DB) *MeasurementRepo {
	return &MeasurementRepo{db: db}
}

func (r *MeasurementRepo) Append(ctx context.Context, m domain.Measurement) (domain.Measurement, error) {
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Measurement{}, err
	}
	return m, nil
}

func (r *MeasurementRepo) Latest(ctx context.Context) (domain.Measurement, error) {
	var m domain.Measurement
	err := r.db.NewSelect().
		Model(&m).
		OrderExpr("timestamp DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Measurement{}, store.ErrNotFound
		}
		return domain.Measurement{}, err
	}
	return m, nil
}

func (r *MeasurementRepo) All(ctx context.Context) ([]domain.Measurement, error) {
	rows := make([]domain.Measurement, 0)
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("timestamp ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
