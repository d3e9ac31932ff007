// Package telemetry records sensor samples and serves the readings shown on
// the dashboard: the live value, the full history, aggregate stats and
// CSV/JSON exports.
package telemetry

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/Tarikokc/RATE/internal/domain"
	"github.com/Tarikokc/RATE/internal/store"
)

var exportHeader = []string{"timestamp", "temp", "hum", "pres", "motion"}

type Service struct {
	measurements store.MeasurementStore
	now          func() time.Time
}

func NewService(measurements store.MeasurementStore, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{measurements: measurements, now: now}
}

// Record stamps the sample with the server clock and appends it. The sensor's
// own clock is not trusted.
func (s *Service) Record(ctx context.Context, m domain.Measurement) (domain.Measurement, error) {
	m.Timestamp = s.now().UTC()
	return s.measurements.Append(ctx, m)
}

// Latest returns the most recent sample, or store.ErrNotFound when nothing
// has been recorded yet.
func (s *Service) Latest(ctx context.Context) (domain.Measurement, error) {
	return s.measurements.Latest(ctx)
}

// History returns every sample in ascending timestamp order.
func (s *Service) History(ctx context.Context) ([]domain.Measurement, error) {
	return s.measurements.All(ctx)
}

// Stats aggregates one series over the history.
type Stats struct {
	Min float64 `json:"min"`
	Avg float64 `json:"avg"`
	Max float64 `json:"max"`
}

// Summary carries per-series stats for the dashboard tiles.
type Summary struct {
	Count       int   `json:"count"`
	Temperature Stats `json:"temp"`
	Humidity    Stats `json:"hum"`
	Pressure    Stats `json:"pres"`
}

// Summarize computes min/avg/max per series over the full history. An empty
// history yields a zero summary.
func (s *Service) Summarize(ctx context.Context) (Summary, error) {
	all, err := s.measurements.All(ctx)
	if err != nil {
		return Summary{}, err
	}
	if len(all) == 0 {
		return Summary{}, nil
	}

	pick := func(f func(domain.Measurement) float64) Stats {
		st := Stats{Min: f(all[0]), Max: f(all[0])}
		sum := 0.0
		for _, m := range all {
			v := f(m)
			if v < st.Min {
				st.Min = v
			}
			if v > st.Max {
				st.Max = v
			}
			sum += v
		}
		st.Avg = sum / float64(len(all))
		return st
	}

	return Summary{
		Count:       len(all),
		Temperature: pick(func(m domain.Measurement) float64 { return m.Temperature }),
		Humidity:    pick(func(m domain.Measurement) float64 { return m.Humidity }),
		Pressure:    pick(func(m domain.Measurement) float64 { return m.Pressure }),
	}, nil
}

// ExportCSV streams the history as "timestamp,temp,hum,pres,motion" rows.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	all, err := s.measurements.All(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, m := range all {
		row := []string{
			m.Timestamp.UTC().Format(time.RFC3339),
			strconv.FormatFloat(m.Temperature, 'f', -1, 64),
			strconv.FormatFloat(m.Humidity, 'f', -1, 64),
			strconv.FormatFloat(m.Pressure, 'f', -1, 64),
			strconv.FormatBool(m.Motion),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportJSON streams the history as an indented JSON array.
func (s *Service) ExportJSON(ctx context.Context, w io.Writer) error {
	all, err := s.measurements.All(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(all)
}
