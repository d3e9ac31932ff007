// Package http exposes the reservation and telemetry API consumed by the
// web client and the sensors.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tarikokc/RATE/internal/domain"
	"github.com/Tarikokc/RATE/internal/service/telemetry"
	"github.com/Tarikokc/RATE/internal/store"
)

type Server struct {
	rooms        store.RoomDirectory
	reservations store.ReservationStore
	telemetry    *telemetry.Service
	log          *slog.Logger
}

func NewServer(rooms store.RoomDirectory, reservations store.ReservationStore, telemetry *telemetry.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		rooms:        rooms,
		reservations: reservations,
		telemetry:    telemetry,
		log:          log.With(slog.String("component", "http")),
	}
}

// Handler wires the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/rooms", s.listRooms)
	mux.HandleFunc("GET /api/reservations", s.listReservations)
	mux.HandleFunc("POST /api/reservations", s.createReservation)
	mux.HandleFunc("DELETE /api/reservations/{id}", s.deleteReservation)

	mux.HandleFunc("POST /api/measure", s.recordMeasurement)
	mux.HandleFunc("GET /api/last", s.latestMeasurement)
	mux.HandleFunc("GET /api/all", s.allMeasurements)
	mux.HandleFunc("GET /api/stats", s.measurementStats)
	mux.HandleFunc("GET /api/export.csv", s.exportCSV)
	mux.HandleFunc("GET /api/export.json", s.exportJSON)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("response encode failed", slog.Any("err", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) listRooms(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("route", "ListRooms"))

	rooms, err := s.rooms.ListRooms(r.Context())
	if err != nil {
		log.Error("room list failed", slog.Any("err", err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if rooms == nil {
		rooms = []domain.Room{}
	}

	log.Debug("rooms listed", slog.Int("count", len(rooms)))
	s.writeJSON(w, http.StatusOK, rooms)
}

func (s *Server) listReservations(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("route", "ListReservations"))

	var filter store.ReservationFilter
	q := r.URL.Query()
	if raw := strings.TrimSpace(q.Get("room_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			log.Warn("invalid request", slog.String("reason", "invalid_room_id"))
			s.writeError(w, http.StatusBadRequest, "room_id must be a UUID")
			return
		}
		filter.RoomID = id
	}
	if raw := strings.TrimSpace(q.Get("date")); raw != "" {
		day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			log.Warn("invalid request", slog.String("reason", "invalid_date"))
			s.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		filter.Date = day
	}

	rows, err := s.reservations.List(r.Context(), filter)
	if err != nil {
		log.Error("reservation list failed", slog.Any("err", err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if rows == nil {
		rows = []domain.Reservation{}
	}

	log.Debug("reservations listed", slog.Int("count", len(rows)))
	s.writeJSON(w, http.StatusOK, rows)
}

type createReservationRequest struct {
	RoomID        uuid.UUID `json:"room_id"`
	UserName      string    `json:"user_name"`
	Title         string    `json:"title"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	PeopleCount   int       `json:"people_count"`
}

func (s *Server) createReservation(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("route", "CreateReservation"))

	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_body"))
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.RoomID == uuid.Nil {
		s.writeError(w, http.StatusBadRequest, "room_id is required")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.UserName) == "" {
		log.Warn("invalid request", slog.String("reason", "missing_fields"))
		s.writeError(w, http.StatusBadRequest, "all fields are required")
		return
	}
	if req.StartDatetime.IsZero() || req.EndDatetime.IsZero() || !req.StartDatetime.Before(req.EndDatetime) {
		log.Warn("invalid request", slog.String("reason", "invalid_interval"))
		s.writeError(w, http.StatusBadRequest, "end_datetime must be after start_datetime")
		return
	}
	if req.PeopleCount <= 0 {
		s.writeError(w, http.StatusBadRequest, "people_count must be positive")
		return
	}

	created, err := s.reservations.Create(r.Context(), domain.Reservation{
		RoomID:        req.RoomID,
		UserName:      strings.TrimSpace(req.UserName),
		Title:         strings.TrimSpace(req.Title),
		StartDatetime: req.StartDatetime,
		EndDatetime:   req.EndDatetime,
		PeopleCount:   req.PeopleCount,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			log.Info("reservation conflict",
				slog.String("room_id", req.RoomID.String()),
				slog.Time("start_datetime", req.StartDatetime),
				slog.Time("end_datetime", req.EndDatetime),
			)
			s.writeError(w, http.StatusConflict, err.Error())
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("unknown room", slog.String("room_id", req.RoomID.String()))
			s.writeError(w, http.StatusNotFound, "room not found")
			return
		}
		log.Error("reservation create failed", slog.Any("err", err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("reservation created",
		slog.String("reservation_id", created.ID.String()),
		slog.String("room_id", created.RoomID.String()),
		slog.Time("start_datetime", created.StartDatetime),
		slog.Time("end_datetime", created.EndDatetime),
	)
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) deleteReservation(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("route", "DeleteReservation"))

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "invalid_uuid"))
		s.writeError(w, http.StatusBadRequest, "reservation id must be a UUID")
		return
	}

	if err := s.reservations.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("reservation not found", slog.String("reservation_id", id.String()))
			s.writeError(w, http.StatusNotFound, "reservation not found")
			return
		}
		log.Error("reservation delete failed", slog.Any("err", err), slog.String("reservation_id", id.String()))
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("reservation deleted", slog.String("reservation_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

type measureRequest struct {
	Temperature float64 `json:"temp"`
	Humidity    float64 `json:"hum"`
	Pressure    float64 `json:"pres"`
	Motion      bool    `json:"motion"`
}

func (s *Server) recordMeasurement(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("route", "RecordMeasurement"))

	var req measureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_body"))
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := s.telemetry.Record(r.Context(), domain.Measurement{
		Temperature: req.Temperature,
		Humidity:    req.Humidity,
		Pressure:    req.Pressure,
		Motion:      req.Motion,
	})
	if err != nil {
		log.Error("measurement record failed", slog.Any("err", err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Debug("measurement recorded", slog.Time("timestamp", m.Timestamp))
	s.writeJSON(w, http.StatusCreated, m)
}

func (s *Server) latestMeasurement(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("route", "LatestMeasurement"))

	m, err := s.telemetry.Latest(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "no data")
			return
		}
		log.Error("latest measurement failed", slog.Any("err", err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

func (s *Server) allMeasurements(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("route", "AllMeasurements"))

	all, err := s.telemetry.History(r.Context())
	if err != nil {
		log.Error("measurement history failed", slog.Any("err", err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if all == nil {
		all = []domain.Measurement{}
	}
	s.writeJSON(w, http.StatusOK, all)
}

func (s *Server) measurementStats(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("route", "MeasurementStats"))

	sum, err := s.telemetry.Summarize(r.Context())
	if err != nil {
		log.Error("measurement stats failed", slog.Any("err", err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.writeJSON(w, http.StatusOK, sum)
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("route", "ExportCSV"))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="rate-measures.csv"`)
	if err := s.telemetry.ExportCSV(r.Context(), w); err != nil {
		log.Error("csv export failed", slog.Any("err", err))
	}
}

func (s *Server) exportJSON(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("route", "ExportJSON"))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="rate-measures.json"`)
	if err := s.telemetry.ExportJSON(r.Context(), w); err != nil {
		log.Error("json export failed", slog.Any("err", err))
	}
}

// WithRequestTimeout bounds each request that carries no deadline of its own.
func WithRequestTimeout(timeout time.Duration, next http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}
