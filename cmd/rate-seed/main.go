// Command rate-seed loads a demo data set: four rooms and a few days of
// reservations relative to the current date. Reservations that would overlap
// existing ones are skipped, so the command is safe to rerun.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Tarikokc/RATE/internal/config"
	"github.com/Tarikokc/RATE/internal/domain"
	"github.com/Tarikokc/RATE/internal/store"
	"github.com/Tarikokc/RATE/internal/store/postgres"
)

type seedReservation struct {
	room      string
	userName  string
	title     string
	dayOffset int
	startHour int
	startMin  int
	endHour   int
	endMin    int
	people    int
}

var seedRooms = []domain.Room{
	{Name: "A101", Capacity: 30, Floor: "1"},
	{Name: "A102", Capacity: 20, Floor: "1"},
	{Name: "B201", Capacity: 15, Floor: "2"},
	{Name: "Amphi", Capacity: 100, Floor: "0"},
}

var seedReservations = []seedReservation{
	// Today.
	{"A101", "M. Martin", "Cours de Maths", 0, 8, 0, 10, 0, 28},
	{"A101", "Mme Dupont", "TP Python", 0, 14, 0, 16, 0, 25},
	{"A102", "M. Bernard", "Cours de Physique", 0, 9, 0, 11, 0, 18},
	{"B201", "Direction", "Réunion de direction", 0, 10, 0, 12, 0, 8},
	{"Amphi", "M. Leroy", "Conférence IoT", 0, 15, 0, 17, 0, 80},

	// Tomorrow.
	{"A101", "Mme Petit", "Cours d'Anglais", 1, 8, 0, 9, 30, 30},
	{"A101", "M. Martin", "Examen de Maths", 1, 10, 0, 12, 0, 30},
	{"A102", "M. Bernard", "TP Electronique", 1, 13, 0, 15, 0, 15},
	{"B201", "RH", "Entretiens annuels", 1, 9, 0, 18, 0, 4},
	{"Amphi", "Asso RATE", "Présentation projet IA", 1, 14, 0, 16, 0, 60},

	// The day after.
	{"A101", "M. Durand", "Cours de Réseau", 2, 8, 0, 10, 0, 22},
	{"A102", "Mme Moreau", "TP Capteurs IoT", 2, 10, 0, 12, 0, 12},
	{"Amphi", "M. Simon", "Formation DevOps", 2, 9, 0, 17, 0, 45},
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With(
		slog.String("service", "rate-seed"),
	)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.DatabaseURL, postgres.PoolConfig{
		MaxOpenConns: 2,
		MaxIdleConns: 1,
	})
	if err != nil {
		log.Error("database connection failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() {
		_ = postgres.Close(db)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Error("schema setup failed", slog.Any("err", err))
		os.Exit(1)
	}

	roomRepo := postgres.NewRoomRepo(db)
	roomIDs := make(map[string]uuid.UUID, len(seedRooms))
	for _, room := range seedRooms {
		stored, err := roomRepo.EnsureRoom(ctx, room)
		if err != nil {
			log.Error("room seed failed", slog.Any("err", err), slog.String("room", room.Name))
			os.Exit(1)
		}
		roomIDs[stored.Name] = stored.ID
	}
	log.Info("rooms ready", slog.Int("count", len(roomIDs)))

	reservationRepo := postgres.NewReservationRepo(db)
	today := domain.StartOfDay(time.Now())

	inserted := 0
	skipped := 0
	for _, s := range seedReservations {
		day := domain.AddDays(today, s.dayOffset)
		start := day.Add(time.Duration(s.startHour)*time.Hour + time.Duration(s.startMin)*time.Minute)
		end := day.Add(time.Duration(s.endHour)*time.Hour + time.Duration(s.endMin)*time.Minute)

		_, err := reservationRepo.Create(ctx, domain.Reservation{
			RoomID:        roomIDs[s.room],
			UserName:      s.userName,
			Title:         s.title,
			StartDatetime: start,
			EndDatetime:   end,
			PeopleCount:   s.people,
		})
		switch {
		case err == nil:
			inserted++
		case errors.Is(err, store.ErrConflict):
			log.Info("conflict skipped", slog.String("title", s.title), slog.Time("start", start))
			skipped++
		default:
			log.Error("reservation seed failed", slog.Any("err", err), slog.String("title", s.title))
			os.Exit(1)
		}
	}

	log.Info("seed complete", slog.Int("inserted", inserted), slog.Int("skipped", skipped))
}
