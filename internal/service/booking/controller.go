// Package booking drives the weekly reservation grid: room selection, week
// navigation, slot selection and the create/delete round trips against the
// reservation store. Occupancy checks against the locally held working set
// are advisory only; the store has the final say on conflicts.
package booking

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Tarikokc/RATE/internal/domain"
	"github.com/Tarikokc/RATE/internal/store"
)

const (
	// DefaultDurationMinutes is proposed when a slot is first selected.
	DefaultDurationMinutes = 60

	allFieldsRequiredMessage = "all fields are required"
	genericFailureMessage    = "server error"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// Slot is one bookable (day, hour) cell.
type Slot struct {
	Day  time.Time
	Hour int
}

// Form holds the booking request fields while the user edits them.
type Form struct {
	Title           string
	UserName        string
	PeopleCount     int
	DurationMinutes int
}

type Controller struct {
	rooms        store.RoomDirectory
	reservations store.ReservationStore
	log          *slog.Logger

	mu          sync.Mutex
	roomList    []domain.Room
	roomID      uuid.UUID
	weekStart   time.Time
	workingSet  []domain.Reservation
	loading     bool
	unavailable bool

	// generation orders fetches: a completion is applied only while its
	// generation is still current, so a stale room's rows can never land
	// after navigation. cancelFetch aborts the superseded request outright.
	generation  uint64
	cancelFetch context.CancelFunc

	slot     *Slot
	form     Form
	errorMsg string
}

func NewController(rooms store.RoomDirectory, reservations store.ReservationStore, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		rooms:        rooms,
		reservations: reservations,
		log:          log.With(slog.String("component", "booking")),
		weekStart:    domain.MondayOf(time.Now()),
	}
}

// Init loads the room directory, selects the first room and fetches its
// working set. Without rooms the grid stays empty but interactive.
func (c *Controller) Init(ctx context.Context) error {
	rooms, err := c.rooms.ListRooms(ctx)
	if err != nil {
		c.mu.Lock()
		c.unavailable = true
		c.mu.Unlock()
		c.log.Warn("room directory unavailable", slog.Any("err", err))
		return err
	}

	c.mu.Lock()
	c.roomList = rooms
	c.mu.Unlock()

	if len(rooms) == 0 {
		return nil
	}
	return c.SelectRoom(ctx, rooms[0].ID)
}

func (c *Controller) Rooms() []domain.Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Room, len(c.roomList))
	copy(out, c.roomList)
	return out
}

func (c *Controller) SelectedRoom() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomID
}

// SelectRoom switches the visible room and fetches its reservations,
// superseding any fetch still in flight.
func (c *Controller) SelectRoom(ctx context.Context, roomID uuid.UUID) error {
	c.mu.Lock()
	c.roomID = roomID
	c.mu.Unlock()
	return c.fetch(ctx)
}

// WeekStart returns the Monday anchoring the visible week.
func (c *Controller) WeekStart() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.weekStart
}

// WeekDays returns the seven visible days, Monday first.
func (c *Controller) WeekDays() []time.Time {
	c.mu.Lock()
	ws := c.weekStart
	c.mu.Unlock()
	return domain.BuildWeek(ws)
}

// Hours returns the bookable hour rows of the grid.
func (c *Controller) Hours() []int {
	return domain.BookableHours()
}

func (c *Controller) PrevWeek(ctx context.Context) error {
	return c.shiftWeek(ctx, -1)
}

func (c *Controller) NextWeek(ctx context.Context) error {
	return c.shiftWeek(ctx, 1)
}

func (c *Controller) shiftWeek(ctx context.Context, weeks int) error {
	c.mu.Lock()
	c.weekStart = domain.ShiftWeek(c.weekStart, weeks)
	c.mu.Unlock()
	return c.fetch(ctx)
}

// Refresh re-fetches the selected room's working set.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.fetch(ctx)
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Unavailable reports whether the last listing attempt failed, leaving the
// working set empty or stale.
func (c *Controller) Unavailable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unavailable
}

// WorkingSet returns the reservations loaded for the selected room.
func (c *Controller) WorkingSet() []domain.Reservation {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Reservation, len(c.workingSet))
	copy(out, c.workingSet)
	return out
}

func (c *Controller) Occupied(day time.Time, hour int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Occupied(c.workingSet, day, hour)
}

func (c *Controller) ReservationAt(day time.Time, hour int) (domain.Reservation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.ReservationAt(c.workingSet, day, hour)
}

func (c *Controller) ContinuationAt(day time.Time, hour int) (domain.Reservation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.ContinuationAt(c.workingSet, day, hour)
}

// SelectSlot opens the booking form on a free cell. Selecting an occupied
// slot, or selecting with no room chosen, is refused and nothing changes.
func (c *Controller) SelectSlot(day time.Time, hour int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.roomID == uuid.Nil || domain.Occupied(c.workingSet, day, hour) {
		return false
	}

	s := Slot{Day: domain.StartOfDay(day), Hour: hour}
	c.slot = &s
	c.form = Form{PeopleCount: 1, DurationMinutes: DefaultDurationMinutes}
	c.errorMsg = ""
	return true
}

// SelectedSlot returns the slot the open form is anchored to.
func (c *Controller) SelectedSlot() (Slot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.slot == nil {
		return Slot{}, false
	}
	return *c.slot, true
}

func (c *Controller) FormValues() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// SetForm replaces the editable form fields. Only meaningful while a slot is
// selected.
func (c *Controller) SetForm(f Form) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.slot == nil {
		return
	}
	c.form = f
}

// ErrorMessage returns the message to show inline in the form, if any.
func (c *Controller) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errorMsg
}

// Cancel closes the booking form without submitting.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slot = nil
	c.errorMsg = ""
}

// Submit validates the form and creates the reservation. Validation failures
// never reach the store; store rejections leave the form open with the
// server's message so the user can retry. On success the form closes and the
// working set is re-fetched.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.slot == nil || c.roomID == uuid.Nil {
		c.mu.Unlock()
		return nil
	}

	if strings.TrimSpace(c.form.Title) == "" || strings.TrimSpace(c.form.UserName) == "" {
		c.errorMsg = allFieldsRequiredMessage
		c.mu.Unlock()
		return validationError(allFieldsRequiredMessage)
	}

	start := domain.SlotStart(c.slot.Day, c.slot.Hour)
	end := start.Add(time.Duration(c.form.DurationMinutes) * time.Minute)
	res := domain.Reservation{
		RoomID:        c.roomID,
		UserName:      c.form.UserName,
		Title:         c.form.Title,
		StartDatetime: start,
		EndDatetime:   end,
		PeopleCount:   c.form.PeopleCount,
	}
	c.mu.Unlock()

	created, err := c.reservations.Create(ctx, res)
	if err != nil {
		msg := genericFailureMessage
		var cErr *store.ConflictError
		if errors.As(err, &cErr) && cErr.Message != "" {
			msg = cErr.Message
		}

		c.mu.Lock()
		c.errorMsg = msg
		c.mu.Unlock()

		c.log.Warn("reservation create rejected",
			slog.Any("err", err),
			slog.String("room_id", res.RoomID.String()),
			slog.Time("start_datetime", res.StartDatetime),
		)
		return err
	}

	c.mu.Lock()
	c.slot = nil
	c.errorMsg = ""
	c.mu.Unlock()

	c.log.Info("reservation created",
		slog.String("reservation_id", created.ID.String()),
		slog.String("room_id", created.RoomID.String()),
		slog.Time("start_datetime", created.StartDatetime),
		slog.Time("end_datetime", created.EndDatetime),
	)

	return c.fetch(ctx)
}

// Delete removes a reservation by id, then re-fetches so the grid reflects
// the store's truth whatever the outcome. A reservation already gone is
// success.
func (c *Controller) Delete(ctx context.Context, id uuid.UUID) error {
	err := c.reservations.Delete(ctx, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		c.log.Warn("reservation delete failed", slog.Any("err", err), slog.String("reservation_id", id.String()))
		if fetchErr := c.fetch(ctx); fetchErr != nil {
			return fetchErr
		}
		return err
	}

	c.log.Info("reservation deleted", slog.String("reservation_id", id.String()))
	return c.fetch(ctx)
}

// fetch loads the selected room's reservations. Each call supersedes the one
// before it: the previous request is cancelled and only the newest
// generation may touch the working set or the loading flag.
func (c *Controller) fetch(ctx context.Context) error {
	c.mu.Lock()
	if c.roomID == uuid.Nil {
		c.mu.Unlock()
		return nil
	}

	c.generation++
	gen := c.generation
	if c.cancelFetch != nil {
		c.cancelFetch()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancelFetch = cancel
	c.loading = true
	roomID := c.roomID
	c.mu.Unlock()

	rows, err := c.reservations.List(fetchCtx, store.ReservationFilter{RoomID: roomID})
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		// Superseded by a newer fetch; discard whatever came back.
		return nil
	}

	c.loading = false
	if err != nil {
		c.unavailable = true
		c.log.Warn("reservation fetch failed", slog.Any("err", err), slog.String("room_id", roomID.String()))
		return err
	}

	// The server may not have filtered; keep only the selected room.
	filtered := rows[:0:0]
	for _, r := range rows {
		if r.RoomID == roomID {
			filtered = append(filtered, r)
		}
	}

	c.workingSet = filtered
	c.unavailable = false
	return nil
}
