package create_booking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
	"github.com/m04kA/SMC-RageRoomService/internal/infra/slotlock"
	calendarClient "github.com/m04kA/SMC-RageRoomService/internal/integrations/googlecalendar"
	"github.com/m04kA/SMC-RageRoomService/internal/service/businesshours"
	"github.com/m04kA/SMC-RageRoomService/pkg/logger"
	"github.com/m04kA/SMC-RageRoomService/pkg/types"
)

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

// fakeCalendar отдает ответы ListBusyIntervals по очереди; последний повторяется
type fakeCalendar struct {
	mu         sync.Mutex
	busyByCall [][]domain.BusyInterval
	listErr    error
	createErr  error
	listCalls  int
	createReqs []domain.BookingRequest
}

func (f *fakeCalendar) ListBusyIntervals(_ context.Context, _, _ time.Time) ([]domain.BusyInterval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.busyByCall) == 0 {
		return nil, nil
	}
	idx := f.listCalls - 1
	if idx >= len(f.busyByCall) {
		idx = len(f.busyByCall) - 1
	}
	return f.busyByCall[idx], nil
}

func (f *fakeCalendar) CreateEvent(_ context.Context, req domain.BookingRequest) (*calendarClient.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createReqs = append(f.createReqs, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &calendarClient.Event{ID: fmt.Sprintf("evt-%d", len(f.createReqs)), HTMLLink: "https://calendar.example/evt"}, nil
}

type fakeNotifier struct {
	reservations []domain.Reservation
}

func (f *fakeNotifier) NotifyBooking(_ context.Context, r domain.Reservation) {
	f.reservations = append(f.reservations, r)
}

type fakeLocker struct {
	err      error
	acquired []string
	released int
}

func (f *fakeLocker) Acquire(_ context.Context, key string, _ time.Duration) (slotlock.ReleaseFunc, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.acquired = append(f.acquired, key)
	return func() { f.released++ }, nil
}

type countingMetrics struct {
	conflicts int
	outcomes  map[string]int
}

func (c *countingMetrics) IncSlotConflict() { c.conflicts++ }

func (c *countingMetrics) IncBooking(outcome string) {
	if c.outcomes == nil {
		c.outcomes = map[string]int{}
	}
	c.outcomes[outcome]++
}

func paris(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	return loc
}

type fixture struct {
	uc       *UseCase
	calendar *fakeCalendar
	notifier *fakeNotifier
	metrics  *countingMetrics
}

// Пятница 2026-10-16, 10:00 по Парижу
func newFixture(t *testing.T, calendar *fakeCalendar, locker SlotLocker) *fixture {
	t.Helper()
	loc := paris(t)
	notifier := &fakeNotifier{}
	m := &countingMetrics{}

	uc := NewUseCase(
		businesshours.NewService(domain.DefaultWeeklySchedule()),
		calendar,
		locker,
		notifier,
		Options{Location: loc, AdvanceBookingDays: 60},
		m,
		logger.NewWithWriter(io.Discard, "debug"),
	)
	uc.timeProvider = fixedTime{now: time.Date(2026, 10, 16, 10, 0, 0, 0, loc)}

	return &fixture{uc: uc, calendar: calendar, notifier: notifier, metrics: m}
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	d, err := domain.ParseCalendarDate("2026-10-17")
	require.NoError(t, err)
	return &Request{
		Date:            d,
		StartTime:       "14:00",
		PartySize:       3,
		FirstName:       " Lina ",
		LastName:        "Ben Salah",
		Phone:           "12 345 678",
		Email:           "lina@example.com",
		SpecialRequests: "Birthday",
	}
}

func TestExecute_Success(t *testing.T) {
	locker := &fakeLocker{}
	f := newFixture(t, &fakeCalendar{}, locker)

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	loc := paris(t)
	assert.Equal(t, "evt-1", resp.EventID)
	assert.Equal(t, "https://calendar.example/evt", resp.EventLink)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	assert.Equal(t, 3, resp.PartySize)
	assert.True(t, resp.Start.Equal(time.Date(2026, 10, 17, 14, 0, 0, 0, loc)))
	assert.True(t, resp.End.Equal(time.Date(2026, 10, 17, 14, 30, 0, 0, loc)))

	require.Len(t, f.calendar.createReqs, 1)
	created := f.calendar.createReqs[0]
	assert.Equal(t, "Lina", created.Customer.FirstName)
	assert.Equal(t, "12345678", created.Customer.Phone)
	assert.Equal(t, 3, created.PartySize)

	assert.Equal(t, []string{"2026-10-17T14:00"}, locker.acquired)
	assert.Equal(t, 1, locker.released)

	require.Len(t, f.notifier.reservations, 1)
	assert.Equal(t, "evt-1", f.notifier.reservations[0].EventID)
	assert.Equal(t, 1, f.metrics.outcomes[outcomeCreated])
}

func TestExecute_SlotTakenBeforeGuard(t *testing.T) {
	loc := paris(t)
	calendar := &fakeCalendar{busyByCall: [][]domain.BusyInterval{
		nil,
		{{
			Start: time.Date(2026, 10, 17, 14, 0, 0, 0, loc),
			End:   time.Date(2026, 10, 17, 14, 30, 0, 0, loc),
			Label: "Walk-in",
		}},
	}}
	f := newFixture(t, calendar, nil)

	// Первое чтение (как при показе доступности) слот видит свободным
	busy, err := calendar.ListBusyIntervals(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, busy)

	_, err = f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, calendar.createReqs)
	assert.Empty(t, f.notifier.reservations)
	assert.Equal(t, 1, f.metrics.conflicts)
	assert.Equal(t, 2, calendar.listCalls)
}

func TestExecute_AdjacentBusyIntervalIsNotConflict(t *testing.T) {
	loc := paris(t)
	calendar := &fakeCalendar{busyByCall: [][]domain.BusyInterval{{
		{Start: time.Date(2026, 10, 17, 13, 0, 0, 0, loc), End: time.Date(2026, 10, 17, 14, 0, 0, 0, loc)},
		{Start: time.Date(2026, 10, 17, 14, 30, 0, 0, loc), End: time.Date(2026, 10, 17, 15, 0, 0, 0, loc)},
	}}}
	f := newFixture(t, calendar, nil)

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.Len(t, calendar.createReqs, 1)
}

func TestExecute_LockedByConcurrentRequest(t *testing.T) {
	f := newFixture(t, &fakeCalendar{}, &fakeLocker{err: fmt.Errorf("%w: key", slotlock.ErrLocked)})

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Zero(t, f.calendar.listCalls)
	assert.Empty(t, f.calendar.createReqs)
}

func TestExecute_LockStorageDownProceeds(t *testing.T) {
	f := newFixture(t, &fakeCalendar{}, &fakeLocker{err: slotlock.ErrUnavailable})

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.Len(t, f.calendar.createReqs, 1)
}

func TestExecute_RedisLockSerializesSameSlot(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	locker := slotlock.NewRedisLocker(rdb, "test", nil)
	f := newFixture(t, &fakeCalendar{}, locker)

	// Слот удерживает другой инстанс
	release, err := locker.Acquire(context.Background(), "2026-10-17T14:00", time.Minute)
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotConflict)

	release()
	_, err = f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.False(t, s.Exists("test:2026-10-17T14:00"))
}

func TestExecute_CalendarErrors(t *testing.T) {
	tests := []struct {
		name      string
		listErr   error
		createErr error
		wantErr   error
		creates   int
	}{
		{name: "read permission", listErr: calendarClient.ErrPermissionDenied, wantErr: ErrCalendarPermission},
		{name: "read transient", listErr: calendarClient.ErrUnavailable, wantErr: ErrCalendarUnavailable},
		{name: "read unexpected", listErr: calendarClient.ErrInvalidResponse, wantErr: ErrInternal},
		{name: "create permission", createErr: calendarClient.ErrPermissionDenied, wantErr: ErrCalendarPermission, creates: 1},
		{name: "create transient", createErr: calendarClient.ErrUnavailable, wantErr: ErrCalendarUnavailable, creates: 1},
		{name: "create unknown", createErr: errors.New("boom"), wantErr: ErrInternal, creates: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calendar := &fakeCalendar{listErr: tt.listErr, createErr: tt.createErr}
			f := newFixture(t, calendar, nil)

			_, err := f.uc.Execute(context.Background(), validRequest(t))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, calendar.createReqs, tt.creates)
			assert.Empty(t, f.notifier.reservations)
			assert.Equal(t, 1, f.metrics.outcomes[outcomeFailed])
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *Request)
		wantErr error
	}{
		{name: "missing date", modify: func(r *Request) { r.Date = domain.CalendarDate{} }, wantErr: ErrInvalidInput},
		{name: "missing time", modify: func(r *Request) { r.StartTime = "" }, wantErr: ErrInvalidInput},
		{name: "bad time", modify: func(r *Request) { r.StartTime = "25:00" }, wantErr: ErrInvalidInput},
		{name: "off grid", modify: func(r *Request) { r.StartTime = "14:15" }, wantErr: ErrInvalidTimeSlot},
		{name: "group too small", modify: func(r *Request) { r.PartySize = 0 }, wantErr: ErrInvalidPartySize},
		{name: "group too large", modify: func(r *Request) { r.PartySize = 6 }, wantErr: ErrInvalidPartySize},
		{name: "empty first name", modify: func(r *Request) { r.FirstName = "  " }, wantErr: ErrInvalidName},
		{name: "empty last name", modify: func(r *Request) { r.LastName = "" }, wantErr: ErrInvalidName},
		{name: "phone too short", modify: func(r *Request) { r.Phone = "1234567" }, wantErr: ErrInvalidPhone},
		{name: "phone too long", modify: func(r *Request) { r.Phone = "123456789" }, wantErr: ErrInvalidPhone},
		{name: "phone with letters", modify: func(r *Request) { r.Phone = "1234567a" }, wantErr: ErrInvalidPhone},
		{name: "phone with plus", modify: func(r *Request) { r.Phone = "+1234567" }, wantErr: ErrInvalidPhone},
		{name: "bad email", modify: func(r *Request) { r.Email = "lina@example" }, wantErr: ErrInvalidEmail},
		{name: "email with spaces", modify: func(r *Request) { r.Email = "li na@example.com" }, wantErr: ErrInvalidEmail},
		{name: "past date", modify: func(r *Request) { r.Date = domain.CalendarDate{Year: 2026, Month: time.October, Day: 15} }, wantErr: ErrInvalidDate},
		{name: "too far", modify: func(r *Request) { r.Date = domain.CalendarDate{Year: 2027, Month: time.January, Day: 2} }, wantErr: ErrDateTooFarInFuture},
		{name: "monday", modify: func(r *Request) { r.Date = domain.CalendarDate{Year: 2026, Month: time.October, Day: 19} }, wantErr: ErrClosed},
		{name: "before opening", modify: func(r *Request) { r.StartTime = "09:30" }, wantErr: ErrInvalidTimeSlot},
		{name: "after last slot", modify: func(r *Request) { r.StartTime = "22:30" }, wantErr: ErrInvalidTimeSlot},
		{name: "weekday before opening", modify: func(r *Request) {
			r.Date = domain.CalendarDate{Year: 2026, Month: time.October, Day: 21}
			r.StartTime = "10:30"
		}, wantErr: ErrInvalidTimeSlot},
		{name: "later today", modify: func(r *Request) {
			r.Date = domain.CalendarDate{Year: 2026, Month: time.October, Day: 16}
			r.StartTime = "11:00"
		}, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calendar := &fakeCalendar{}
			f := newFixture(t, calendar, nil)

			req := validRequest(t)
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, calendar.listCalls)
			assert.Empty(t, calendar.createReqs)
		})
	}
}

func TestExecute_ValidationErrorsAreInvalidInput(t *testing.T) {
	for _, err := range []error{ErrInvalidName, ErrInvalidPhone, ErrInvalidEmail, ErrInvalidPartySize, ErrSpecialRequestsTooLong} {
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestExecute_TooLateToday(t *testing.T) {
	f := newFixture(t, &fakeCalendar{}, nil)
	loc := paris(t)

	req := validRequest(t)
	req.Date = domain.CalendarDate{Year: 2026, Month: time.October, Day: 17}
	f.uc.timeProvider = fixedTime{now: time.Date(2026, 10, 17, 14, 0, 0, 0, loc)}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)

	req = validRequest(t)
	req.StartTime = "14:30"
	_, err = f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_LastSlotOfDayIsBookable(t *testing.T) {
	f := newFixture(t, &fakeCalendar{}, nil)

	req := validRequest(t)
	req.StartTime = "22:00"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 22, resp.Start.Hour())
	assert.Equal(t, 30, resp.End.Minute())
}
