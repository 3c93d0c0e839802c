package googlecalendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
	"github.com/m04kA/SMC-RageRoomService/pkg/metrics"
)

// DefaultBaseURL адрес Google Calendar API v3
const DefaultBaseURL = "https://www.googleapis.com/calendar/v3"

const (
	opListEvents  = "events.list"
	opInsertEvent = "events.insert"

	listPageSize    = 250
	maxErrorBodyLog = 512

	// Красный цвет для бронирований зала
	bookingColorID = "11"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для метрик вызовов календаря
type Metrics interface {
	ObserveCalendarCall(operation, result string, duration time.Duration)
}

// Client клиент Google Calendar: источник занятых интервалов и приемник новых событий
type Client struct {
	baseURL      string
	calendarID   string
	businessName string
	location     *time.Location
	httpClient   *http.Client
	metrics      Metrics
	log          Logger
}

// Options параметры клиента
type Options struct {
	BaseURL      string         // Пусто = DefaultBaseURL
	CalendarID   string         // Пусто = "primary"
	BusinessName string         // Используется в заголовке и описании событий
	Location     *time.Location // Часовой пояс заведения
}

// NewClient создает клиент поверх авторизованного HTTP-клиента (см. NewServiceAccountHTTPClient)
func NewClient(httpClient *http.Client, opts Options, m Metrics, log Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.CalendarID == "" {
		opts.CalendarID = "primary"
	}
	if opts.BusinessName == "" {
		opts.BusinessName = domain.DefaultBusinessName
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if m == nil {
		m = (*metrics.Metrics)(nil)
	}

	return &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		calendarID:   opts.CalendarID,
		businessName: opts.BusinessName,
		location:     opts.Location,
		httpClient:   httpClient,
		metrics:      m,
		log:          log,
	}
}

// ListBusyIntervals возвращает занятые интервалы календаря в диапазоне [from, to]
// Отмененные и "прозрачные" (не занимающие время) события пропускаются
func (c *Client) ListBusyIntervals(ctx context.Context, from, to time.Time) ([]domain.BusyInterval, error) {
	started := time.Now()
	busy, err := c.listBusyIntervals(ctx, from, to)
	c.metrics.ObserveCalendarCall(opListEvents, resultLabel(err), time.Since(started))
	return busy, err
}

func (c *Client) listBusyIntervals(ctx context.Context, from, to time.Time) ([]domain.BusyInterval, error) {
	busy := make([]domain.BusyInterval, 0)
	pageToken := ""

	for {
		params := url.Values{}
		params.Set("timeMin", from.Format(time.RFC3339))
		params.Set("timeMax", to.Format(time.RFC3339))
		params.Set("singleEvents", "true")
		params.Set("orderBy", "startTime")
		params.Set("timeZone", c.location.String())
		params.Set("maxResults", fmt.Sprintf("%d", listPageSize))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var page eventsListResponse
		if err := c.do(ctx, http.MethodGet, c.eventsURL()+"?"+params.Encode(), nil, &page); err != nil {
			return nil, err
		}

		for _, event := range page.Items {
			if event.Status == eventStatusCancelled || event.Transparency == transparencyTransparent {
				continue
			}

			interval, err := c.toBusyInterval(event)
			if err != nil {
				// Событие без разбираемых границ пропускаем, но логируем: оно могло занимать слот
				c.log.Warn("GoogleCalendar: skipping event id=%s summary=%q: %v", event.ID, event.Summary, err)
				continue
			}
			busy = append(busy, interval)
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	return busy, nil
}

// CreateEvent создает событие бронирования в календаре
// Вызывает events.insert ровно один раз, без повторов
func (c *Client) CreateEvent(ctx context.Context, req domain.BookingRequest) (*Event, error) {
	started := time.Now()
	event, err := c.createEvent(ctx, req)
	c.metrics.ObserveCalendarCall(opInsertEvent, resultLabel(err), time.Since(started))
	return event, err
}

func (c *Client) createEvent(ctx context.Context, req domain.BookingRequest) (*Event, error) {
	start, end := req.Slot.Interval(c.location)

	payload := Event{
		Summary:     fmt.Sprintf("%s Session - %s", c.businessName, domain.PartyLabel(req.PartySize)),
		Description: c.bookingDescription(req),
		Start: EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: c.location.String(),
		},
		End: EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: c.location.String(),
		},
		ColorID: bookingColorID,
		Reminders: &Reminders{
			UseDefault: false,
			Overrides: []ReminderOverride{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 60},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode event: %v", ErrInternal, err)
	}

	// Сервисный аккаунт не может рассылать приглашения участникам
	var created Event
	if err := c.do(ctx, http.MethodPost, c.eventsURL()+"?sendUpdates=none", body, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (c *Client) bookingDescription(req domain.BookingRequest) string {
	customer := req.Customer

	name := customer.FullName()
	if name == "" {
		name = "Guest"
	}
	phone := strings.TrimSpace(customer.Phone)
	if phone == "" {
		phone = "Not provided"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Rage Room Booking\n\nCustomer Information:\nName: %s\nPhone: %s", name, phone)
	if email := strings.TrimSpace(customer.Email); email != "" {
		fmt.Fprintf(&b, "\nEmail: %s", email)
	}
	fmt.Fprintf(&b, "\n\nGroup Size: %s", domain.PartyLabel(req.PartySize))
	if requests := strings.TrimSpace(customer.SpecialRequests); requests != "" {
		fmt.Fprintf(&b, "\n\nSpecial Requests:\n%s", requests)
	}
	fmt.Fprintf(&b, "\n\nBooked through %s website.", c.businessName)

	return b.String()
}

func (c *Client) eventsURL() string {
	return fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(c.calendarID))
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		classified := classifyStatus(resp.StatusCode, respBody)
		c.log.Error("GoogleCalendar: %s %s returned %d: %s", method, req.URL.Path, resp.StatusCode, truncate(respBody))
		return classified
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

func (c *Client) toBusyInterval(event Event) (domain.BusyInterval, error) {
	start, err := c.parseEventTime(event.Start)
	if err != nil {
		return domain.BusyInterval{}, fmt.Errorf("start: %w", err)
	}
	end, err := c.parseEventTime(event.End)
	if err != nil {
		return domain.BusyInterval{}, fmt.Errorf("end: %w", err)
	}

	return domain.BusyInterval{Start: start, End: end, Label: event.Summary}, nil
}

// parseEventTime разбирает время события
// dateTime всегда содержит смещение (RFC3339); date (событие на весь день) трактуется
// как полночь в часовом поясе заведения, а конечная дата у Google исключающая
func (c *Client) parseEventTime(t EventDateTime) (time.Time, error) {
	if t.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, t.DateTime)
		if err != nil {
			return time.Time{}, err
		}
		return parsed, nil
	}

	if t.Date != "" {
		date, err := domain.ParseCalendarDate(t.Date)
		if err != nil {
			return time.Time{}, err
		}
		return date.StartOfDay(c.location), nil
	}

	return time.Time{}, errors.New("event time has neither dateTime nor date")
}

// classifyStatus сопоставляет HTTP-статус Google API с классом ошибки
func classifyStatus(status int, body []byte) error {
	var apiErr errorResponse
	_ = json.Unmarshal(body, &apiErr)

	message := apiErr.Error.Message
	if message == "" {
		message = http.StatusText(status)
	}

	switch {
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, status, message)

	case status == http.StatusForbidden && isRateLimited(apiErr):
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, status, message)

	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: status %d: %s", ErrPermissionDenied, status, message)

	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, status, message)
	}
}

func isRateLimited(apiErr errorResponse) bool {
	for _, e := range apiErr.Error.Errors {
		switch e.Reason {
		case "rateLimitExceeded", "userRateLimitExceeded", "quotaExceeded":
			return true
		}
	}
	return false
}

// classifyTransportError ошибки получения токена с 4xx - проблема прав сервисного аккаунта,
// остальные сетевые ошибки и таймауты считаются временными
func classifyTransportError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		status := retrieveErr.Response.StatusCode
		if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
			return fmt.Errorf("%w: token exchange failed with status %d: %v", ErrPermissionDenied, status, err)
		}
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	case errors.As(err, &netErr):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, ErrPermissionDenied):
		return metrics.ResultPermission
	case errors.Is(err, ErrUnavailable):
		return metrics.ResultTransient
	default:
		return metrics.ResultError
	}
}

func truncate(body []byte) string {
	if len(body) > maxErrorBodyLog {
		return string(body[:maxErrorBodyLog]) + "..."
	}
	return string(body)
}
