package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
	"github.com/m04kA/SMC-RageRoomService/pkg/types"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("invalid config")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Business  BusinessConfig  `toml:"business"`
	Booking   BookingConfig   `toml:"booking"`
	Calendar  CalendarConfig  `toml:"calendar"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	CORS      CORSConfig      `toml:"cors"`
	SendGrid  SendGridConfig  `toml:"sendgrid"`
	Twilio    TwilioConfig    `toml:"twilio"`
	Contact   ContactConfig   `toml:"contact"`

	location *time.Location
	schedule domain.WeeklySchedule
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // Пусто = только stdout
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BusinessConfig заведение: название, часовой пояс и часы работы
type BusinessConfig struct {
	Name     string                    `toml:"name"`
	Timezone string                    `toml:"timezone"`
	Hours    map[string]DayHoursConfig `toml:"hours"` // Ключ - день недели: "monday", "tuesday", ...
}

// DayHoursConfig часы работы на день недели
// Close - начало последнего слота
type DayHoursConfig struct {
	Open   string `toml:"open"`
	Close  string `toml:"close"`
	Closed bool   `toml:"closed"`
}

// BookingConfig правила бронирования
type BookingConfig struct {
	MaxPartySize        int `toml:"max_party_size"`
	AdvanceBookingDays  int `toml:"advance_booking_days"` // 0 = без ограничений
	LockTTL             int `toml:"lock_ttl"`             // секунды
	NotificationTimeout int `toml:"notification_timeout"` // секунды
}

// CalendarConfig доступ к Google Calendar
type CalendarConfig struct {
	ID                    string `toml:"id"`
	BaseURL               string `toml:"base_url"`
	ServiceAccountKeyFile string `toml:"service_account_key_file"`
	Timeout               int    `toml:"timeout"` // секунды

	// Только из окружения: GOOGLE_SERVICE_ACCOUNT_KEY
	ServiceAccountKey string `toml:"-"`
}

// RedisConfig хранилище межинстансных блокировок слотов
type RedisConfig struct {
	Enabled   bool   `toml:"enabled"`
	Addr      string `toml:"addr"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`

	// Только из окружения: REDIS_PASSWORD
	Password string `toml:"-"`
}

// RateLimitConfig ограничение частоты изменяющих запросов по IP
type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`
	TrustForwardedFor bool `toml:"trust_forwarded_for"` // Только за собственным reverse proxy
}

// CORSConfig разрешенные источники фронтенда
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// SendGridConfig почта: форма обратной связи и подтверждения бронирований
type SendGridConfig struct {
	FromEmail            string `toml:"from_email"`
	FromName             string `toml:"from_name"`
	BookingConfirmations bool   `toml:"booking_confirmations"`

	// Только из окружения: SENDGRID_API_KEY
	APIKey string `toml:"-"`
}

// TwilioConfig SMS-подтверждения бронирований
type TwilioConfig struct {
	Enabled     bool   `toml:"enabled"`
	FromNumber  string `toml:"from_number"`
	CountryCode string `toml:"country_code"`

	// Только из окружения: TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN
	AccountSID string `toml:"-"`
	AuthToken  string `toml:"-"`
}

// ContactConfig получатель сообщений формы обратной связи
type ContactConfig struct {
	To string `toml:"to"`
}

// Load читает config.toml, затем .env и переменные окружения (они приоритетнее файла)
// Отсутствующий файл не ошибка: остаются значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        3001,
			ReadTimeout:     10,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "rageroom",
		},
		Business: BusinessConfig{
			Name:     domain.DefaultBusinessName,
			Timezone: domain.DefaultTimezone,
		},
		Booking: BookingConfig{
			MaxPartySize:        domain.DefaultMaxPartySize,
			AdvanceBookingDays:  domain.DefaultAdvanceBookingDays,
			LockTTL:             30,
			NotificationTimeout: 15,
		},
		Calendar: CalendarConfig{
			ID:      "primary",
			Timeout: 10,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "rageroom:slot",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 10,
			Burst:             5,
		},
		CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PORT=%q is not a number", ErrInvalidConfig, v)
		}
		c.Server.HTTPPort = port
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		c.CORS.AllowedOrigins = splitList(v)
	}

	setString(&c.Logs.Level, "LOG_LEVEL")
	setString(&c.Business.Timezone, "TIMEZONE")
	setString(&c.Calendar.ID, "GOOGLE_CALENDAR_ID")
	setString(&c.Calendar.ServiceAccountKey, "GOOGLE_SERVICE_ACCOUNT_KEY")
	setString(&c.Calendar.ServiceAccountKeyFile, "GOOGLE_SERVICE_ACCOUNT_KEY_FILE")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.SendGrid.APIKey, "SENDGRID_API_KEY")
	setString(&c.SendGrid.FromEmail, "BOOKING_FROM_EMAIL")
	setString(&c.Twilio.AccountSID, "TWILIO_ACCOUNT_SID")
	setString(&c.Twilio.AuthToken, "TWILIO_AUTH_TOKEN")
	setString(&c.Twilio.FromNumber, "TWILIO_FROM_NUMBER")
	setString(&c.Contact.To, "CONTACT_TO")

	return nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	loc, err := time.LoadLocation(c.Business.Timezone)
	if err != nil {
		return fmt.Errorf("%w: business.timezone %q: %v", ErrInvalidConfig, c.Business.Timezone, err)
	}
	c.location = loc

	schedule, err := c.buildSchedule()
	if err != nil {
		return err
	}
	c.schedule = schedule

	if c.Booking.MaxPartySize < domain.MinPartySize {
		return fmt.Errorf("%w: booking.max_party_size must be at least %d", ErrInvalidConfig, domain.MinPartySize)
	}
	if c.Booking.AdvanceBookingDays < 0 || c.Booking.AdvanceBookingDays > domain.MaxAdvanceBookingDaysCap {
		return fmt.Errorf("%w: booking.advance_booking_days must be between 0 and %d",
			ErrInvalidConfig, domain.MaxAdvanceBookingDaysCap)
	}
	if c.Booking.LockTTL <= 0 {
		return fmt.Errorf("%w: booking.lock_ttl must be positive", ErrInvalidConfig)
	}
	if c.Calendar.Timeout <= 0 {
		return fmt.Errorf("%w: calendar.timeout must be positive", ErrInvalidConfig)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.requests_per_minute and rate_limit.burst must be positive", ErrInvalidConfig)
	}
	if c.Twilio.Enabled && (c.Twilio.AccountSID == "" || c.Twilio.AuthToken == "" || c.Twilio.FromNumber == "") {
		return fmt.Errorf("%w: twilio requires TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and a from number", ErrInvalidConfig)
	}

	return nil
}

// buildSchedule собирает WeeklySchedule из [business.hours]; пустая таблица = расписание по умолчанию
func (c *Config) buildSchedule() (domain.WeeklySchedule, error) {
	if len(c.Business.Hours) == 0 {
		return domain.DefaultWeeklySchedule(), nil
	}

	days := make(map[time.Weekday]domain.DayHours, len(c.Business.Hours))
	for name, hours := range c.Business.Hours {
		weekday, ok := parseWeekday(name)
		if !ok {
			return domain.WeeklySchedule{}, fmt.Errorf("%w: business.hours: unknown weekday %q", ErrInvalidConfig, name)
		}
		if hours.Closed {
			continue
		}

		open, err := types.NewTimeStringFromString(hours.Open)
		if err != nil {
			return domain.WeeklySchedule{}, fmt.Errorf("%w: business.hours.%s.open: %v", ErrInvalidConfig, name, err)
		}
		closeAt, err := types.NewTimeStringFromString(hours.Close)
		if err != nil {
			return domain.WeeklySchedule{}, fmt.Errorf("%w: business.hours.%s.close: %v", ErrInvalidConfig, name, err)
		}
		days[weekday] = domain.DayHours{Open: open, Close: closeAt}
	}

	schedule, err := domain.NewWeeklySchedule(days)
	if err != nil {
		return domain.WeeklySchedule{}, fmt.Errorf("%w: business.hours: %v", ErrInvalidConfig, err)
	}
	return schedule, nil
}

// Location часовой пояс заведения
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// WeeklySchedule таблица часов работы
func (c *Config) WeeklySchedule() domain.WeeklySchedule {
	return c.schedule
}

// SendGridEnabled почта настроена
func (c *Config) SendGridEnabled() bool {
	return c.SendGrid.APIKey != "" && c.SendGrid.FromEmail != ""
}

func parseWeekday(name string) (time.Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		if strings.ToLower(weekday.String()) == name {
			return weekday, true
		}
	}
	return 0, false
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
