package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RageRoomService/pkg/types"
)

var envKeys = []string{
	"PORT", "FRONTEND_URL", "LOG_LEVEL", "TIMEZONE", "GOOGLE_CALENDAR_ID", "GOOGLE_SERVICE_ACCOUNT_KEY",
	"GOOGLE_SERVICE_ACCOUNT_KEY_FILE", "REDIS_ADDR", "REDIS_PASSWORD", "SENDGRID_API_KEY", "BOOKING_FROM_EMAIL",
	"TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "TWILIO_FROM_NUMBER", "CONTACT_TO",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.HTTPPort)
	assert.Equal(t, "Europe/Paris", cfg.Location().String())
	assert.Equal(t, "primary", cfg.Calendar.ID)
	assert.Equal(t, 5, cfg.Booking.MaxPartySize)
	assert.Equal(t, 0, cfg.Booking.AdvanceBookingDays)
	assert.False(t, cfg.SendGridEnabled())
	assert.False(t, cfg.RateLimit.TrustForwardedFor)

	hours, ok := cfg.WeeklySchedule().HoursFor(int(time.Saturday))
	require.True(t, ok)
	assert.Equal(t, types.TimeString("10:00"), hours.Open)
	_, ok = cfg.WeeklySchedule().HoursFor(int(time.Monday))
	assert.False(t, ok)
}

func TestLoad_FileAndHours(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
[server]
http_port = 8080

[business]
name = "Smash Room Lyon"
timezone = "Europe/Berlin"

[business.hours.friday]
open = "16:00"
close = "23:00"

[business.hours.Saturday]
open = "10:00"
close = "23:30"

[business.hours.sunday]
closed = true

[booking]
max_party_size = 8
advance_booking_days = 60

[redis]
enabled = true
addr = "redis:6379"

[rate_limit]
trust_forwarded_for = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "Smash Room Lyon", cfg.Business.Name)
	assert.Equal(t, "Europe/Berlin", cfg.Location().String())
	assert.Equal(t, 8, cfg.Booking.MaxPartySize)
	assert.Equal(t, 60, cfg.Booking.AdvanceBookingDays)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.True(t, cfg.RateLimit.TrustForwardedFor)
	assert.True(t, cfg.RateLimit.Enabled)

	schedule := cfg.WeeklySchedule()
	friday, ok := schedule.HoursFor(int(time.Friday))
	require.True(t, ok)
	assert.Equal(t, types.TimeString("16:00"), friday.Open)
	assert.Equal(t, types.TimeString("23:00"), friday.Close)

	saturday, ok := schedule.HoursFor(int(time.Saturday))
	require.True(t, ok)
	assert.Equal(t, types.TimeString("23:30"), saturday.Close)

	for _, weekday := range []time.Weekday{time.Sunday, time.Monday, time.Tuesday} {
		_, ok := schedule.HoursFor(int(weekday))
		assert.False(t, ok, weekday.String())
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
[server]
http_port = 8080

[calendar]
id = "from-file"

[sendgrid]
from_email = "file@example.com"
`)

	t.Setenv("PORT", "9090")
	t.Setenv("FRONTEND_URL", "https://smashroom.example, https://www.smashroom.example")
	t.Setenv("TIMEZONE", "America/New_York")
	t.Setenv("GOOGLE_CALENDAR_ID", "bookings@group.calendar.google.com")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_KEY", `{"type":"service_account"}`)
	t.Setenv("SENDGRID_API_KEY", "SG.key")
	t.Setenv("CONTACT_TO", "owner@example.com")
	t.Setenv("REDIS_PASSWORD", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, []string{"https://smashroom.example", "https://www.smashroom.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "America/New_York", cfg.Location().String())
	assert.Equal(t, "bookings@group.calendar.google.com", cfg.Calendar.ID)
	assert.Equal(t, `{"type":"service_account"}`, cfg.Calendar.ServiceAccountKey)
	assert.Equal(t, "owner@example.com", cfg.Contact.To)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.True(t, cfg.SendGridEnabled())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "bad port env", env: map[string]string{"PORT": "http"}},
		{name: "port out of range", content: "[server]\nhttp_port = 70000\n"},
		{name: "unknown timezone", env: map[string]string{"TIMEZONE": "Mars/Olympus"}},
		{name: "unknown weekday", content: "[business.hours.funday]\nopen = \"10:00\"\nclose = \"12:00\"\n"},
		{name: "off grid", content: "[business.hours.monday]\nopen = \"10:15\"\nclose = \"12:00\"\n"},
		{name: "close before open", content: "[business.hours.monday]\nopen = \"12:00\"\nclose = \"10:00\"\n"},
		{name: "bad time format", content: "[business.hours.monday]\nopen = \"10h\"\nclose = \"12:00\"\n"},
		{name: "party size", content: "[booking]\nmax_party_size = 0\n"},
		{name: "advance window", content: "[booking]\nadvance_booking_days = 400\n"},
		{name: "redis without addr", content: "[redis]\nenabled = true\naddr = \"\"\n"},
		{name: "twilio without credentials", content: "[twilio]\nenabled = true\nfrom_number = \"+3312345678\"\n"},
		{name: "rate limit", content: "[rate_limit]\nenabled = true\nrequests_per_minute = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MalformedToml(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "[server\nhttp_port = "))
	assert.Error(t, err)
}
