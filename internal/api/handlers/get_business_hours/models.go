package get_business_hours

import (
	"time"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
)

// Options статические параметры бронирования, отдаваемые фронтенду
type Options struct {
	Timezone           string
	MaxGroupSize       int
	AdvanceBookingDays int // 0 = без ограничений
}

// BusinessHoursResponse HTTP response model
type BusinessHoursResponse struct {
	Timezone            string    `json:"timezone"`
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	MaxGroupSize        int       `json:"maxGroupSize"`
	AdvanceBookingDays  int       `json:"advanceBookingDays,omitempty"`
	Days                []DayInfo `json:"days"`
}

// DayInfo часы работы и шаблон слотов на день недели
type DayInfo struct {
	DayOfWeek int      `json:"dayOfWeek"` // 0 = воскресенье
	Name      string   `json:"name"`
	Closed    bool     `json:"closed"`
	Open      string   `json:"open,omitempty"`
	Close     string   `json:"close,omitempty"` // Начало последнего слота
	Slots     []string `json:"slots"`
}

// BuildResponse собирает неделю с воскресенья по субботу
func BuildResponse(hours BusinessHours, opts Options) *BusinessHoursResponse {
	days := make([]DayInfo, 0, 7)
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		day := DayInfo{
			DayOfWeek: int(weekday),
			Name:      weekday.String(),
			Slots:     []string{},
		}

		dayHours, open := hours.Hours(weekday)
		if !open {
			day.Closed = true
			days = append(days, day)
			continue
		}

		day.Open = dayHours.Open.String()
		day.Close = dayHours.Close.String()
		for _, slot := range hours.SlotsForWeekday(int(weekday)) {
			day.Slots = append(day.Slots, slot.String())
		}
		days = append(days, day)
	}

	return &BusinessHoursResponse{
		Timezone:            opts.Timezone,
		SlotDurationMinutes: domain.SlotDurationMinutes,
		MaxGroupSize:        opts.MaxGroupSize,
		AdvanceBookingDays:  opts.AdvanceBookingDays,
		Days:                days,
	}
}
