package get_business_hours

import (
	"time"

	"github.com/m04kA/SMC-RageRoomService/internal/domain"
	"github.com/m04kA/SMC-RageRoomService/pkg/types"
)

type BusinessHours interface {
	Hours(weekday time.Weekday) (domain.DayHours, bool)
	SlotsForWeekday(weekday int) []types.TimeString
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
