package domain

// Default booking preferences
const (
	DefaultMaxBookingsPerDay     = 10
	DefaultMaxBookingsPerSlot    = 1
	DefaultWorkingHoursStart     = "09:00"
	DefaultWorkingHoursEnd       = "17:00"
	DefaultSlotDurationMinutes   = 30
	DefaultBufferTimeMinutes     = 15
	DefaultAdvanceBookingDays    = 30
	DefaultSameDayBookingAllowed = true
	DefaultAutoConfirm           = false
	DefaultRequirePhone          = false
)

// Business validation constants
const (
	MinSlotDurationMinutes  = 5
	MaxSlotDurationMinutes  = 480 // 8 hours
	MaxBookingsPerDayLimit  = 500
	MaxBookingsPerSlotLimit = 100
	MaxBufferTimeMinutes    = 240
	MaxAdvanceBookingDays   = 365 // 1 year
	MaxNotesLength          = 1000
	MaxCustomerNameLength   = 200
)

// Политика поиска альтернатив. Значения фиксированы и не настраиваются мастерской
const (
	// AlternativeSearchWindowMinutes максимальное удаление альтернативного слота от запрошенного
	AlternativeSearchWindowMinutes = 120
	// MaxAlternatives максимальное количество предлагаемых альтернатив
	MaxAlternatives = 3
	// DayAlternativesLookaheadDays сколько дней вперед просматривается при day_full
	DayAlternativesLookaheadDays = 7
	// UpcomingDatesListingLimit ограничение выборки занятых дат для поиска альтернативных дней
	UpcomingDatesListingLimit = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, которые занимают емкость дня и слота
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, которые никогда не занимают емкость
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}

// ActiveStatusStrings активные статусы в виде строк для SQL-фильтров
func ActiveStatusStrings() []string {
	result := make([]string, len(ActiveStatuses))
	for i, s := range ActiveStatuses {
		result[i] = string(s)
	}
	return result
}
