package domain

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Окно расписания по умолчанию для массовой генерации правил
const (
	DefaultRuleStartTime = "09:00"
	DefaultRuleEndTime   = "17:00"
)

// Бизнес-ограничения
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 12 * 60
	MinCapacity        = 1
	MaxCapacity        = 1000
	MaxItemQuantity    = 100
	MaxCartItems       = 50
	MaxPercentDiscount = 100
)

// Каналы продаж (для метрик)
const (
	ChannelOnline = "ONLINE"
	ChannelPOS    = "POS"
)

// InactiveStatuses статусы, не занимающие места в слотах
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}
