package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

// GeneratedSlotPrefix префикс идентификатора слота, построенного из правила
const GeneratedSlotPrefix = "gen_"

// Slot конкретный слот активности на дату.
// Ручные слоты хранятся в БД, сгенерированные существуют только в памяти.
type Slot struct {
	ID            string
	ActivityID    string
	ActivityTitle string
	StaffIDs      []string
	Date          types.Date
	StartTime     types.TimeString
	EndTime       types.TimeString
	Price         decimal.Decimal
	Capacity      int
	BookedCount   int // всегда пересчитывается из бронирований
	IsGenerated   bool
	RuleID        string // пусто для ручных слотов

	CreatedAt time.Time
}

// Available возвращает количество мест, которые ещё можно добавить с учётом
// позиций в корзине вызывающего. Никогда не бывает отрицательным.
func (s *Slot) Available(inCart int) int {
	left := s.Capacity - s.BookedCount - inCart
	if left < 0 {
		return 0
	}
	return left
}

// IsFull returns true if no seats are left
func (s *Slot) IsFull() bool {
	return s.Available(0) == 0
}

// Subtitle строка для позиции корзины: "2024-06-03 09:00-10:00"
func (s *Slot) Subtitle() string {
	return fmt.Sprintf("%s %s-%s", s.Date, s.StartTime, s.EndTime)
}

// GeneratedSlotID детерминированный id сгенерированного слота: gen_<YYYY-MM-DD>_<activityId>_<HHMM>
func GeneratedSlotID(date types.Date, activityID string, start types.TimeString) string {
	return fmt.Sprintf("%s%s_%s_%s", GeneratedSlotPrefix, date, activityID, start.Compact())
}

// ParseGeneratedSlotID разбирает id сгенерированного слота обратно на дату, активность и время начала.
// Для ручных слотов возвращает ok=false.
func ParseGeneratedSlotID(id string) (date types.Date, activityID string, start types.TimeString, ok bool) {
	rest, found := strings.CutPrefix(id, GeneratedSlotPrefix)
	if !found || len(rest) < len(types.DateLayout)+1 {
		return types.Date{}, "", "", false
	}

	date, err := types.ParseDate(rest[:len(types.DateLayout)])
	if err != nil || rest[len(types.DateLayout)] != '_' {
		return types.Date{}, "", "", false
	}
	rest = rest[len(types.DateLayout)+1:]

	sep := strings.LastIndex(rest, "_")
	if sep <= 0 {
		return types.Date{}, "", "", false
	}
	activityID, compact := rest[:sep], rest[sep+1:]
	if len(compact) != 4 {
		return types.Date{}, "", "", false
	}

	start, err = types.NewTimeStringFromString(compact[:2] + ":" + compact[2:])
	if err != nil {
		return types.Date{}, "", "", false
	}

	return date, activityID, start, true
}

// IsGeneratedSlotID returns true if the id has the generated slot format
func IsGeneratedSlotID(id string) bool {
	_, _, _, ok := ParseGeneratedSlotID(id)
	return ok
}

// SortSlots упорядочивает слоты по времени начала, при равенстве по id
func SortSlots(slots []*Slot) {
	slices.SortStableFunc(slots, func(a, b *Slot) int {
		if diff := a.StartTime.Minutes() - b.StartTime.Minutes(); diff != 0 {
			return diff
		}
		return strings.Compare(a.ID, b.ID)
	})
}
