package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RiverRun-BookingService/pkg/types"
)

func kayaking() *Activity {
	return &Activity{
		ID:               "a1",
		Title:            "Kayaking Adventure",
		Price:            decimal.NewFromInt(30),
		DurationMinutes:  60,
		CapacityPerSlot:  10,
		AssignedStaffIDs: []string{"s1"},
	}
}

func weekdayRule() *ScheduleRule {
	return &ScheduleRule{
		ID:         "r1",
		ActivityID: "a1",
		StaffIDs:   []string{"s1"},
		StartDate:  types.MustParseDate("2024-06-03"),
		EndDate:    types.MustParseDate("2024-06-30"),
		StartTime:  "09:00",
		EndTime:    "11:00",
		Pattern:    PatternWeekdays,
		Price:      decimal.NewFromInt(30),
		Capacity:   10,
	}
}

func TestScheduleRule_GenerateSlots_WeekdayMorning(t *testing.T) {
	slots := weekdayRule().GenerateSlots(types.MustParseDate("2024-06-03"), kayaking())

	require.Len(t, slots, 2)

	assert.Equal(t, "gen_2024-06-03_a1_0900", slots[0].ID)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), slots[0].EndTime)

	assert.Equal(t, "gen_2024-06-03_a1_1000", slots[1].ID)
	assert.Equal(t, types.TimeString("10:00"), slots[1].StartTime)
	assert.Equal(t, types.TimeString("11:00"), slots[1].EndTime)

	for _, s := range slots {
		assert.True(t, s.IsGenerated)
		assert.Equal(t, 10, s.Capacity)
		assert.Equal(t, []string{"s1"}, s.StaffIDs)
		assert.Equal(t, "Kayaking Adventure", s.ActivityTitle)
		assert.True(t, decimal.NewFromInt(30).Equal(s.Price))
	}
}

func TestScheduleRule_GenerateSlots_Weekend(t *testing.T) {
	assert.Empty(t, weekdayRule().GenerateSlots(types.MustParseDate("2024-06-08"), kayaking()))
}

func TestScheduleRule_GenerateSlots_OutsideRange(t *testing.T) {
	rule := weekdayRule()
	assert.Empty(t, rule.GenerateSlots(types.MustParseDate("2024-07-01"), kayaking()))
	assert.Empty(t, rule.GenerateSlots(types.MustParseDate("2024-05-31"), kayaking()))
	assert.Len(t, rule.GenerateSlots(types.MustParseDate("2024-06-28"), kayaking()), 2)
}

func TestScheduleRule_GenerateSlots_PackingCount(t *testing.T) {
	tests := []struct {
		name      string
		start     types.TimeString
		end       types.TimeString
		duration  int
		wantCount int
	}{
		{name: "exact fit", start: "09:00", end: "17:00", duration: 60, wantCount: 8},
		{name: "remainder dropped", start: "09:00", end: "17:00", duration: 90, wantCount: 5},
		{name: "window shorter than duration", start: "09:00", end: "09:30", duration: 45, wantCount: 0},
		{name: "two hour hike", start: "09:00", end: "17:00", duration: 120, wantCount: 4},
		{name: "stops before midnight", start: "22:00", end: "23:59", duration: 45, wantCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := weekdayRule()
			rule.Pattern = PatternDaily
			rule.StartTime = tt.start
			rule.EndTime = tt.end

			activity := kayaking()
			activity.DurationMinutes = tt.duration

			slots := rule.GenerateSlots(types.MustParseDate("2024-06-05"), activity)
			require.Len(t, slots, tt.wantCount)

			for i, s := range slots {
				assert.Equal(t, tt.duration, s.EndTime.Minutes()-s.StartTime.Minutes())
				assert.False(t, s.EndTime.IsAfter(tt.end))
				if i > 0 {
					assert.Equal(t, slots[i-1].EndTime, s.StartTime, "slots must be back-to-back")
				}
			}
		})
	}
}

func TestScheduleRule_GenerateSlots_Deterministic(t *testing.T) {
	rule := weekdayRule()
	date := types.MustParseDate("2024-06-04")

	first := rule.GenerateSlots(date, kayaking())
	second := rule.GenerateSlots(date, kayaking())

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestScheduleRule_AppliesTo_Patterns(t *testing.T) {
	monday := types.MustParseDate("2024-06-03")
	wednesday := types.MustParseDate("2024-06-05")
	saturday := types.MustParseDate("2024-06-08")
	sunday := types.MustParseDate("2024-06-09")

	tests := []struct {
		pattern    RecurrencePattern
		customDays []string
		want       map[types.Date]bool
	}{
		{pattern: PatternDaily, want: map[types.Date]bool{monday: true, wednesday: true, saturday: true, sunday: true}},
		{pattern: PatternWeekdays, want: map[types.Date]bool{monday: true, wednesday: true, saturday: false, sunday: false}},
		{pattern: PatternWeekends, want: map[types.Date]bool{monday: false, wednesday: false, saturday: true, sunday: true}},
		{pattern: PatternCustom, customDays: []string{"Monday", "sunday"}, want: map[types.Date]bool{monday: true, wednesday: false, saturday: false, sunday: true}},
	}

	for _, tt := range tests {
		t.Run(string(tt.pattern), func(t *testing.T) {
			rule := weekdayRule()
			rule.Pattern = tt.pattern
			rule.CustomDays = tt.customDays

			for date, want := range tt.want {
				assert.Equal(t, want, rule.AppliesTo(date), date.String())
			}
		})
	}
}

func TestScheduleRule_Overlaps(t *testing.T) {
	base := weekdayRule()

	tests := []struct {
		name   string
		mutate func(r *ScheduleRule)
		want   bool
	}{
		{name: "identical", mutate: func(r *ScheduleRule) {}, want: true},
		{name: "other activity", mutate: func(r *ScheduleRule) { r.ActivityID = "a2" }, want: false},
		{name: "adjacent time window", mutate: func(r *ScheduleRule) { r.StartTime, r.EndTime = "11:00", "13:00" }, want: false},
		{name: "partial time overlap", mutate: func(r *ScheduleRule) { r.StartTime, r.EndTime = "10:30", "12:00" }, want: true},
		{name: "disjoint dates", mutate: func(r *ScheduleRule) {
			r.StartDate, r.EndDate = types.MustParseDate("2024-07-01"), types.MustParseDate("2024-07-31")
		}, want: false},
		{name: "weekends only", mutate: func(r *ScheduleRule) { r.Pattern = PatternWeekends }, want: false},
		{name: "custom monday", mutate: func(r *ScheduleRule) {
			r.Pattern, r.CustomDays = PatternCustom, []string{"Monday"}
		}, want: true},
		{name: "shared range has no common weekday", mutate: func(r *ScheduleRule) {
			r.StartDate, r.EndDate = types.MustParseDate("2024-06-29"), types.MustParseDate("2024-07-10")
			r.Pattern = PatternDaily
		}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := weekdayRule()
			other.ID = "r2"
			tt.mutate(other)

			assert.Equal(t, tt.want, base.Overlaps(other))
			assert.Equal(t, tt.want, other.Overlaps(base))
		})
	}
}

func TestParseWeekday(t *testing.T) {
	d, ok := ParseWeekday("Wednesday")
	assert.True(t, ok)
	assert.Equal(t, time.Wednesday, d)

	_, ok = ParseWeekday("Funday")
	assert.False(t, ok)
}
