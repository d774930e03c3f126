package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Activity вид активности (каякинг, поход и т.д.), под который создаются слоты
type Activity struct {
	ID               string
	CategoryID       string
	Title            string
	Description      string
	Price            decimal.Decimal // цена за человека
	DurationMinutes  int
	CapacityPerSlot  int
	Color            string
	AssignedStaffIDs []string // сотрудники, допущенные к проведению

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsStaffQualified returns true if the staff member may run this activity
func (a *Activity) IsStaffQualified(staffID string) bool {
	for _, id := range a.AssignedStaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}

// UnqualifiedStaff returns the ids from staffIDs that are not assigned to the activity
func (a *Activity) UnqualifiedStaff(staffIDs []string) []string {
	var missing []string
	for _, id := range staffIDs {
		if !a.IsStaffQualified(id) {
			missing = append(missing, id)
		}
	}
	return missing
}

// ActivityCategory группа активностей (водные, наземные)
type ActivityCategory struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
