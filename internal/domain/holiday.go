package domain

import "time"

// Holiday marks one non-working day or an inclusive range of them.
// A nil ProjectID means the entry applies to every project.
type Holiday struct {
	ID        string    `json:"id"`
	ProjectID *string   `json:"projectId"`
	Date      time.Time `json:"date"`
	// EndDate, when set, extends the entry to the inclusive range
	// [Date, EndDate].
	EndDate   *time.Time `json:"endDate"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
}
