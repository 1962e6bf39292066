package domain

import "time"

type Project struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// HasSchedule reports whether both schedule dates are set. Schedule
// statistics can only be computed for projects with a full schedule.
func (p *Project) HasSchedule() bool {
	return p.StartDate != nil && p.EndDate != nil
}
