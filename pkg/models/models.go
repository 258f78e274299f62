package models

import "time"

// Activity is one offered class/section extracted from the listing page
type Activity struct {
	Category           string  `json:"category" db:"category"`
	ClassName          string  `json:"class_name" db:"class_name"`
	Schedule           string  `json:"schedule" db:"schedule"`
	Cost               float64 `json:"cost" db:"cost"`
	EnrollmentDeadline string  `json:"enrollment_deadline" db:"enrollment_deadline"`
}

// IsFree reports whether the activity has no cost
func (a Activity) IsFree() bool {
	return a.Cost == 0
}

// RunStatus is the outcome recorded in the scraping history
type RunStatus string

const (
	RunSuccess RunStatus = "success"
	RunFailure RunStatus = "failure"
)

// RunRecord is one row of the scraping history
type RunRecord struct {
	ID              int64     `json:"id" db:"id"`
	ScrapedAt       time.Time `json:"scraped_at" db:"scraped_at"`
	TotalActivities int       `json:"total_activities" db:"total_activities"`
	Status          RunStatus `json:"status" db:"status"`
	ErrorMessage    *string   `json:"error_message,omitempty" db:"error_message"`
}

// CategoryCount is the number of activities in one category
type CategoryCount struct {
	Category string `json:"category" db:"category"`
	Count    int    `json:"count" db:"count"`
}

// Stats aggregates the persisted activities.
// Cost figures only consider paid activities and are nil when there are none.
type Stats struct {
	Total       int             `json:"total"`
	Free        int             `json:"free"`
	Paid        int             `json:"paid"`
	AverageCost *float64        `json:"average_cost,omitempty"`
	MinCost     *float64        `json:"min_cost,omitempty"`
	MaxCost     *float64        `json:"max_cost,omitempty"`
	ByCategory  []CategoryCount `json:"by_category"`
}
