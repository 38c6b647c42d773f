package job

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryRetail      Category = "retail"
	CategoryEvents      Category = "events"
	CategoryTech        Category = "tech"
	CategoryMarketing   Category = "marketing"
	CategoryHospitality Category = "hospitality"
	CategoryEducation   Category = "education"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryRetail, CategoryEvents, CategoryTech, CategoryMarketing, CategoryHospitality, CategoryEducation:
		return true
	default:
		return false
	}
}

type DurationType string

const (
	DurationHour   DurationType = "hour"
	DurationHours5 DurationType = "hours_5"
	DurationHours8 DurationType = "hours_8"
	DurationDays4  DurationType = "days_4"
	DurationWeek   DurationType = "week"
	DurationMonth  DurationType = "month"
)

func (d DurationType) Valid() bool {
	switch d {
	case DurationHour, DurationHours5, DurationHours8, DurationDays4, DurationWeek, DurationMonth:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusClosed
}

type Job struct {
	ID            uuid.UUID
	EmployerID    uuid.UUID
	Title         string
	Description   string
	CompanyName   string
	Location      string
	Category      Category
	DurationType  DurationType
	DurationValue string
	Salary        float64
	Requirements  []string
	Status        Status
	Deadline      *time.Time
	Views         int
	PostedDate    time.Time
	UpdatedAt     time.Time
}

// Filter narrows ListJobs. Empty fields match everything.
type Filter struct {
	Category     Category
	DurationType DurationType
	Location     string
	Search       string
	Status       Status
	EmployerID   *uuid.UUID
	Limit        int
	Offset       int
}
