package application

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted:
		return true
	default:
		return false
	}
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

// Active reports whether s counts against the one-open-application-per-job rule.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusAccepted
}

// CanTransition encodes the lifecycle:
//
//	pending  -> accepted | rejected
//	accepted -> completed
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusAccepted || to == StatusRejected
	case StatusAccepted:
		return to == StatusCompleted
	default:
		return false
	}
}

type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	ApplicantID uuid.UUID
	EmployerID  uuid.UUID
	Message     *string
	Status      Status
	AppliedDate time.Time
	UpdatedAt   time.Time
}

// View is an application pre-joined with the fields list screens render.
type View struct {
	Application

	JobTitle       string
	CompanyName    string
	Salary         float64
	ApplicantName  string
	ApplicantEmail string
	ApplicantPhone *string
}

type ListFilter struct {
	ApplicantID *uuid.UUID
	EmployerID  *uuid.UUID
	JobID       *uuid.UUID
}
