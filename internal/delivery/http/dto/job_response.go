package dto

import (
	"time"

	"jobni/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID            uuid.UUID        `json:"id"`
	EmployerID    uuid.UUID        `json:"employer_id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	CompanyName   string           `json:"company_name"`
	Location      string           `json:"location"`
	Category      job.Category     `json:"category"`
	DurationType  job.DurationType `json:"duration_type"`
	DurationValue string           `json:"duration_value"`
	Salary        float64          `json:"salary"`
	Requirements  []string         `json:"requirements"`
	Status        job.Status       `json:"status"`
	Deadline      *time.Time       `json:"deadline"`
	Views         int              `json:"views"`
	PostedDate    time.Time        `json:"posted_date"`
}

type CreateJobRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CompanyName   string     `json:"company_name"`
	Location      string     `json:"location"`
	Category      string     `json:"category"`
	DurationType  string     `json:"duration_type"`
	DurationValue string     `json:"duration_value"`
	Salary        float64    `json:"salary"`
	Requirements  []string   `json:"requirements"`
	Deadline      *time.Time `json:"deadline"`
}

type UpdateJobRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	CompanyName   *string    `json:"company_name"`
	Location      *string    `json:"location"`
	Category      *string    `json:"category"`
	DurationType  *string    `json:"duration_type"`
	DurationValue *string    `json:"duration_value"`
	Salary        *float64   `json:"salary"`
	Requirements  *[]string  `json:"requirements"`
	Status        *string    `json:"status"`
	Deadline      *time.Time `json:"deadline"`
}

func NewJobResponse(j job.Job) JobResponse {
	reqs := j.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	return JobResponse{
		ID:            j.ID,
		EmployerID:    j.EmployerID,
		Title:         j.Title,
		Description:   j.Description,
		CompanyName:   j.CompanyName,
		Location:      j.Location,
		Category:      j.Category,
		DurationType:  j.DurationType,
		DurationValue: j.DurationValue,
		Salary:        j.Salary,
		Requirements:  reqs,
		Status:        j.Status,
		Deadline:      j.Deadline,
		Views:         j.Views,
		PostedDate:    j.PostedDate,
	}
}

func NewJobResponses(in []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(in))
	for _, j := range in {
		out = append(out, NewJobResponse(j))
	}
	return out
}
