package dto

import (
	"time"

	"jobni/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID          uuid.UUID          `json:"id"`
	JobID       uuid.UUID          `json:"job_id"`
	ApplicantID uuid.UUID          `json:"applicant_id"`
	EmployerID  uuid.UUID          `json:"employer_id"`
	Message     *string            `json:"message"`
	Status      application.Status `json:"status"`
	AppliedDate time.Time          `json:"applied_date"`
}

// ApplicationViewResponse carries the joined fields so list screens need no
// follow-up lookups per row.
type ApplicationViewResponse struct {
	ApplicationResponse

	JobTitle       string  `json:"job_title"`
	CompanyName    string  `json:"company_name"`
	Salary         float64 `json:"salary"`
	ApplicantName  string  `json:"applicant_name"`
	ApplicantEmail string  `json:"applicant_email"`
	ApplicantPhone *string `json:"applicant_phone"`
}

type ApplyRequest struct {
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		EmployerID:  a.EmployerID,
		Message:     a.Message,
		Status:      a.Status,
		AppliedDate: a.AppliedDate,
	}
}

func NewApplicationViewResponses(in []application.View) []ApplicationViewResponse {
	out := make([]ApplicationViewResponse, 0, len(in))
	for _, v := range in {
		out = append(out, ApplicationViewResponse{
			ApplicationResponse: NewApplicationResponse(v.Application),
			JobTitle:            v.JobTitle,
			CompanyName:         v.CompanyName,
			Salary:              v.Salary,
			ApplicantName:       v.ApplicantName,
			ApplicantEmail:      v.ApplicantEmail,
			ApplicantPhone:      v.ApplicantPhone,
		})
	}
	return out
}
