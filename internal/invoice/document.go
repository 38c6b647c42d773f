// Package invoice renders the payment record for an accepted or completed
// application. Payment itself is settled between the parties off platform.
package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const Currency = "SAR"

type Party struct {
	Name    string
	Email   string
	Phone   string
	Company string
}

type Document struct {
	Number        string
	IssuedAt      time.Time
	ApplicationID uuid.UUID
	Status        string

	JobTitle      string
	CompanyName   string
	Location      string
	DurationValue string
	AppliedDate   time.Time

	Worker   Party
	Employer Party

	Amount   float64
	Currency string
}

// Number derives a stable, human-readable invoice number from the
// application id and issue date.
func Number(applicationID uuid.UUID, issued time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(applicationID.String(), "-", "")[:8])
	return fmt.Sprintf("JOB-%s-%s", issued.UTC().Format("20060102"), short)
}

// Renderer turns a Document into a downloadable file.
type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
	ContentType() string
	Extension() string
}

func Filename(applicationID uuid.UUID, r Renderer) string {
	return fmt.Sprintf("invoice_%s.%s", applicationID, r.Extension())
}
