package seeder

import (
	"context"
	"fmt"
	"time"

	"jobni/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// demoNamespace keeps demo ids stable so reseeding is a no-op.
var demoNamespace = uuid.MustParse("6f1c0a52-3d7e-4a8e-9d0b-2f6a1c9e7b41")

const DemoPassword = "demo-password"

type DemoSeeder struct{}

func (DemoSeeder) Name() string { return "demo" }

func (DemoSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "employer_id", "title", "category", "duration_type", "salary", "requirements"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	employerID := uuid.NewSHA1(demoNamespace, []byte("employer"))
	seekerID := uuid.NewSHA1(demoNamespace, []byte("seeker"))

	users := []struct {
		ID      uuid.UUID
		Name    string
		Email   string
		Role    string
		Company *string
	}{
		{ID: employerID, Name: "Nour Market", Email: "employer@demo.jobni", Role: "employer", Company: strPtr("Nour Market")},
		{ID: seekerID, Name: "Sara Ahmed", Email: "seeker@demo.jobni", Role: "job_seeker"},
	}
	for _, u := range users {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO users (id, name, email, password_hash, role, company_name) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT DO NOTHING`,
			u.ID, u.Name, u.Email, string(hash), u.Role, u.Company,
		)
		if err != nil {
			return err
		}
	}

	jobs := []struct {
		Key           string
		Title         string
		Location      string
		Category      string
		DurationType  string
		DurationValue string
		Salary        float64
		Requirements  []string
	}{
		{"cashier", "Weekend Cashier", "Riyadh", "retail", "hours_8", "8 hours", 200, []string{"Customer service"}},
		{"usher", "Event Usher", "Jeddah", "events", "days_4", "4 days", 1200, []string{"Punctual", "Arabic and English"}},
		{"tutor", "Math Tutor", "Remote", "education", "week", "1 week", 900, []string{"High school math"}},
	}
	deadline := time.Now().UTC().AddDate(0, 1, 0)
	for _, j := range jobs {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO jobs (id, employer_id, title, description, company_name, location, category, duration_type, duration_value, salary, requirements, deadline)
			 VALUES ($1, $2, $3, $4, 'Nour Market', $5, $6, $7, $8, $9, $10, $11) ON CONFLICT (id) DO NOTHING`,
			uuid.NewSHA1(demoNamespace, []byte("job:"+j.Key)),
			employerID,
			j.Title,
			j.Title+" for a short engagement.",
			j.Location,
			j.Category,
			j.DurationType,
			j.DurationValue,
			j.Salary,
			j.Requirements,
			deadline,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func strPtr(s string) *string { return &s }
