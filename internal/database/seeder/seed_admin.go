package seeder

import (
	"context"
	"fmt"
	"strings"

	"jobni/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminSeeder creates the operator account. Admins cannot self-register, so
// this is the only way one comes into existence.
type AdminSeeder struct {
	DisplayName string
	Email       string
	Password    string
}

func (AdminSeeder) Name() string { return "admin" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.ToLower(strings.TrimSpace(s.Email))
	if email == "" || s.Password == "" {
		return fmt.Errorf("admin email and password are required")
	}
	if err := EnsureTableColumns(ctx, db, "users", "id", "name", "email", "password_hash", "role"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	name := strings.TrimSpace(s.DisplayName)
	if name == "" {
		name = "Administrator"
	}

	_, err = db.Exec(
		ctx,
		`INSERT INTO users (id, name, email, password_hash, role) VALUES ($1, $2, $3, $4, 'admin') ON CONFLICT (lower(email)) DO NOTHING`,
		uuid.New(),
		name,
		email,
		string(hash),
	)
	return err
}
