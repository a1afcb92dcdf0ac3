package domain

import (
	"context"
	"strings"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"golang.org/x/text/cases"
)

// Roles a user may hold.
const (
	RoleAdmin   = "admin"
	RoleAnalyst = "analyst"
)

// User represents an account allowed to sign in to the dashboard.
// Password holds a bcrypt hash, or a legacy plaintext value awaiting migration.
type User struct {
	ID       *surrealmodels.RecordID `json:"id,omitempty"`
	Email    string                  `json:"email"`
	Password string                  `json:"password,omitempty"`
	FullName string                  `json:"full_name"`
	IsActive bool                    `json:"is_active"`
	Role     string                  `json:"role"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleAnalyst
}

var emailFolder = cases.Fold()

// NormalizeEmail trims and case-folds an address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return emailFolder.String(strings.TrimSpace(email))
}

// UserRepository defines the contract for user data storage operations.
// It lives in the domain because it's a requirement OF the domain, not
// of the database implementation.
type UserRepository interface {
	// FindByEmail returns ErrNotFound when no user has the address.
	FindByEmail(ctx context.Context, email string) (*User, error)
	// Create returns ErrUserAlreadyExists when the address is taken.
	Create(ctx context.Context, user *User) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdatePassword(ctx context.Context, email, hash string) error
}
