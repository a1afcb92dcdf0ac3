package database

import (
	"context"
	"time"

	"github.com/nfrund/cyberwatch/internal/domain"
)

const userTable = "user"

// var _ ensures that SurrealUserStore implements the domain.UserRepository interface at compile time.
var _ domain.UserRepository = (*SurrealUserStore)(nil)

// SurrealUserStore keeps users in the SurrealDB "user" table.
type SurrealUserStore struct {
	conn    *Connection
	timeout time.Duration
}

// NewSurrealUserStore creates a store on an established connection.
func NewSurrealUserStore(conn *Connection, timeout time.Duration) *SurrealUserStore {
	return &SurrealUserStore{conn: conn, timeout: timeout}
}

// EnsureSchema defines the unique email index. It is safe to run repeatedly.
func (s *SurrealUserStore) EnsureSchema(ctx context.Context) error {
	db, err := s.conn.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return Execute(ctx, db, "DEFINE INDEX IF NOT EXISTS user_email ON TABLE user COLUMNS email UNIQUE", nil)
}

// FindByEmail retrieves a user by their email address.
func (s *SurrealUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	db, err := s.conn.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := QueryOne[domain.User](ctx, db, "SELECT * FROM user WHERE email = $email",
		map[string]any{"email": domain.NormalizeEmail(email)})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NewDBError(domain.ErrNotFound, "user not found")
	}
	return user, nil
}

// Create inserts a new user. The email is normalized before storage.
func (s *SurrealUserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if _, err := s.FindByEmail(ctx, user.Email); err == nil {
		return nil, NewDBError(domain.ErrUserAlreadyExists, "create user")
	} else if !isNotFound(err) {
		return nil, err
	}

	db, err := s.conn.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data := map[string]any{
		"email":     domain.NormalizeEmail(user.Email),
		"password":  user.Password,
		"full_name": user.FullName,
		"is_active": user.IsActive,
		"role":      user.Role,
	}
	created, err := QueryOne[domain.User](ctx, db, "CREATE type::table($table) CONTENT $data",
		map[string]any{"table": userTable, "data": data})
	if err != nil {
		return nil, NewDBError(err, "create user")
	}
	if created == nil {
		return nil, NewDBError(ErrQueryFailed, "create user returned no record")
	}
	return created, nil
}

// List returns every user ordered by email.
func (s *SurrealUserStore) List(ctx context.Context) ([]domain.User, error) {
	db, err := s.conn.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return Query[domain.User](ctx, db, "SELECT * FROM user ORDER BY email", nil)
}

// UpdatePassword replaces the stored password value for email.
func (s *SurrealUserStore) UpdatePassword(ctx context.Context, email, hash string) error {
	db, err := s.conn.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	updated, err := QueryOne[domain.User](ctx, db,
		"UPDATE user SET password = $password WHERE email = $email RETURN AFTER",
		map[string]any{"email": domain.NormalizeEmail(email), "password": hash})
	if err != nil {
		return err
	}
	if updated == nil {
		return NewDBError(domain.ErrNotFound, "update password")
	}
	return nil
}

// Close releases the underlying connection.
func (s *SurrealUserStore) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}
