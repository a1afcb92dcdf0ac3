package database

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/nfrund/cyberwatch/internal/domain"
	"github.com/spf13/afero"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// var _ ensures that FileUserStore implements the domain.UserRepository interface at compile time.
var _ domain.UserRepository = (*FileUserStore)(nil)

// fileUser is the on-disk form of a user. IDs are stored as plain strings.
type fileUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	IsActive bool   `json:"is_active"`
	Role     string `json:"role"`
}

// FileUserStore keeps users in a single JSON document on an afero filesystem.
// Every call re-reads the file so edits made by the CLI are picked up.
type FileUserStore struct {
	file jsonFile[fileUser]
	mu   sync.Mutex
}

// NewFileUserStore creates a store backed by path on fs. The file is created
// lazily on first write.
func NewFileUserStore(fs afero.Fs, path string) *FileUserStore {
	return &FileUserStore{file: jsonFile[fileUser]{fs: fs, path: path, kind: "user"}}
}

// FindByEmail retrieves a user by their email address.
func (s *FileUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.file.load()
	if err != nil {
		return nil, err
	}
	email = domain.NormalizeEmail(email)
	for _, u := range users {
		if u.Email == email {
			return u.toDomain(), nil
		}
	}
	return nil, NewDBError(domain.ErrNotFound, "user not found")
}

// Create appends a user with a fresh ID.
func (s *FileUserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.file.load()
	if err != nil {
		return nil, err
	}
	email := domain.NormalizeEmail(user.Email)
	for _, u := range users {
		if u.Email == email {
			return nil, NewDBError(domain.ErrUserAlreadyExists, "create user")
		}
	}

	rec := fileUser{
		ID:       uuid.NewString(),
		Email:    email,
		Password: user.Password,
		FullName: user.FullName,
		IsActive: user.IsActive,
		Role:     user.Role,
	}
	if err := s.file.save(append(users, rec)); err != nil {
		return nil, err
	}
	return rec.toDomain(), nil
}

// List returns every user ordered by email.
func (s *FileUserStore) List(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.file.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })

	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, *u.toDomain())
	}
	return out, nil
}

// UpdatePassword replaces the stored password value for email.
func (s *FileUserStore) UpdatePassword(ctx context.Context, email, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.file.load()
	if err != nil {
		return err
	}
	email = domain.NormalizeEmail(email)
	for i := range users {
		if users[i].Email == email {
			users[i].Password = hash
			return s.file.save(users)
		}
	}
	return NewDBError(domain.ErrNotFound, "update password")
}

func (u fileUser) toDomain() *domain.User {
	id := surrealmodels.NewRecordID(userTable, u.ID)
	return &domain.User{
		ID:       &id,
		Email:    u.Email,
		Password: u.Password,
		FullName: u.FullName,
		IsActive: u.IsActive,
		Role:     u.Role,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
