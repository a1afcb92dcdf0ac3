package testutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/nfrund/cyberwatch/internal/config"
	"github.com/nfrund/cyberwatch/internal/domain"
	"github.com/nfrund/cyberwatch/internal/password"
	"github.com/stretchr/testify/require"
)

// TestSessionSecret keys the cookie store in tests.
const TestSessionSecret = "a-very-secret-key-for-testing-!"

// ConfigForTests returns a file-store configuration suitable for running the
// whole application in-process.
func ConfigForTests(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AppAddr:         ":0",
		AppBaseURL:      "http://localhost",
		SessionSecret:   TestSessionSecret,
		UserStore:       config.StoreFile,
		UsersFile:       "users.json",
		IncidentsFile:   "incidents.json",
		DBQueryTimeout:  time.Second,
		ClientValidator: config.ClientValidatorJS,
		LoginRateLimit:  100,
		LogFormat:       "text",
		LogLevel:        "error",
	}
}

// LoadEnvTest copies the values of the project's .env.test file, if there is
// one, into the test's environment.
func LoadEnvTest(t *testing.T) {
	t.Helper()

	// Find project root by looking for go.mod to reliably locate .env.test
	path, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
			break
		}
		if path == filepath.Dir(path) {
			t.Fatalf("could not find project root with go.mod")
		}
		path = filepath.Dir(path)
	}

	env, err := godotenv.Read(filepath.Join(path, ".env.test"))
	if err != nil {
		return
	}
	for key, value := range env {
		if _, set := os.LookupEnv(key); !set {
			t.Setenv(key, value)
		}
	}
}

// CreateUser stores a user whose password is the bcrypt hash of pw.
func CreateUser(t *testing.T, repo domain.UserRepository, email, pw, fullName string, active bool) *domain.User {
	t.Helper()

	hash, err := password.Hash(pw)
	require.NoError(t, err)
	u, err := repo.Create(context.Background(), &domain.User{
		Email:    email,
		Password: hash,
		FullName: fullName,
		IsActive: active,
		Role:     domain.RoleAnalyst,
	})
	require.NoError(t, err)
	return u
}
