package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// User store backends.
const (
	StoreFile    = "file"
	StoreSurreal = "surreal"
)

// Client-side validator flavours served with the login page.
const (
	ClientValidatorJS   = "js"
	ClientValidatorWasm = "wasm"
	ClientValidatorNone = "none"
)

// Provider exposes configuration to the rest of the application so tests can
// substitute their own values.
type Provider interface {
	GetAppAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetUserStore() string
	GetUsersFile() string
	GetIncidentsFile() string
	GetDBURL() string
	GetDBNs() string
	GetDBDb() string
	GetDBUser() string
	GetDBPass() string
	GetDBQueryTimeout() time.Duration
	GetClientValidator() string
	GetLoginRateLimit() int
	GetLogFormat() string
	GetLogLevel() string
}

// Config holds all configuration for the application.
type Config struct {
	AppAddr         string
	AppBaseURL      string
	SessionSecret   string
	UserStore       string
	UsersFile       string
	IncidentsFile   string
	DBUrl           string
	DBNs            string
	DBDb            string
	DBUser          string
	DBPass          string
	DBQueryTimeout  time.Duration
	ClientValidator string
	LoginRateLimit  int
	LogFormat       string
	LogLevel        string
}

var _ Provider = (*Config)(nil)

// ErrMissingSessionSecret is returned when SESSION_SECRET is unset or too short
// to key the cookie store.
var ErrMissingSessionSecret = errors.New("SESSION_SECRET must be set to at least 16 bytes")

// New loads configuration from a .env file, if present, and the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// NewTooling is New for the admin CLI, which never serves sessions and so
// does not require SESSION_SECRET.
func NewTooling() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	cfg, err := readEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.validateStore(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg, err := readEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readEnv() (*Config, error) {
	cfg := &Config{
		AppAddr:         getEnv("APP_ADDR", ":8080"),
		AppBaseURL:      getEnv("APP_BASE_URL", "http://localhost:8080"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		UserStore:       getEnv("USER_STORE", StoreFile),
		UsersFile:       getEnv("USERS_FILE", "data/users.json"),
		IncidentsFile:   getEnv("INCIDENTS_FILE", "data/incidents.json"),
		DBUrl:           os.Getenv("SURREAL_URL"),
		DBNs:            os.Getenv("SURREAL_NS"),
		DBDb:            os.Getenv("SURREAL_DB"),
		DBUser:          os.Getenv("SURREAL_USER"),
		DBPass:          os.Getenv("SURREAL_PASS"),
		ClientValidator: getEnv("CLIENT_VALIDATOR", ClientValidatorJS),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		LogLevel:        getEnv("LOG_LEVEL", "debug"),
	}

	timeout, err := time.ParseDuration(getEnv("DB_QUERY_TIMEOUT", "5s"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("DB_QUERY_TIMEOUT must be a positive duration, got %q", os.Getenv("DB_QUERY_TIMEOUT"))
	}
	cfg.DBQueryTimeout = timeout

	limit, err := strconv.Atoi(getEnv("LOGIN_RATE_LIMIT", "10"))
	if err != nil || limit <= 0 {
		return nil, fmt.Errorf("LOGIN_RATE_LIMIT must be a positive integer, got %q", os.Getenv("LOGIN_RATE_LIMIT"))
	}
	cfg.LoginRateLimit = limit
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.SessionSecret) < 16 {
		return ErrMissingSessionSecret
	}
	if err := c.validateStore(); err != nil {
		return err
	}

	switch c.ClientValidator {
	case ClientValidatorJS, ClientValidatorWasm, ClientValidatorNone:
	default:
		return fmt.Errorf("unknown CLIENT_VALIDATOR %q", c.ClientValidator)
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.UserStore {
	case StoreFile:
		if c.UsersFile == "" {
			return errors.New("USERS_FILE is required when USER_STORE=file")
		}
		if c.IncidentsFile == "" {
			return errors.New("INCIDENTS_FILE is required when USER_STORE=file")
		}
	case StoreSurreal:
		if c.DBUrl == "" || c.DBNs == "" || c.DBDb == "" || c.DBUser == "" || c.DBPass == "" {
			return errors.New("USER_STORE=surreal requires SURREAL_URL, SURREAL_NS, SURREAL_DB, SURREAL_USER and SURREAL_PASS")
		}
	default:
		return fmt.Errorf("unknown USER_STORE %q", c.UserStore)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func (c *Config) GetAppAddr() string               { return c.AppAddr }
func (c *Config) GetAppBaseURL() string            { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string         { return c.SessionSecret }
func (c *Config) GetUserStore() string             { return c.UserStore }
func (c *Config) GetUsersFile() string             { return c.UsersFile }
func (c *Config) GetIncidentsFile() string         { return c.IncidentsFile }
func (c *Config) GetDBURL() string                 { return c.DBUrl }
func (c *Config) GetDBNs() string                  { return c.DBNs }
func (c *Config) GetDBDb() string                  { return c.DBDb }
func (c *Config) GetDBUser() string                { return c.DBUser }
func (c *Config) GetDBPass() string                { return c.DBPass }
func (c *Config) GetDBQueryTimeout() time.Duration { return c.DBQueryTimeout }
func (c *Config) GetClientValidator() string       { return c.ClientValidator }
func (c *Config) GetLoginRateLimit() int           { return c.LoginRateLimit }
func (c *Config) GetLogFormat() string             { return c.LogFormat }
func (c *Config) GetLogLevel() string              { return c.LogLevel }
