package database

import (
	"context"
	"time"

	"github.com/nfrund/cyberwatch/internal/domain"
)

var _ domain.IncidentRepository = (*SurrealIncidentStore)(nil)

// SurrealIncidentStore keeps incidents in the SurrealDB "incident" table.
// It shares its connection with the user store.
type SurrealIncidentStore struct {
	conn    *Connection
	timeout time.Duration
}

// NewSurrealIncidentStore creates a store on an established connection.
func NewSurrealIncidentStore(conn *Connection, timeout time.Duration) *SurrealIncidentStore {
	return &SurrealIncidentStore{conn: conn, timeout: timeout}
}

// EnsureSchema defines the unique code index.
func (s *SurrealIncidentStore) EnsureSchema(ctx context.Context) error {
	db, err := s.conn.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return Execute(ctx, db, "DEFINE INDEX IF NOT EXISTS incident_code ON TABLE incident COLUMNS code UNIQUE", nil)
}

// List returns every incident, most recently detected first.
func (s *SurrealIncidentStore) List(ctx context.Context) ([]domain.Incident, error) {
	db, err := s.conn.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return Query[domain.Incident](ctx, db, "SELECT * FROM incident ORDER BY detected_at DESC", nil)
}

// Create inserts an incident. A taken code is reported before the insert so
// callers get ErrIncidentCodeTaken rather than an index violation.
func (s *SurrealIncidentStore) Create(ctx context.Context, incident *domain.Incident) (*domain.Incident, error) {
	db, err := s.conn.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	existing, err := QueryOne[domain.Incident](ctx, db, "SELECT * FROM incident WHERE code = $code",
		map[string]any{"code": incident.Code})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewDBError(domain.ErrIncidentCodeTaken, "create incident")
	}

	data := map[string]any{
		"code":        incident.Code,
		"title":       incident.Title,
		"severity":    incident.Severity,
		"status":      incident.Status,
		"source":      incident.Source,
		"description": incident.Description,
	}
	if incident.Owner != "" {
		data["owner"] = incident.Owner
	}
	if incident.DetectedAt != nil {
		data["detected_at"] = incident.DetectedAt
	}
	if incident.UpdatedAt != nil {
		data["updated_at"] = incident.UpdatedAt
	}

	created, err := QueryOne[domain.Incident](ctx, db, "CREATE type::table($table) CONTENT $data",
		map[string]any{"table": incidentTable, "data": data})
	if err != nil {
		return nil, NewDBError(err, "create incident")
	}
	if created == nil {
		return nil, NewDBError(ErrQueryFailed, "create incident returned no record")
	}
	return created, nil
}
