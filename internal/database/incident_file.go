package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/cyberwatch/internal/domain"
	"github.com/spf13/afero"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

const incidentTable = "incident"

var _ domain.IncidentRepository = (*FileIncidentStore)(nil)

// fileIncident is the on-disk form of an incident. Unknown times are stored
// as null.
type fileIncident struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Title       string     `json:"title"`
	Severity    string     `json:"severity"`
	Status      string     `json:"status"`
	Source      string     `json:"source"`
	Owner       string     `json:"owner,omitempty"`
	DetectedAt  *time.Time `json:"detected_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	Description string     `json:"description"`
}

// FileIncidentStore keeps incidents in a JSON document next to the users file.
type FileIncidentStore struct {
	file jsonFile[fileIncident]
	mu   sync.Mutex
}

// NewFileIncidentStore creates a store backed by path on fs.
func NewFileIncidentStore(fs afero.Fs, path string) *FileIncidentStore {
	return &FileIncidentStore{file: jsonFile[fileIncident]{fs: fs, path: path, kind: "incident"}}
}

// List returns every incident, most recently detected first.
func (s *FileIncidentStore) List(ctx context.Context) ([]domain.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.file.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Incident, 0, len(records))
	for _, r := range records {
		out = append(out, r.toDomain())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Detected().After(out[j].Detected()) })
	return out, nil
}

// Create appends an incident with a fresh ID.
func (s *FileIncidentStore) Create(ctx context.Context, incident *domain.Incident) (*domain.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.file.load()
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.Code == incident.Code {
			return nil, NewDBError(domain.ErrIncidentCodeTaken, "create incident")
		}
	}

	rec := fileIncident{
		ID:          uuid.NewString(),
		Code:        incident.Code,
		Title:       incident.Title,
		Severity:    incident.Severity,
		Status:      incident.Status,
		Source:      incident.Source,
		Owner:       incident.Owner,
		DetectedAt:  optionalTime(incident.Detected()),
		UpdatedAt:   optionalTime(incident.Updated()),
		Description: incident.Description,
	}
	if err := s.file.save(append(records, rec)); err != nil {
		return nil, err
	}
	created := rec.toDomain()
	return &created, nil
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}

func (r fileIncident) toDomain() domain.Incident {
	id := surrealmodels.NewRecordID(incidentTable, r.ID)
	inc := domain.Incident{
		ID:          &id,
		Code:        r.Code,
		Title:       r.Title,
		Severity:    r.Severity,
		Status:      r.Status,
		Source:      r.Source,
		Owner:       r.Owner,
		Description: r.Description,
	}
	if r.DetectedAt != nil {
		inc.DetectedAt = domain.NewDateTime(*r.DetectedAt)
	}
	if r.UpdatedAt != nil {
		inc.UpdatedAt = domain.NewDateTime(*r.UpdatedAt)
	}
	return inc
}
