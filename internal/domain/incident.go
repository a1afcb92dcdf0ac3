package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Incident severities, most severe first.
const (
	SeverityCritical = "Crítico"
	SeverityHigh     = "Alto"
	SeverityMedium   = "Medio"
	SeverityLow      = "Bajo"
)

// Severities lists every severity from most to least severe.
var Severities = []string{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Incident statuses in workflow order.
const (
	StatusOpen          = "Abierto"
	StatusInvestigating = "En investigación"
	StatusAssigned      = "Asignado"
	StatusMitigated     = "Mitigado"
	StatusClosed        = "Cerrado"
)

// Statuses lists every status in workflow order.
var Statuses = []string{StatusOpen, StatusInvestigating, StatusAssigned, StatusMitigated, StatusClosed}

// Incident is a security event tracked by the SOC.
type Incident struct {
	ID          *surrealmodels.RecordID       `json:"id,omitempty"`
	Code        string                        `json:"code"`
	Title       string                        `json:"title"`
	Severity    string                        `json:"severity"`
	Status      string                        `json:"status"`
	Source      string                        `json:"source"`
	Owner       string                        `json:"owner,omitempty"`
	DetectedAt  *surrealmodels.CustomDateTime `json:"detected_at,omitempty"`
	UpdatedAt   *surrealmodels.CustomDateTime `json:"updated_at,omitempty"`
	Description string                        `json:"description"`
}

// IsActive reports whether the incident still needs attention. Any status
// mentioning "cerrado" counts as closed, and so does a missing status.
func (i Incident) IsActive() bool {
	return i.Status != "" && !strings.Contains(strings.ToLower(i.Status), "cerrado")
}

// Detected returns the detection time, or the zero time when unknown.
func (i Incident) Detected() time.Time {
	if i.DetectedAt == nil {
		return time.Time{}
	}
	return i.DetectedAt.Time
}

// Updated returns the last update time, or the zero time when unknown.
func (i Incident) Updated() time.Time {
	if i.UpdatedAt == nil {
		return time.Time{}
	}
	return i.UpdatedAt.Time
}

// NewDateTime wraps t for storage on an Incident.
func NewDateTime(t time.Time) *surrealmodels.CustomDateTime {
	return &surrealmodels.CustomDateTime{Time: t.UTC()}
}

// ValidSeverity reports whether s is a known severity.
func ValidSeverity(s string) bool {
	for _, v := range Severities {
		if v == s {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known status.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// NextIncidentCode returns the code following the highest "INC-<year>-NNNN"
// code in existing. Numbering restarts at 0001 every year.
func NextIncidentCode(year int, existing []string) string {
	prefix := fmt.Sprintf("INC-%d-", year)
	last := 0
	for _, code := range existing {
		rest, ok := strings.CutPrefix(code, prefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > last {
			last = n
		}
	}
	return fmt.Sprintf("%s%04d", prefix, last+1)
}

// IncidentRepository stores incidents.
type IncidentRepository interface {
	// List returns every incident, most recently detected first.
	List(ctx context.Context) ([]Incident, error)
	// Create assigns an ID. It returns ErrIncidentCodeTaken when the code
	// is already in use.
	Create(ctx context.Context, incident *Incident) (*Incident, error)
}
