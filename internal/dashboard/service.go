package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/nfrund/cyberwatch/internal/domain"
)

// Service loads incidents and builds the dashboard overview.
type Service struct {
	incidents domain.IncidentRepository
	now       func() time.Time
}

// NewService creates a Service reading from repo.
func NewService(repo domain.IncidentRepository) *Service {
	return &Service{incidents: repo, now: time.Now}
}

// Overview returns the dashboard figures for the current moment.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	incidents, err := s.incidents.List(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("list incidents: %w", err)
	}
	return Build(incidents, s.now()), nil
}
