package dashboard_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/nfrund/cyberwatch/internal/dashboard"
	"github.com/nfrund/cyberwatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)

// incident builds an incident; zero times are left unset.
func incident(severity, status string, detected, updated time.Time) domain.Incident {
	inc := domain.Incident{Severity: severity, Status: status, Source: "SIEM"}
	if !detected.IsZero() {
		inc.DetectedAt = domain.NewDateTime(detected)
	}
	if !updated.IsZero() {
		inc.UpdatedAt = domain.NewDateTime(updated)
	}
	return inc
}

func TestBuildKPIs(t *testing.T) {
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	var none time.Time

	tests := []struct {
		name      string
		incidents []domain.Incident
		want      dashboard.KPIs
		mttr      string
	}{
		{
			name: "no incidents",
			want: dashboard.KPIs{},
			mttr: "0h",
		},
		{
			name: "open and critical count active incidents only",
			incidents: []domain.Incident{
				incident(domain.SeverityCritical, domain.StatusOpen, now, none),
				incident(domain.SeverityHigh, domain.StatusInvestigating, now, none),
				incident(domain.SeverityCritical, domain.StatusClosed, now, none),
			},
			want: dashboard.KPIs{Open: 2, Critical: 1, AlertsToday: 3},
			mttr: "0h",
		},
		{
			name: "alerts today start at midnight UTC",
			incidents: []domain.Incident{
				incident(domain.SeverityLow, domain.StatusOpen, today, none),
				incident(domain.SeverityLow, domain.StatusOpen, today.Add(-time.Second), none),
				incident(domain.SeverityLow, domain.StatusOpen, none, none),
			},
			want: dashboard.KPIs{Open: 3, AlertsToday: 2},
			mttr: "0h",
		},
		{
			name: "mttr averages closed incidents and truncates to hours",
			incidents: []domain.Incident{
				incident(domain.SeverityLow, domain.StatusClosed, today.Add(-24*time.Hour), today.Add(-22*time.Hour)),
				incident(domain.SeverityLow, domain.StatusClosed, today.Add(-24*time.Hour), today.Add(-18*time.Hour-30*time.Minute)),
				// Skipped: resolved before detection, no update, still active.
				incident(domain.SeverityLow, domain.StatusClosed, today.Add(-time.Hour), today.Add(-2*time.Hour)),
				incident(domain.SeverityLow, domain.StatusClosed, today.Add(-time.Hour), none),
				incident(domain.SeverityLow, domain.StatusMitigated, today.Add(-48*time.Hour), today),
			},
			want: dashboard.KPIs{Open: 1, MTTRHours: 3},
			mttr: "3h",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dashboard.BuildKPIs(tt.incidents, now)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.mttr, got.MTTR())
		})
	}
}

func TestBuildSeverityDistribution(t *testing.T) {
	active := func(sev string, n int) []domain.Incident {
		out := make([]domain.Incident, n)
		for i := range out {
			out[i] = incident(sev, domain.StatusOpen, now, time.Time{})
		}
		return out
	}
	join := func(parts ...[]domain.Incident) []domain.Incident {
		var out []domain.Incident
		for _, p := range parts {
			out = append(out, p...)
		}
		return out
	}

	tests := []struct {
		name      string
		incidents []domain.Incident
		total     int
		counts    [4]int
		percents  [4]int
	}{
		{
			name:  "nothing active",
			total: 0,
			incidents: []domain.Incident{
				incident(domain.SeverityCritical, domain.StatusClosed, now, time.Time{}),
			},
		},
		{
			name:      "thirds",
			incidents: join(active(domain.SeverityCritical, 1), active(domain.SeverityHigh, 1), active(domain.SeverityLow, 1)),
			total:     3,
			counts:    [4]int{1, 1, 0, 1},
			percents:  [4]int{33, 33, 0, 33},
		},
		{
			name:      "halves round to even",
			incidents: join(active(domain.SeverityCritical, 1), active(domain.SeverityHigh, 3), active(domain.SeverityMedium, 4)),
			total:     8,
			counts:    [4]int{1, 3, 4, 0},
			percents:  [4]int{12, 38, 50, 0},
		},
		{
			name:      "unknown severities are ignored",
			incidents: join(active("Informativo", 2), active(domain.SeverityMedium, 1)),
			total:     1,
			counts:    [4]int{0, 0, 1, 0},
			percents:  [4]int{0, 0, 100, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dashboard.BuildSeverityDistribution(tt.incidents)
			assert.Equal(t, tt.total, got.TotalActive)
			require.Len(t, got.Shares, 4)
			for i, share := range got.Shares {
				assert.Equal(t, domain.Severities[i], share.Severity)
				assert.Equal(t, tt.counts[i], share.Count, share.Severity)
				assert.Equal(t, tt.percents[i], share.Percent, share.Severity)
			}
		})
	}
}

func TestBuildTrend(t *testing.T) {
	start := now.Add(-24 * time.Hour)
	var none time.Time

	tests := []struct {
		name     string
		incident domain.Incident
		bucket   int // -1 when the incident falls outside the window
		critical bool
	}{
		{"start of window", incident(domain.SeverityLow, domain.StatusOpen, start, none), 0, false},
		{"last hour", incident(domain.SeverityCritical, domain.StatusOpen, now.Add(-30*time.Minute), none), 23, true},
		{"falls back to update time", incident(domain.SeverityHigh, domain.StatusOpen, none, now.Add(-2*time.Hour)), 22, false},
		{"exactly now is past the last bucket", incident(domain.SeverityLow, domain.StatusOpen, now, none), -1, false},
		{"before window", incident(domain.SeverityLow, domain.StatusOpen, start.Add(-time.Second), none), -1, false},
		{"in the future", incident(domain.SeverityLow, domain.StatusOpen, now.Add(time.Minute), none), -1, false},
		{"no times", incident(domain.SeverityLow, domain.StatusOpen, none, none), -1, false},
		{"closed incidents count too", incident(domain.SeverityLow, domain.StatusClosed, start.Add(90*time.Minute), none), 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dashboard.BuildTrend([]domain.Incident{tt.incident}, now)
			require.Len(t, got.Total, 24)
			require.Len(t, got.Critical, 24)

			wantTotal := make([]int, 24)
			wantCritical := make([]int, 24)
			if tt.bucket >= 0 {
				wantTotal[tt.bucket] = 1
				if tt.critical {
					wantCritical[tt.bucket] = 1
				}
			}
			assert.Equal(t, wantTotal, got.Total)
			assert.Equal(t, wantCritical, got.Critical)
		})
	}
}

func TestBuildTrend_Labels(t *testing.T) {
	got := dashboard.BuildTrend(nil, now)

	require.Len(t, got.Labels, 24)
	assert.Equal(t, "14h", got.Labels[0])
	assert.Equal(t, "00h", got.Labels[10])
	assert.Equal(t, "13h", got.Labels[23])
}

func TestBuildBySource(t *testing.T) {
	withSource := func(src, sev string) domain.Incident {
		inc := incident(sev, domain.StatusOpen, now, time.Time{})
		inc.Source = src
		return inc
	}

	got := dashboard.BuildBySource([]domain.Incident{
		withSource("Firewall", domain.SeverityLow),
		withSource("EDR", domain.SeverityCritical),
		withSource("", domain.SeverityMedium),
		withSource("EDR", domain.SeverityHigh),
	})

	assert.Equal(t, []dashboard.SourceCount{
		{Source: "EDR", High: 1, Critical: 1},
		{Source: "Firewall", Info: 1},
		{Source: "Desconocido", Info: 1},
	}, got)
	assert.Equal(t, 2, got[0].Total())
}

func TestBuildBySource_KeepsTwelveBusiest(t *testing.T) {
	var incidents []domain.Incident
	for i := 0; i < 14; i++ {
		for n := 0; n <= i; n++ {
			inc := incident(domain.SeverityLow, domain.StatusOpen, now, time.Time{})
			inc.Source = fmt.Sprintf("src-%02d", i)
			incidents = append(incidents, inc)
		}
	}

	got := dashboard.BuildBySource(incidents)

	require.Len(t, got, 12)
	assert.Equal(t, "src-13", got[0].Source)
	assert.Equal(t, "src-02", got[11].Source)
}

func TestLatest(t *testing.T) {
	var none time.Time
	coded := func(code string, inc domain.Incident) domain.Incident {
		inc.Code = code
		return inc
	}
	incidents := []domain.Incident{
		coded("updated-old", incident(domain.SeverityLow, domain.StatusOpen, now.Add(-5*time.Hour), now.Add(-4*time.Hour))),
		coded("detected-only", incident(domain.SeverityLow, domain.StatusOpen, now.Add(-time.Hour), none)),
		coded("closed", incident(domain.SeverityLow, domain.StatusClosed, now.Add(-3*time.Hour), now.Add(-time.Minute))),
		coded("undated", incident(domain.SeverityLow, domain.StatusOpen, none, none)),
	}
	codes := func(list []domain.Incident) []string {
		out := make([]string, 0, len(list))
		for _, inc := range list {
			out = append(out, inc.Code)
		}
		return out
	}

	tests := []struct {
		name       string
		limit      int
		activeOnly bool
		want       []string
	}{
		{"active only", 6, true, []string{"undated", "detected-only", "updated-old"}},
		{"all statuses", 5, false, []string{"undated", "closed", "detected-only", "updated-old"}},
		{"limit", 2, false, []string{"undated", "closed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codes(dashboard.Latest(incidents, now, tt.limit, tt.activeOnly)))
		})
	}
}

func TestBuild(t *testing.T) {
	var incidents []domain.Incident
	for i := 0; i < 8; i++ {
		incidents = append(incidents, incident(domain.SeverityHigh, domain.StatusOpen, now.Add(-time.Duration(i)*time.Hour-time.Minute), time.Time{}))
	}

	got := dashboard.Build(incidents, now)

	assert.Equal(t, 8, got.KPIs.Open)
	assert.Equal(t, 8, got.Severity.TotalActive)
	assert.Len(t, got.Trend.Labels, 24)
	assert.Len(t, got.Recent, 6)
	assert.Len(t, got.Activity, 5)
	require.Len(t, got.Sources, 1)
	assert.Equal(t, 8, got.Sources[0].High)
}
