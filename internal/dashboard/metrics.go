// Package dashboard turns the incident list into the figures shown on the
// SOC dashboard. The Build functions are pure and take the current time
// explicitly.
package dashboard

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/nfrund/cyberwatch/internal/domain"
)

const (
	trendHours    = 24
	maxSources    = 12
	recentLimit   = 6
	activityLimit = 5
	unknownSource = "Desconocido"
)

// KPIs are the headline counters.
type KPIs struct {
	Open        int
	Critical    int
	AlertsToday int
	// MTTRHours is the mean time to resolve closed incidents, truncated to
	// whole hours.
	MTTRHours int
}

// MTTR formats MTTRHours for display, e.g. "3h".
func (k KPIs) MTTR() string {
	return fmt.Sprintf("%dh", k.MTTRHours)
}

// BuildKPIs counts active and critical incidents, incidents detected since
// midnight UTC, and the mean time to resolve. An incident with no detection
// time counts as detected now.
func BuildKPIs(incidents []domain.Incident, now time.Time) KPIs {
	now = now.UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var k KPIs
	var resolved time.Duration
	var closed int
	for _, inc := range incidents {
		if inc.IsActive() {
			k.Open++
			if inc.Severity == domain.SeverityCritical {
				k.Critical++
			}
		} else {
			start, end := inc.Detected(), inc.Updated()
			if !start.IsZero() && !end.IsZero() && end.After(start) {
				resolved += end.Sub(start)
				closed++
			}
		}

		detected := inc.Detected()
		if detected.IsZero() {
			detected = now
		}
		if !detected.Before(todayStart) {
			k.AlertsToday++
		}
	}
	if closed > 0 {
		k.MTTRHours = int((resolved / time.Duration(closed)) / time.Hour)
	}
	return k
}

// SeverityShare is one bar of the severity distribution.
type SeverityShare struct {
	Severity string
	Count    int
	Percent  int
}

// SeverityDistribution breaks active incidents down by severity.
type SeverityDistribution struct {
	TotalActive int
	// Shares holds one entry per severity, most severe first.
	Shares []SeverityShare
}

// BuildSeverityDistribution counts active incidents per known severity.
// Percentages are rounded half to even, so they may not add up to 100.
// Incidents with an unknown severity are left out of the total.
func BuildSeverityDistribution(incidents []domain.Incident) SeverityDistribution {
	counts := make(map[string]int, len(domain.Severities))
	total := 0
	for _, inc := range incidents {
		if !inc.IsActive() || !domain.ValidSeverity(inc.Severity) {
			continue
		}
		counts[inc.Severity]++
		total++
	}

	dist := SeverityDistribution{TotalActive: total, Shares: make([]SeverityShare, 0, len(domain.Severities))}
	for _, sev := range domain.Severities {
		share := SeverityShare{Severity: sev, Count: counts[sev]}
		if total > 0 {
			share.Percent = int(math.RoundToEven(float64(share.Count*100) / float64(total)))
		}
		dist.Shares = append(dist.Shares, share)
	}
	return dist
}

// Trend is the hourly incident count over the last 24 hours, oldest first.
type Trend struct {
	Labels   []string
	Total    []int
	Critical []int
}

// BuildTrend buckets incidents by hour over the 24 hours ending at now. An
// incident is placed by its detection time, falling back to its update time.
// Incidents outside the window are skipped.
func BuildTrend(incidents []domain.Incident, now time.Time) Trend {
	now = now.UTC()
	start := now.Add(-trendHours * time.Hour)

	tr := Trend{
		Labels:   make([]string, trendHours),
		Total:    make([]int, trendHours),
		Critical: make([]int, trendHours),
	}
	for i := range tr.Labels {
		tr.Labels[i] = start.Add(time.Duration(i) * time.Hour).Format("15h")
	}

	for _, inc := range incidents {
		at := inc.Detected()
		if at.IsZero() {
			at = inc.Updated()
		}
		if at.IsZero() || at.Before(start) || at.After(now) {
			continue
		}
		idx := int(at.Sub(start) / time.Hour)
		if idx >= trendHours {
			continue
		}
		tr.Total[idx]++
		if inc.Severity == domain.SeverityCritical {
			tr.Critical[idx]++
		}
	}
	return tr
}

// SourceCount is the severity mix reported by one detection source.
type SourceCount struct {
	Source   string
	Info     int
	High     int
	Critical int
}

// Total is the number of incidents from the source.
func (s SourceCount) Total() int { return s.Info + s.High + s.Critical }

// BuildBySource groups every incident by source, busiest first, keeping the
// twelve busiest. Sources with equal totals keep first-seen order. Anything
// below Alto counts as info.
func BuildBySource(incidents []domain.Incident) []SourceCount {
	index := make(map[string]int)
	var out []SourceCount
	for _, inc := range incidents {
		src := inc.Source
		if src == "" {
			src = unknownSource
		}
		i, ok := index[src]
		if !ok {
			i = len(out)
			index[src] = i
			out = append(out, SourceCount{Source: src})
		}
		switch inc.Severity {
		case domain.SeverityCritical:
			out[i].Critical++
		case domain.SeverityHigh:
			out[i].High++
		default:
			out[i].Info++
		}
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].Total() > out[b].Total() })
	if len(out) > maxSources {
		out = out[:maxSources]
	}
	return out
}

// Latest returns up to limit incidents ordered by last change, newest first.
// The last change is the update time, then the detection time, then now.
// When activeOnly is set closed incidents are skipped.
func Latest(incidents []domain.Incident, now time.Time, limit int, activeOnly bool) []domain.Incident {
	out := make([]domain.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if activeOnly && !inc.IsActive() {
			continue
		}
		out = append(out, inc)
	}

	changed := func(inc domain.Incident) time.Time {
		if t := inc.Updated(); !t.IsZero() {
			return t
		}
		if t := inc.Detected(); !t.IsZero() {
			return t
		}
		return now
	}
	sort.SliceStable(out, func(a, b int) bool { return changed(out[a]).After(changed(out[b])) })

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Overview is everything the dashboard page renders.
type Overview struct {
	KPIs     KPIs
	Severity SeverityDistribution
	Trend    Trend
	Sources  []SourceCount
	// Recent lists the most recently changed active incidents.
	Recent []domain.Incident
	// Activity lists the most recently changed incidents of any status.
	Activity []domain.Incident
}

// Build computes the full overview at now.
func Build(incidents []domain.Incident, now time.Time) Overview {
	return Overview{
		KPIs:     BuildKPIs(incidents, now),
		Severity: BuildSeverityDistribution(incidents),
		Trend:    BuildTrend(incidents, now),
		Sources:  BuildBySource(incidents),
		Recent:   Latest(incidents, now, recentLimit, true),
		Activity: Latest(incidents, now, activityLimit, false),
	}
}
