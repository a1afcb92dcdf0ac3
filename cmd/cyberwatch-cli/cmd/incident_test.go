package cmd

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/nfrund/cyberwatch/internal/database"
	"github.com/nfrund/cyberwatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncidentSeed(t *testing.T) {
	fs := setupFs(t)
	_, err := run(t, "user", "create", "--email", "ana@example.com", "--password", "s3cret", "--full-name", "Ana Lista")
	require.NoError(t, err)
	_, err = run(t, "user", "create", "--email", "ex@example.com", "--password", "s3cret", "--full-name", "Ex Empleado", "--inactive")
	require.NoError(t, err)

	out, err := run(t, "incident", "seed", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Created 23 incident(s) over the last 24 hours.")

	store := database.NewFileIncidentStore(fs, testIncidentsFile)
	incidents, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, incidents, 23)

	year := time.Now().UTC().Year()
	now := time.Now().UTC()
	codes := map[string]bool{}
	for _, inc := range incidents {
		codes[inc.Code] = true
		assert.True(t, domain.ValidSeverity(inc.Severity), inc.Severity)
		assert.True(t, domain.ValidStatus(inc.Status), inc.Status)
		assert.Contains(t, sampleSources, inc.Source)
		assert.NotEqual(t, "Ex Empleado", inc.Owner)
		assert.WithinDuration(t, now.Add(-12*time.Hour), inc.Detected(), 12*time.Hour+time.Minute)
		assert.True(t, inc.Detected().Equal(inc.Updated()))
	}
	assert.True(t, codes[fmt.Sprintf("INC-%d-0001", year)])
	assert.True(t, codes[fmt.Sprintf("INC-%d-0023", year)])

	out, err = run(t, "incident", "seed", "--count", "2", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("INC-%d-0025", year))
}

func TestIncidentSeed_Errors(t *testing.T) {
	setupFs(t)

	_, err := run(t, "incident", "seed")
	assert.ErrorContains(t, err, "no active users")

	_, err = run(t, "incident", "seed", "--count", "0")
	assert.ErrorContains(t, err, "--count must be at least 1")
}

func TestIncidentList(t *testing.T) {
	fs := setupFs(t)

	out, err := run(t, "incident", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No incidents found.")

	store := database.NewFileIncidentStore(fs, testIncidentsFile)
	_, err = store.Create(context.Background(), &domain.Incident{
		Code:       "INC-2025-0001",
		Severity:   domain.SeverityHigh,
		Status:     domain.StatusOpen,
		Source:     "EDR",
		DetectedAt: domain.NewDateTime(time.Date(2025, 6, 1, 8, 15, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	out, err = run(t, "incident", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "CODE")
	assert.Contains(t, lines[1], "INC-2025-0001")
	assert.Contains(t, lines[1], "2025-06-01 08:15:00")
}
