package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"text/tabwriter"
	"time"

	"github.com/nfrund/cyberwatch/internal/domain"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

func newIncidentCmd() *cobra.Command {
	incidentCmd := &cobra.Command{
		Use:   "incident",
		Short: "Manage incidents",
	}
	incidentCmd.AddCommand(newIncidentSeedCmd(), newIncidentListCmd())
	return incidentCmd
}

func newIncidentSeedCmd() *cobra.Command {
	var (
		count int
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate sample incidents for the last 24 hours",
		Long: `Generate sample incidents detected at random times over the last 24 hours.

Owners are picked from the active users, with a good chance of leaving the
incident unassigned. Codes continue this year's INC-YYYY-NNNN sequence.

Examples:
  cyberwatch-cli incident seed
  cyberwatch-cli incident seed --count 5 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return errors.New("--count must be at least 1")
			}

			injector, closeStores, err := openInjector(cmd)
			if err != nil {
				return err
			}
			defer closeStores()

			users, err := do.Invoke[domain.UserRepository](injector)
			if err != nil {
				return err
			}
			incidents, err := do.Invoke[domain.IncidentRepository](injector)
			if err != nil {
				return err
			}

			all, err := users.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list users: %w", err)
			}
			// Two empty owners make "unassigned" more likely.
			owners := []string{"", ""}
			for _, u := range all {
				if u.IsActive {
					owners = append(owners, u.FullName)
				}
			}
			if len(owners) == 2 {
				return errors.New("no active users: create one with \"user create\" first")
			}

			existing, err := incidents.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list incidents: %w", err)
			}
			codes := make([]string, 0, len(existing)+count)
			for _, inc := range existing {
				codes = append(codes, inc.Code)
			}

			if seed == 0 {
				seed = rand.Uint64()
			}
			rng := rand.New(rand.NewPCG(seed, seed))
			now := time.Now().UTC()

			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				detected := now.Add(-time.Duration(rng.Float64() * float64(24*time.Hour)))
				code := domain.NextIncidentCode(now.Year(), codes)
				codes = append(codes, code)

				n := i % len(sampleTitles)
				created, err := incidents.Create(cmd.Context(), &domain.Incident{
					Code:        code,
					Title:       sampleTitles[n],
					Description: sampleDescriptions[n],
					Severity:    domain.Severities[rng.IntN(len(domain.Severities))],
					Status:      domain.Statuses[rng.IntN(len(domain.Statuses))],
					Source:      sampleSources[rng.IntN(len(sampleSources))],
					Owner:       owners[rng.IntN(len(owners))],
					DetectedAt:  domain.NewDateTime(detected),
					UpdatedAt:   domain.NewDateTime(detected),
				})
				if err != nil {
					return fmt.Errorf("create incident %s: %w", code, err)
				}
				fmt.Fprintf(out, "%s  %-9s %s\n", created.Code, created.Severity, created.Title)
			}

			fmt.Fprintf(out, "Created %d incident(s) over the last 24 hours.\n", count)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", len(sampleTitles), "number of incidents to create")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed; 0 picks one")
	return cmd
}

func newIncidentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List incidents, most recently detected first",
		RunE: func(cmd *cobra.Command, args []string) error {
			injector, closeStores, err := openInjector(cmd)
			if err != nil {
				return err
			}
			defer closeStores()

			repo, err := do.Invoke[domain.IncidentRepository](injector)
			if err != nil {
				return err
			}
			incidents, err := repo.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list incidents: %w", err)
			}
			if len(incidents) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No incidents found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tSEVERITY\tSTATUS\tSOURCE\tDETECTED")
			for _, inc := range incidents {
				detected := "-"
				if t := inc.Detected(); !t.IsZero() {
					detected = t.UTC().Format(time.DateTime)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", inc.Code, inc.Severity, inc.Status, inc.Source, detected)
			}
			return w.Flush()
		},
	}
}
