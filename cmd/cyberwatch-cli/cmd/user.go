package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/nfrund/cyberwatch/internal/domain"
	"github.com/nfrund/cyberwatch/internal/password"
	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	userCmd.AddCommand(newUserCreateCmd(), newUserListCmd(), newUserMigrateCmd())
	return userCmd
}

func newUserCreateCmd() *cobra.Command {
	var (
		email    string
		pw       string
		fullName string
		role     string
		inactive bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		Long: `Create a user account with a bcrypt-hashed password.

Examples:
  cyberwatch-cli user create --email ana@example.com --password s3cret --full-name "Ana Lista"
  cyberwatch-cli user create --email root@example.com --password s3cret --full-name Root --role admin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.ValidRole(role) {
				return fmt.Errorf("invalid role %q: must be %s or %s", role, domain.RoleAdmin, domain.RoleAnalyst)
			}
			if domain.NormalizeEmail(email) == "" {
				return errors.New("--email must not be blank")
			}

			hash, err := password.Hash(pw)
			if err != nil {
				return err
			}

			users, closeUsers, err := openUsers(cmd)
			if err != nil {
				return err
			}
			defer closeUsers()

			created, err := users.Create(cmd.Context(), &domain.User{
				Email:    email,
				Password: hash,
				FullName: fullName,
				IsActive: !inactive,
				Role:     role,
			})
			if errors.Is(err, domain.ErrUserAlreadyExists) {
				return fmt.Errorf("a user with email %s already exists", domain.NormalizeEmail(email))
			}
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", created.Email, created.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "login email (required)")
	cmd.Flags().StringVar(&pw, "password", "", "plaintext password, hashed before storing (required)")
	cmd.Flags().StringVar(&fullName, "full-name", "", "display name (required)")
	cmd.Flags().StringVar(&role, "role", domain.RoleAnalyst, "role: admin or analyst")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "create the account disabled")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("full-name")
	return cmd
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, closeUsers, err := openUsers(cmd)
			if err != nil {
				return err
			}
			defer closeUsers()

			all, err := users.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list users: %w", err)
			}
			if len(all) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "EMAIL\tNAME\tROLE\tACTIVE")
			fmt.Fprintln(w, "-----\t----\t----\t------")
			for _, u := range all {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", u.Email, u.FullName, u.Role, u.IsActive)
			}
			return w.Flush()
		},
	}
}

func newUserMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-passwords",
		Short: "Hash any legacy plaintext passwords",
		Long: `Rewrite every stored password that is not yet a bcrypt hash.
Accounts with plaintext passwords cannot sign in until this has run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, closeUsers, err := openUsers(cmd)
			if err != nil {
				return err
			}
			defer closeUsers()

			all, err := users.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list users: %w", err)
			}

			var migrated, hashed int
			for _, u := range all {
				newHash, err := password.Upgrade(u.Password)
				if errors.Is(err, password.ErrAlreadyHashed) {
					hashed++
					continue
				}
				if err != nil {
					return fmt.Errorf("hash password for %s: %w", u.Email, err)
				}
				if err := users.UpdatePassword(cmd.Context(), u.Email, newHash); err != nil {
					return fmt.Errorf("update password for %s: %w", u.Email, err)
				}
				migrated++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d password(s), %d already hashed.\n", migrated, hashed)
			return nil
		},
	}
}
