package cli

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"talentboard/internal/domain"
)

func newLoginCmd(client *Client, profile *string) *cobra.Command {
	var (
		username string
		password string
		roleStr  string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and save the token to the active profile",
		Long:  "Log in against the applicant tracking system and store the bearer token in the active profile. The password is prompted interactively unless --password is given.",
		Example: `  # Log in as a panelist (password prompted)
  talentboard login --username kminchelle --role panelist

  # Non-interactive login
  talentboard login --username kminchelle --password secret --role admin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			role, err := domain.ParseRole(roleStr)
			if err != nil {
				return err
			}

			if password == "" {
				fmt.Fprint(os.Stderr, "Password: ")
				raw, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Fprintln(os.Stderr)
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimSpace(string(raw))
			}

			result, err := client.Login(cmd.Context(), username, password, role)
			if err != nil {
				return err
			}
			if err := saveTokenToProfile(*profile, result.Token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			client.Token = result.Token

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, result)
			}
			fmt.Fprintf(os.Stdout, "Logged in as %s (%s)\n", result.Identity.FullName(), result.Role.Label())
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "ATS username")
	cmd.Flags().StringVar(&password, "password", "", "ATS password (prompted when omitted)")
	cmd.Flags().StringVarP(&roleStr, "role", "r", "", "Dashboard role: admin, ta_member, or panelist")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func newLogoutCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Destroy the server-side session for the current token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := client.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated identity and role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := client.Me(cmd.Context())
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, sess)
			}
			fmt.Fprintf(os.Stdout, "%s <%s> (%s)\n", sess.Identity.FullName(), sess.Identity.Email, sess.Role.Label())
			return nil
		},
	}
}
