package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"talentboard/internal/domain"
)

func newRosterCmd(client *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the internal member roster (admins only)",
	}
	cmd.AddCommand(newRosterListCmd(client))
	cmd.AddCommand(newRosterSetRoleCmd(client))
	return cmd
}

func newRosterListCmd(client *Client) *cobra.Command {
	var (
		term    string
		roleStr string
		page    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List roster members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var role *domain.Role
			if roleStr != "" {
				parsed, err := domain.ParseRole(roleStr)
				if err != nil {
					return err
				}
				role = &parsed
			}

			result, err := client.ListRoster(cmd.Context(), term, role, page)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, result)
			}

			rows := make([][]string, 0, len(result.Items))
			for _, m := range result.Items {
				rows = append(rows, []string{
					strconv.Itoa(m.ID), m.Name, m.Email, m.Role.Label(),
				})
			}
			if err := printTable(os.Stdout, []string{"ID", "NAME", "EMAIL", "ROLE"}, rows); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "\nPage %d of %d (%d members)\n", result.Page+1, result.TotalPages, result.Total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&term, "search", "s", "", "Search term matched against name or email")
	cmd.Flags().StringVarP(&roleStr, "role", "r", "", "Filter by role: admin, ta_member, or panelist")
	cmd.Flags().IntVar(&page, "page", 0, "Zero-based page index")
	return cmd
}

func newRosterSetRoleCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <member-id> <role>",
		Short: "Change a roster member's role",
		Example: `  talentboard roster set-role 3 panelist`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("member id must be an integer: %q", args[0])
			}
			role, err := domain.ParseRole(args[1])
			if err != nil {
				return err
			}
			m, err := client.UpdateRosterRole(cmd.Context(), id, role)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, m)
			}
			fmt.Fprintf(os.Stdout, "%s is now %s\n", m.Name, m.Role.Label())
			return nil
		},
	}
}
