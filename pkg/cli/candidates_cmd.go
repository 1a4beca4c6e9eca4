package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newCandidatesCmd(client *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "Browse the candidate directory",
	}
	cmd.AddCommand(newCandidatesListCmd(client))
	cmd.AddCommand(newCandidatesGetCmd(client))
	return cmd
}

func newCandidatesListCmd(client *Client) *cobra.Command {
	var (
		term string
		page int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List candidates, optionally filtered by a search term",
		Example: `  talentboard candidates list
  talentboard candidates list --search jeanne --page 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := client.ListCandidates(cmd.Context(), term, page)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, result)
			}

			rows := make([][]string, 0, len(result.Items))
			for _, c := range result.Items {
				rows = append(rows, []string{
					strconv.Itoa(c.ID), c.FullName(), c.Email, c.Company.Name, c.Company.Department,
				})
			}
			if err := printTable(os.Stdout, []string{"ID", "NAME", "EMAIL", "COMPANY", "DEPARTMENT"}, rows); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "\nPage %d of %d (%d candidates)\n", result.Page+1, result.TotalPages, result.Total)
			if result.Stale {
				fmt.Fprintln(os.Stderr, "warning: results are stale; the last refresh failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&term, "search", "s", "", "Search term matched against candidate names")
	cmd.Flags().IntVar(&page, "page", 0, "Zero-based page index")
	return cmd
}

func newCandidatesGetCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "get <candidate-id>",
		Short: "Show a candidate's profile, schedule, notes, and feedback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("candidate id must be an integer: %q", args[0])
			}
			detail, err := client.GetCandidate(cmd.Context(), id)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, detail)
			}

			c := detail.Candidate
			fmt.Fprintf(os.Stdout, "%s (#%d)\n", c.FullName(), c.ID)
			fmt.Fprintf(os.Stdout, "  Email:      %s\n", c.Email)
			fmt.Fprintf(os.Stdout, "  Phone:      %s\n", c.Phone)
			fmt.Fprintf(os.Stdout, "  Company:    %s\n", c.Company.Name)
			fmt.Fprintf(os.Stdout, "  Department: %s\n", c.Company.Department)

			fmt.Fprintf(os.Stdout, "\nSchedule (%d):\n", len(detail.Schedule))
			for _, todo := range detail.Schedule {
				status := "pending"
				if todo.Completed {
					status = "completed"
				}
				fmt.Fprintf(os.Stdout, "  [%s] %s\n", status, todo.Todo)
			}

			fmt.Fprintf(os.Stdout, "\nFeedback (%d):\n", len(detail.Feedback))
			for _, fb := range detail.Feedback {
				fmt.Fprintf(os.Stdout, "  %d/100 by %s on %s\n", fb.OverallScore, fb.ReviewerName, fb.SubmittedAt.Format("2006-01-02"))
			}
			return nil
		},
	}
}
