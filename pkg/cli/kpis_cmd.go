package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newKPIsCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "kpis",
		Short: "Show the dashboard KPI figures and recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := client.KPIs(cmd.Context())
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, report)
			}

			fmt.Fprintf(os.Stdout, "Interviews this week:   %d\n", report.InterviewsThisWeek)
			fmt.Fprintf(os.Stdout, "Average feedback score: %d\n", report.AverageFeedbackScore)
			fmt.Fprintf(os.Stdout, "No-shows:               %d\n", report.NoShows)
			fmt.Fprintf(os.Stdout, "Completed:              %d\n", report.Completed)
			fmt.Fprintf(os.Stdout, "Generated at:           %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

			if len(report.Activity) > 0 {
				fmt.Fprintln(os.Stdout, "\nRecent activity:")
				for _, entry := range report.Activity {
					fmt.Fprintf(os.Stdout, "  %s (%s)\n", entry.Title, entry.WhenStr)
				}
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]string{"version": version, "commit": commit})
			}
			fmt.Fprintf(os.Stdout, "talentboard version %s (commit: %s)\n", version, commit)
			return nil
		},
	}
}
