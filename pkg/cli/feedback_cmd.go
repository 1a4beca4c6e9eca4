package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newFeedbackCmd(client *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Submit interview feedback (panelists only)",
	}
	cmd.AddCommand(newFeedbackSubmitCmd(client))
	return cmd
}

func newFeedbackSubmitCmd(client *Client) *cobra.Command {
	var in FeedbackSubmission

	cmd := &cobra.Command{
		Use:   "submit <candidate-id>",
		Short: "Submit feedback for a candidate",
		Example: `  talentboard feedback submit 7 \
    --score 85 \
    --strengths "Clear communicator, strong fundamentals" \
    --improvements "Needs deeper system design practice"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("candidate id must be an integer: %q", args[0])
			}
			fb, err := client.SubmitFeedback(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, fb)
			}
			fmt.Fprintf(os.Stdout, "Feedback %s recorded: %d/100 for candidate #%d\n", fb.ID, fb.OverallScore, fb.CandidateID)
			return nil
		},
	}

	cmd.Flags().IntVar(&in.OverallScore, "score", 50, "Overall score, 1 to 100")
	cmd.Flags().StringVar(&in.Strengths, "strengths", "", "Candidate strengths")
	cmd.Flags().StringVar(&in.AreasForImprovement, "improvements", "", "Areas for improvement")
	cmd.Flags().StringVar(&in.Comments, "comments", "", "Additional comments")
	_ = cmd.MarkFlagRequired("strengths")
	_ = cmd.MarkFlagRequired("improvements")
	return cmd
}
