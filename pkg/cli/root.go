// Package cli implements the talentboard command-line client for the
// dashboard's JSON API.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			_ = printJSON(os.Stdout, map[string]any{"error": err.Error()})
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		host    string
		token   string
		output  string
		profile string
	)

	rootCmd := &cobra.Command{
		Use:           "talentboard",
		Short:         "TalentBoard CLI",
		Long:          "Command-line interface for the TalentBoard interview dashboard API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "API host URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authentication")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "Config profile to use")

	client := NewClient(host, token)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := LoadUserConfig()
		if err != nil {
			// Config file is optional
			cfg = &UserConfig{CurrentProfile: "default", Profiles: map[string]Profile{}}
		}
		p := cfg.ActiveProfile(profile)

		// Precedence: flag > env > profile > default
		if !cmd.Flags().Changed("host") {
			if v := os.Getenv("TALENTBOARD_HOST"); v != "" {
				host = v
			} else if p.Host != "" {
				host = p.Host
			}
		}
		if !cmd.Flags().Changed("token") {
			if v := os.Getenv("TALENTBOARD_TOKEN"); v != "" {
				token = v
			} else if p.Token != "" {
				token = p.Token
			}
		}
		if !cmd.Flags().Changed("output") {
			if v := os.Getenv("TALENTBOARD_OUTPUT"); v != "" {
				output = v
			} else if p.Output != "" {
				output = p.Output
			}
		}
		if err := validateOutputFormat(output); err != nil {
			return err
		}

		client.BaseURL = host
		client.Token = token
		return nil
	}

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newLoginCmd(client, &profile))
	rootCmd.AddCommand(newLogoutCmd(client))
	rootCmd.AddCommand(newWhoamiCmd(client))
	rootCmd.AddCommand(newCandidatesCmd(client))
	rootCmd.AddCommand(newFeedbackCmd(client))
	rootCmd.AddCommand(newRosterCmd(client))
	rootCmd.AddCommand(newKPIsCmd(client))

	return rootCmd
}
