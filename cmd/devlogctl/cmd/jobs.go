package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func jobsCmd() *cobra.Command {
	jobsRoot := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect and trigger maintenance jobs",
		Long: "View the server's scheduled maintenance jobs and run the\n" +
			"stale draft purge on demand.",
	}

	jobsRoot.AddCommand(
		jobsListCmd(),
		jobsPurgeCmd(),
	)

	return jobsRoot
}

func jobsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scheduled jobs",
		Example: `  devlogctl jobs list
  devlogctl jobs list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := newClient().ListJobs(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), list)
			}
			return printJobsTable(cmd.OutOrStdout(), list)
		},
	}
}

func jobsPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge-drafts",
		Short: "Delete stale drafts now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := newClient().PurgeDrafts(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), map[string]int{"purged": n})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Purged %d stale draft(s).\n", n)
			return err
		},
	}
}
