package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/devlog/internal/api/client"
)

func postsCmd() *cobra.Command {
	postsRoot := &cobra.Command{
		Use:   "posts",
		Short: "Browse posts",
		Long:  "List, search and read published DevLog posts.",
	}

	postsRoot.AddCommand(
		postsListCmd(),
		postsGetCmd(),
	)

	return postsRoot
}

func postsListCmd() *cobra.Command {
	var (
		category string
		query    string
		page     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		Long: "List one page of published posts with optional category and\n" +
			"title search filters.",
		Example: `  # First page of every category
  devlogctl posts list

  # React posts mentioning hooks, second page
  devlogctl posts list --category React --query hooks --page 2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().ListPosts(cmd.Context(), &apiclient.ListPostsParams{
				Category: category,
				Query:    query,
				Page:     page,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, resp)
			}

			if len(resp.Posts) == 0 {
				_, err := fmt.Fprintln(out, "No posts found.")
				return err
			}

			if _, err := fmt.Fprintf(out, "Page %d of %d (%d posts)\n\n",
				resp.Page, resp.TotalPages, resp.Total); err != nil {
				return err
			}
			return printPostsTable(out, resp.Posts)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", `category name ("all" for every category)`)
	cmd.Flags().StringVar(&query, "query", "", "title search text")
	cmd.Flags().IntVar(&page, "page", 0, "page number (default 1)")

	return cmd
}

func postsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show a post",
		Example: `  devlogctl posts get 7b0c4f5e-0d0e-4c1a-9d1c-0f3a2b1c9e11`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newClient().GetPost(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), p)
			}
			return printPostDetail(cmd.OutOrStdout(), p)
		},
	}
}
