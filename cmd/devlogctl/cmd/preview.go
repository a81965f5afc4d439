package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [file]",
		Short: "Render Markdown to HTML the way the blog does",
		Long: "Send Markdown to the server's preview endpoint and print the\n" +
			"sanitised HTML. Reads stdin when no file (or \"-\") is given.",
		Example: `  devlogctl preview post.md
  cat post.md | devlogctl preview`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			html, err := newClient().PreviewMarkdown(cmd.Context(), src)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), map[string]string{"html": html})
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), html)
			return err
		},
	}
}

func readSource(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0]) //nolint:gosec // path supplied by the CLI user
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
