package command

import (
	"encoding/json"
	"fmt"

	"github.com/adamavenir/rpcdeck/internal/commit"
	"github.com/adamavenir/rpcdeck/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newFetcher is replaced in tests.
var newFetcher = func(ctx *CommandContext, source string) commit.Fetcher {
	gh := commit.NewGitHubFetcher(commit.GitHubOptions{
		BaseURL: ctx.Config.GitHubAPI,
		Token:   ctx.Config.GitHubToken,
	})
	return commit.NewFetcher(source, gh)
}

// NewCommitCmd creates the commit command.
func NewCommitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit <source> <sha>",
		Short: "Show a commit's diff",
		Long: `Show a commit's diff, split into hunks.

<source> is a GitHub repository (owner/repo or URL) or a local repository path.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			pattern, _ := cmd.Flags().GetString("files")
			filter, err := commit.NewFileFilter(pattern)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			plain, _ := cmd.Flags().GetBool("print")

			source, sha := args[0], args[1]
			fetcher := newFetcher(ctx, source)
			ctx.Logger.Debug("showing commit", zap.String("source", source), zap.String("sha", sha), zap.Bool("print", plain))

			if plain || ctx.JSONMode {
				return printCommit(cmd, ctx, fetcher, source, sha, filter)
			}

			view := tui.NewCommitView(fetcher, source, sha, tui.CommitViewOptions{
				Filter:         filter,
				HighlightStyle: ctx.Config.HighlightStyle,
				Logger:         ctx.Logger,
			})
			defer view.Unmount()
			if _, err := runProgram(view); err != nil {
				return writeCommandError(cmd, err)
			}
			return nil
		},
	}
	cmd.Flags().String("files", "", "only show files matching this glob")
	cmd.Flags().Bool("print", false, "print the diff instead of opening the viewer")
	return cmd
}

func printCommit(cmd *cobra.Command, ctx *CommandContext, fetcher commit.Fetcher, source, sha string, filter *commit.FileFilter) error {
	detail, err := fetcher.FetchCommit(cmd.Context(), source, sha)
	if err != nil {
		return writeCommandError(cmd, err)
	}
	detail.Files = filter.Apply(detail.Files)

	if ctx.JSONMode {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(detail)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tui.RenderCommit(detail, nil, ctx.Config.HighlightStyle))
	return nil
}
