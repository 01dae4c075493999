package commit

import (
	"context"
	"fmt"
	"os"

	"github.com/adamavenir/rpcdeck/internal/types"
)

// Fetcher loads a commit and its file patches.
type Fetcher interface {
	FetchCommit(ctx context.Context, source, sha string) (*types.CommitDetail, error)
}

// FetchFailed wraps any error that kept a commit from loading.
type FetchFailed struct {
	Source string
	SHA    string
	Err    error
}

func (e *FetchFailed) Error() string {
	return fmt.Sprintf("fetch commit %s from %s: %v", e.SHA, e.Source, e.Err)
}

func (e *FetchFailed) Unwrap() error {
	return e.Err
}

func fetchFailed(source, sha string, err error) error {
	return &FetchFailed{Source: source, SHA: sha, Err: err}
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, source, sha string) (*types.CommitDetail, error)

func (f FetcherFunc) FetchCommit(ctx context.Context, source, sha string) (*types.CommitDetail, error) {
	return f(ctx, source, sha)
}

// NewFetcher picks a local repository reader when source is a directory on
// disk and the GitHub API otherwise.
func NewFetcher(source string, gh *GitHubFetcher) Fetcher {
	if info, err := os.Stat(source); err == nil && info.IsDir() {
		return NewRepoFetcher()
	}
	if gh == nil {
		gh = NewGitHubFetcher(GitHubOptions{})
	}
	return gh
}
