package commit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitFile(t *testing.T, wt *git.Worktree, dir, name, content, msg string) plumbing.Hash {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	_, err := wt.Add(name)
	require.NoError(t, err)
	hash, err := wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "Tester", Email: "tester@example.com", When: time.Unix(1700000000, 0)},
	})
	require.NoError(t, err)
	return hash
}

func TestRepoFetcherFetchCommit(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	root := commitFile(t, wt, dir, "main.go", "package main\n\nvar a = 1\n", "initial")
	second := commitFile(t, wt, dir, "main.go", "package main\n\nvar a = 2\n", "bump a")

	f := NewRepoFetcher()
	detail, err := f.FetchCommit(context.Background(), dir, second.String()[:8])
	require.NoError(t, err)
	assert.Equal(t, second.String(), detail.SHA)
	assert.Equal(t, "Tester", detail.Author)
	assert.Contains(t, detail.Message, "bump a")
	require.Len(t, detail.Files, 1)

	file := detail.Files[0]
	assert.Equal(t, "main.go", file.Filename)
	assert.Equal(t, "modified", file.Status)
	assert.Equal(t, 1, file.Additions)
	assert.Equal(t, 1, file.Deletions)
	assert.Equal(t, 1, CountHunks(file.Patch))
	assert.Len(t, SplitPatch(file.Patch), 2)

	detail, err = f.FetchCommit(context.Background(), dir, root.String())
	require.NoError(t, err)
	require.Len(t, detail.Files, 1)
	assert.Equal(t, "added", detail.Files[0].Status)
	assert.Equal(t, 3, detail.Files[0].Additions)
}

func TestRepoFetcherErrors(t *testing.T) {
	f := NewRepoFetcher()
	_, err := f.FetchCommit(context.Background(), t.TempDir(), "HEAD")
	var failed *FetchFailed
	assert.True(t, errors.As(err, &failed))

	dir := t.TempDir()
	_, err = git.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = f.FetchCommit(context.Background(), dir, "0000000000000000000000000000000000000000")
	assert.True(t, errors.As(err, &failed))
}

func TestNewFetcherPicksSource(t *testing.T) {
	_, ok := NewFetcher(t.TempDir(), nil).(*RepoFetcher)
	assert.True(t, ok)

	gh := NewGitHubFetcher(GitHubOptions{})
	assert.Same(t, gh, NewFetcher("octocat/hello-world", gh))
}
