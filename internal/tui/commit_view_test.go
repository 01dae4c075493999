package tui

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adamavenir/rpcdeck/internal/commit"
	"github.com/adamavenir/rpcdeck/internal/types"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func loadedMsg(msgs []tea.Msg) (commitLoadedMsg, bool) {
	for _, msg := range msgs {
		if loaded, ok := msg.(commitLoadedMsg); ok {
			return loaded, true
		}
	}
	return commitLoadedMsg{}, false
}

func sampleDetail() *types.CommitDetail {
	return &types.CommitDetail{
		SHA:     "6dcb09b5b57875f334f61aebed695e2e4193db5e",
		Message: "Fix all the bugs\n\nlong body",
		Author:  "Monalisa",
		Date:    time.Now().Add(-2 * time.Hour),
		Files: []types.FilePatch{
			{Filename: "main.go", Status: "modified", Additions: 1, Deletions: 1, Patch: "@@ -1 +1 @@ func main()\n-a\n+b"},
			{Filename: "README.md", Status: "modified", Patch: "no hunks here"},
		},
	}
}

func countingFetcher(calls *int32, detail *types.CommitDetail, err error) commit.Fetcher {
	return commit.FetcherFunc(func(ctx context.Context, source, sha string) (*types.CommitDetail, error) {
		atomic.AddInt32(calls, 1)
		return detail, err
	})
}

func TestCommitViewFetchesOnce(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var calls int32
	v := NewCommitView(countingFetcher(&calls, sampleDetail(), nil), "octocat/hello", "6dcb09b", CommitViewOptions{})

	assert.Contains(t, v.View(), "Fetching commit")
	msgs := runCmd(v.Init())
	assert.Nil(t, v.Init())

	msg, ok := loadedMsg(msgs)
	require.True(t, ok)
	v.Update(msg)
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	_ = v.View()
	_ = v.View()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, commitLoaded, v.state)
	require.NotNil(t, v.Detail())

	out := v.View()
	assert.Contains(t, out, "6dcb09b")
	assert.Contains(t, out, "Fix all the bugs")
	assert.Contains(t, out, "@@ -1 +1 @@ func main()")
	assert.Contains(t, out, "README.md")
	assert.Contains(t, out, "no hunks here")
}

func TestCommitViewUnmountBeforeResolve(t *testing.T) {
	defer goleak.VerifyNone(t)

	started := make(chan struct{})
	fetcher := commit.FetcherFunc(func(ctx context.Context, source, sha string) (*types.CommitDetail, error) {
		close(started)
		<-ctx.Done()
		return sampleDetail(), nil
	})
	v := NewCommitView(fetcher, "octocat/hello", "6dcb09b", CommitViewOptions{})

	cmd := v.fetch()
	results := make(chan tea.Msg, 1)
	go func() {
		results <- cmd()
	}()

	<-started
	v.Unmount()
	msg := <-results

	assert.NotPanics(t, func() {
		v.Update(msg)
		_ = v.View()
	})
	assert.Equal(t, commitLoading, v.state)
	assert.Nil(t, v.Detail())

	v.Unmount()
}

func TestCommitViewIgnoresOtherViews(t *testing.T) {
	v := NewCommitView(countingFetcher(new(int32), sampleDetail(), nil), "octocat/hello", "6dcb09b", CommitViewOptions{})
	v.Update(commitLoadedMsg{viewID: "someone-else", detail: sampleDetail()})
	assert.Equal(t, commitLoading, v.state)
}

func TestCommitViewFailureAndRetry(t *testing.T) {
	var calls int32
	failure := &commit.FetchFailed{Source: "octocat/hello", SHA: "6dcb09b", Err: errors.New("boom")}
	v := NewCommitView(countingFetcher(&calls, nil, failure), "octocat/hello", "6dcb09b", CommitViewOptions{})

	msg, ok := loadedMsg(runCmd(v.Init()))
	require.True(t, ok)
	v.Update(msg)
	assert.Equal(t, commitFailed, v.state)
	assert.Contains(t, v.View(), "boom")

	var failed *commit.FetchFailed
	require.ErrorAs(t, v.Err(), &failed)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, commitLoading, v.state)
	runCmd(cmd)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCommitViewQuitUnmounts(t *testing.T) {
	v := NewCommitView(countingFetcher(new(int32), sampleDetail(), nil), "octocat/hello", "6dcb09b", CommitViewOptions{})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.False(t, v.mounted)
	assert.Error(t, v.ctx.Err())
}

func TestCommitViewFilter(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	filter, err := commit.NewFileFilter("*.go")
	require.NoError(t, err)
	v := NewCommitView(countingFetcher(new(int32), sampleDetail(), nil), "octocat/hello", "6dcb09b", CommitViewOptions{Filter: filter})

	msg, ok := loadedMsg(runCmd(v.Init()))
	require.True(t, ok)
	v.Update(msg)
	out := v.View()
	assert.Contains(t, out, "main.go")
	assert.NotContains(t, out, "README.md")
}

func TestRenderFilePatchSegments(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	out := renderFilePatch(types.FilePatch{
		Filename: "a.go",
		Patch:    "@@ -1 +1 @@\n-x\n+y\n@@ -9 +9 @@\n-z\n+w",
	}, "")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "@@ -1 +1 @@", lines[1])
	assert.Equal(t, "-x", lines[2])
	assert.Equal(t, "@@ -9 +9 @@", lines[4])

	assert.NotPanics(t, func() {
		renderFilePatch(types.FilePatch{Filename: "empty"}, "")
		renderFilePatch(types.FilePatch{Filename: "odd", Patch: "@@"}, "")
	})
}
