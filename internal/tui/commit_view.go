package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adamavenir/rpcdeck/internal/commit"
	"github.com/adamavenir/rpcdeck/internal/core"
	"github.com/adamavenir/rpcdeck/internal/types"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type commitViewState int

const (
	commitLoading commitViewState = iota
	commitLoaded
	commitFailed
)

func (s commitViewState) String() string {
	switch s {
	case commitLoading:
		return "loading"
	case commitLoaded:
		return "loaded"
	case commitFailed:
		return "failed"
	}
	return "unknown"
}

// commitLoadedMsg carries a fetch result back to the view that asked for it.
type commitLoadedMsg struct {
	viewID string
	detail *types.CommitDetail
	err    error
}

// CommitViewOptions configures NewCommitView.
type CommitViewOptions struct {
	Filter         *commit.FileFilter
	HighlightStyle string
	Logger         *zap.Logger
}

// CommitView shows one commit. It fetches once when started and again only
// on an explicit retry after a failure.
type CommitView struct {
	id      string
	source  string
	sha     string
	fetcher commit.Fetcher
	filter  *commit.FileFilter
	style   string
	logger  *zap.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	mounted bool
	started bool
	fetches int

	state  commitViewState
	detail *types.CommitDetail
	err    error

	spinner  spinner.Model
	viewport viewport.Model
	ready    bool
}

// NewCommitView builds a view for (source, sha). Nothing is fetched until Init.
func NewCommitView(fetcher commit.Fetcher, source, sha string, opts CommitViewOptions) *CommitView {
	ctx, cancel := context.WithCancel(context.Background())
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = focusStyle
	return &CommitView{
		id:      uuid.NewString(),
		source:  source,
		sha:     sha,
		fetcher: fetcher,
		filter:  opts.Filter,
		style:   opts.HighlightStyle,
		logger:  core.OrNop(opts.Logger).With(zap.String("source", source), zap.String("sha", sha)),
		ctx:     ctx,
		cancel:  cancel,
		mounted: true,
		state:   commitLoading,
		spinner: s,
	}
}

// Unmount cancels any pending fetch. Results that arrive afterwards are ignored.
func (v *CommitView) Unmount() {
	if !v.mounted {
		return
	}
	v.mounted = false
	v.cancel()
	v.logger.Debug("commit view unmounted", zap.Stringer("state", v.state))
}

// Detail returns the loaded commit, or nil.
func (v *CommitView) Detail() *types.CommitDetail {
	return v.detail
}

// Err returns the last fetch error while in the failed state.
func (v *CommitView) Err() error {
	return v.err
}

func (v *CommitView) Init() tea.Cmd {
	if v.started {
		return nil
	}
	v.started = true
	return tea.Batch(v.spinner.Tick, v.fetch())
}

func (v *CommitView) fetch() tea.Cmd {
	v.fetches++
	ctx, fetcher, source, sha, id := v.ctx, v.fetcher, v.source, v.sha, v.id
	v.logger.Debug("fetching commit", zap.Int("attempt", v.fetches))
	return func() tea.Msg {
		detail, err := fetcher.FetchCommit(ctx, source, sha)
		return commitLoadedMsg{viewID: id, detail: detail, err: err}
	}
}

func (v *CommitView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case commitLoadedMsg:
		v.receive(msg)
		return v, nil

	case spinner.TickMsg:
		if v.state != commitLoading || !v.mounted {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.WindowSizeMsg:
		headerHeight := 2
		if !v.ready {
			v.viewport = viewport.New(msg.Width, msg.Height-headerHeight)
			v.ready = true
		} else {
			v.viewport.Width = msg.Width
			v.viewport.Height = msg.Height - headerHeight
		}
		v.refreshContent()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			v.Unmount()
			return v, tea.Quit
		case "r":
			if v.state == commitFailed && v.mounted {
				v.state = commitLoading
				v.err = nil
				return v, tea.Batch(v.spinner.Tick, v.fetch())
			}
			return v, nil
		}
		if v.ready {
			var cmd tea.Cmd
			v.viewport, cmd = v.viewport.Update(msg)
			return v, cmd
		}
	}
	return v, nil
}

// receive applies a fetch result if it belongs to this live view.
func (v *CommitView) receive(msg commitLoadedMsg) {
	if msg.viewID != v.id {
		v.logger.Debug("dropping result for another view", zap.String("view", msg.viewID))
		return
	}
	if !v.mounted {
		v.logger.Debug("dropping result after unmount")
		return
	}
	if v.state != commitLoading {
		return
	}
	if msg.err != nil {
		v.state = commitFailed
		v.err = msg.err
		v.logger.Warn("commit fetch failed", zap.Error(msg.err))
		return
	}
	if msg.detail == nil {
		v.state = commitFailed
		v.err = &commit.FetchFailed{Source: v.source, SHA: v.sha, Err: errors.New("empty response")}
		return
	}
	v.state = commitLoaded
	v.detail = msg.detail
	v.logger.Info("commit loaded", zap.Int("files", len(msg.detail.Files)))
	v.refreshContent()
}

func (v *CommitView) refreshContent() {
	if !v.ready || v.state != commitLoaded {
		return
	}
	v.viewport.SetContent(v.renderFiles())
}

func (v *CommitView) View() string {
	switch v.state {
	case commitLoading:
		return fmt.Sprintf("Fetching commit %s\n", v.spinner.View())
	case commitFailed:
		return errorStyle.Render(v.err.Error()) + "\n" + helpStyle.Render("r retry  q quit") + "\n"
	}

	header := v.renderHeader()
	if !v.ready {
		return header + "\n" + v.renderFiles()
	}
	return header + "\n" + v.viewport.View()
}

func (v *CommitView) renderHeader() string {
	return renderCommitHeader(v.detail)
}

func (v *CommitView) renderFiles() string {
	return renderCommitFiles(v.detail, v.filter, v.style)
}

// RenderCommit draws a loaded commit without a program, for plain output.
func RenderCommit(detail *types.CommitDetail, filter *commit.FileFilter, style string) string {
	return renderCommitHeader(detail) + "\n" + renderCommitFiles(detail, filter, style)
}

func renderCommitHeader(d *types.CommitDetail) string {
	subject := strings.SplitN(strings.TrimSpace(d.Message), "\n", 2)[0]
	line := titleStyle.Render(d.ShortSHA())
	if subject != "" {
		line += " " + subject
	}
	var meta []string
	if d.Author != "" {
		meta = append(meta, d.Author)
	}
	if !d.Date.IsZero() {
		meta = append(meta, humanize.Time(d.Date))
	}
	if len(meta) > 0 {
		line += "  " + noteStyle.Render(strings.Join(meta, " · "))
	}
	return line
}

func renderCommitFiles(d *types.CommitDetail, filter *commit.FileFilter, style string) string {
	files := filter.Apply(d.Files)
	if len(files) == 0 {
		if filter.String() != "" {
			return noteStyle.Render(fmt.Sprintf("no files match %q", filter.String()))
		}
		return noteStyle.Render("no file changes")
	}
	parts := make([]string, 0, len(files))
	for _, file := range files {
		parts = append(parts, renderFilePatch(file, style))
	}
	return strings.Join(parts, "\n\n")
}

// renderFilePatch draws hunk headers as plain text and hunk bodies as
// highlighted diff.
func renderFilePatch(file types.FilePatch, style string) string {
	var b strings.Builder
	b.WriteString(fileNameStyle.Render(file.Filename))
	if file.Status != "" {
		b.WriteString(" " + noteStyle.Render(file.Status))
	}
	b.WriteString(" " + additionStyle.Render(fmt.Sprintf("+%d", file.Additions)))
	b.WriteString(" " + deletionStyle.Render(fmt.Sprintf("-%d", file.Deletions)))
	b.WriteString("\n")

	if file.Patch == "" {
		b.WriteString(noteStyle.Render("(no textual diff)"))
		return b.String()
	}

	for i, seg := range commit.SplitPatch(file.Patch) {
		if i > 0 {
			b.WriteString("\n")
		}
		switch seg.Kind {
		case commit.SegmentHeader:
			b.WriteString(hunkHeaderStyle.Render(seg.Text))
		default:
			b.WriteString(highlightCode(seg.Text, "diff", style))
		}
	}
	return b.String()
}
