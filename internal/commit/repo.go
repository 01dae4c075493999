package commit

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/adamavenir/rpcdeck/internal/types"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// RepoFetcher reads commits from a repository on disk.
type RepoFetcher struct{}

func NewRepoFetcher() *RepoFetcher {
	return &RepoFetcher{}
}

// FetchCommit implements Fetcher. source is a path inside a git work tree.
func (r *RepoFetcher) FetchCommit(ctx context.Context, source, sha string) (*types.CommitDetail, error) {
	repo, err := git.PlainOpenWithOptions(source, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fetchFailed(source, sha, fmt.Errorf("open repository: %w", err))
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(sha))
	if err != nil {
		return nil, fetchFailed(source, sha, fmt.Errorf("resolve revision: %w", err))
	}
	c, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fetchFailed(source, sha, fmt.Errorf("get commit: %w", err))
	}

	tree, err := c.Tree()
	if err != nil {
		return nil, fetchFailed(source, sha, fmt.Errorf("get tree: %w", err))
	}
	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, fetchFailed(source, sha, fmt.Errorf("get parent: %w", err))
		}
		if parentTree, err = parent.Tree(); err != nil {
			return nil, fetchFailed(source, sha, fmt.Errorf("get parent tree: %w", err))
		}
	}

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, fetchFailed(source, sha, fmt.Errorf("diff trees: %w", err))
	}
	patch, err := changes.PatchContext(ctx)
	if err != nil {
		return nil, fetchFailed(source, sha, fmt.Errorf("get patch: %w", err))
	}

	detail := &types.CommitDetail{
		SHA:     c.Hash.String(),
		Message: c.Message,
		Author:  c.Author.Name,
		Date:    c.Author.When,
	}
	for _, fp := range patch.FilePatches() {
		file, err := encodeFilePatch(fp)
		if err != nil {
			return nil, fetchFailed(source, sha, err)
		}
		detail.Files = append(detail.Files, file)
	}
	return detail, nil
}

type singleFilePatch struct {
	fp diff.FilePatch
}

func (p singleFilePatch) FilePatches() []diff.FilePatch { return []diff.FilePatch{p.fp} }
func (p singleFilePatch) Message() string               { return "" }

func encodeFilePatch(fp diff.FilePatch) (types.FilePatch, error) {
	from, to := fp.Files()
	out := types.FilePatch{Status: "modified"}
	switch {
	case from == nil && to != nil:
		out.Status = "added"
		out.Filename = to.Path()
	case to == nil && from != nil:
		out.Status = "removed"
		out.Filename = from.Path()
	case from != nil && to != nil:
		out.Filename = to.Path()
		if from.Path() != to.Path() {
			out.Status = "renamed"
		}
	}
	if fp.IsBinary() {
		return out, nil
	}

	var buf bytes.Buffer
	if err := diff.NewUnifiedEncoder(&buf, diff.DefaultContextLines).Encode(singleFilePatch{fp: fp}); err != nil {
		return out, fmt.Errorf("encode patch for %s: %w", out.Filename, err)
	}
	out.Patch = strings.TrimSuffix(stripPreamble(buf.String()), "\n")
	out.Additions, out.Deletions = LineStats(out.Patch)
	return out, nil
}
