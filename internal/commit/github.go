package commit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/adamavenir/rpcdeck/internal/types"
)

// DefaultGitHubAPI is the public GitHub REST endpoint.
const DefaultGitHubAPI = "https://api.github.com"

// GitHubOptions configures a GitHubFetcher.
type GitHubOptions struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// GitHubFetcher reads commits from the GitHub REST API.
type GitHubFetcher struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewGitHubFetcher(opts GitHubOptions) *GitHubFetcher {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultGitHubAPI
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &GitHubFetcher{baseURL: base, token: opts.Token, client: client}
}

type githubCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name string    `json:"name"`
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
	Files []struct {
		Filename  string `json:"filename"`
		Status    string `json:"status"`
		Additions int    `json:"additions"`
		Deletions int    `json:"deletions"`
		Patch     string `json:"patch"`
	} `json:"files"`
}

// FetchCommit implements Fetcher.
func (g *GitHubFetcher) FetchCommit(ctx context.Context, source, sha string) (*types.CommitDetail, error) {
	owner, repo, err := ParseRepoSource(source)
	if err != nil {
		return nil, fetchFailed(source, sha, err)
	}
	if strings.TrimSpace(sha) == "" {
		return nil, fetchFailed(source, sha, errors.New("commit sha is required"))
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s/commits/%s", g.baseURL, url.PathEscape(owner), url.PathEscape(repo), url.PathEscape(sha))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fetchFailed(source, sha, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fetchFailed(source, sha, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fetchFailed(source, sha, fmt.Errorf("github returned %s: %s", resp.Status, strings.TrimSpace(string(snippet))))
	}

	var payload githubCommit
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fetchFailed(source, sha, fmt.Errorf("decode response: %w", err))
	}

	detail := &types.CommitDetail{
		SHA:     payload.SHA,
		Message: payload.Commit.Message,
		Author:  payload.Commit.Author.Name,
		Date:    payload.Commit.Author.Date,
		Files:   make([]types.FilePatch, 0, len(payload.Files)),
	}
	for _, f := range payload.Files {
		detail.Files = append(detail.Files, types.FilePatch{
			Filename:  f.Filename,
			Status:    f.Status,
			Additions: f.Additions,
			Deletions: f.Deletions,
			Patch:     f.Patch,
		})
	}
	return detail, nil
}

// ParseRepoSource accepts "owner/repo", "github.com/owner/repo" or a full
// https or ssh GitHub URL.
func ParseRepoSource(source string) (string, string, error) {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return "", "", errors.New("repository source is required")
	}
	trimmed = strings.TrimPrefix(trimmed, "git@github.com:")
	if u, err := url.Parse(trimmed); err == nil && u.Host != "" {
		trimmed = u.Path
	}
	trimmed = strings.TrimPrefix(trimmed, "github.com/")
	trimmed = strings.Trim(trimmed, "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")

	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository source %q", source)
	}
	return parts[0], parts[1], nil
}
