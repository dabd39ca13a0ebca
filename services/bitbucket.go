package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/inesp/bitbucket-pr-reminder/models"
)

// BitbucketClient talks to the Bitbucket Server REST API with basic auth.
type BitbucketClient struct {
	cfg        *Config
	httpClient *http.Client
}

func NewBitbucketClient(cfg *Config) *BitbucketClient {
	return &BitbucketClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// fetchJSON issues one authenticated GET and decodes the body into out.
// A non-2xx status or an empty body is an error: the caller aborts the run,
// there is no retry and no partial digest.
func (b *BitbucketClient) fetchJSON(url string, out any) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(b.cfg.BitbucketUsername, b.cfg.BitbucketToken)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not connect to the bitbucket repo: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("bitbucket response read error: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("bitbucket returned %d: %s", resp.StatusCode, string(bodyBytes))
	}

	trimmed := bytes.TrimSpace(bodyBytes)
	if len(trimmed) == 0 {
		return fmt.Errorf("bitbucket returned an empty body for %s", url)
	}

	var probe any
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return fmt.Errorf("bitbucket response parse error: %w", err)
	}
	if isFalsyJSON(probe) {
		return fmt.Errorf("bitbucket returned an empty body for %s", url)
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("bitbucket response parse error: %w", err)
	}

	return nil
}

// isFalsyJSON reports whether a decoded top-level value carries no data:
// null, {}, [], false, 0 and "" all mean the server answered with nothing.
func isFalsyJSON(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case float64:
		return v == 0
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}

func (b *BitbucketClient) FetchAllOpenPRs(limit int) ([]models.PullRequest, error) {
	url := fmt.Sprintf("%s/pull-requests?state=OPEN&limit=%d", b.cfg.BitbucketAPIRepoLink, limit)

	var page models.PullRequestPage
	if err := b.fetchJSON(url, &page); err != nil {
		return nil, err
	}

	return page.Values, nil
}

// FetchOnePR returns nil when the PR exists but is no longer open.
func (b *BitbucketClient) FetchOnePR(prID int) (*models.PullRequest, error) {
	url := fmt.Sprintf("%s/pull-requests/%d", b.cfg.BitbucketAPIRepoLink, prID)

	var pr models.PullRequest
	if err := b.fetchJSON(url, &pr); err != nil {
		return nil, err
	}

	if pr.State != models.PullRequestOpen {
		return nil, nil
	}

	return &pr, nil
}

// FetchOpenTasks returns the texts of unresolved tasks on a PR. Tasks can only
// be fetched per PR, Bitbucket has no bulk endpoint for them.
func (b *BitbucketClient) FetchOpenTasks(prID int) ([]string, error) {
	url := fmt.Sprintf("%s/pull-requests/%d/tasks", b.cfg.BitbucketAPIRepoLink, prID)

	var page models.TaskPage
	if err := b.fetchJSON(url, &page); err != nil {
		return nil, err
	}

	var texts []string
	for _, task := range page.Values {
		if task.State != models.TaskOpen {
			continue
		}
		texts = append(texts, task.Text)
	}

	return texts, nil
}

// FetchMergeStatus fetches the merge-ability of one PR. Like tasks, this is
// only available per PR.
func (b *BitbucketClient) FetchMergeStatus(prID int) (models.MergeStatus, error) {
	url := fmt.Sprintf("%s/pull-requests/%d/merge", b.cfg.BitbucketAPIRepoLink, prID)

	var status models.MergeStatus
	if err := b.fetchJSON(url, &status); err != nil {
		return models.MergeStatus{}, err
	}

	return status, nil
}
