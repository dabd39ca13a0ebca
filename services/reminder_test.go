package services

import (
	"testing"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
)

func newTestReminder() *Reminder {
	client := newTestClient()
	client.cfg.SlackWebhookURL = "https://hooks.slack.com/services/T/B/X"
	return NewReminder(client.cfg, client)
}

func mockPRList(prs ...map[string]interface{}) {
	gock.New("https://bitbucket.example.com").
		Get("/pull-requests").
		MatchParam("state", "OPEN").
		Reply(200).
		JSON(map[string]interface{}{"values": prs})
}

func mockMergeStatus(prID string, status map[string]interface{}) {
	gock.New("https://bitbucket.example.com").
		Get("/pull-requests/" + prID + "/merge").
		Reply(200).
		JSON(status)
}

func mockOpenTasks(prID string, tasks ...map[string]string) {
	gock.New("https://bitbucket.example.com").
		Get("/pull-requests/" + prID + "/tasks").
		Reply(200).
		JSON(map[string]interface{}{"values": tasks})
}

// mockWebhook matches the exact webhook body. slack-go always marshals the
// replace_original and delete_original flags, so they belong in the match.
func mockWebhook(text string) {
	gock.New("https://hooks.slack.com").
		Post("/services/T/B/X").
		JSON(map[string]interface{}{
			"text":             text,
			"replace_original": false,
			"delete_original":  false,
		}).
		Reply(200).
		BodyString("ok")
}

func prFixture(id int, title, author string, reviewers ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"id":    id,
		"title": title,
		"state": "OPEN",
		"author": map[string]interface{}{
			"user": map[string]string{"name": author},
		},
		"reviewers": reviewers,
	}
}

func TestRunPingsUnapprovedReviewer(t *testing.T) {
	defer gock.Off()

	mockPRList(prFixture(42, "Fix bug", "alice",
		map[string]interface{}{
			"user":   map[string]string{"name": "bob"},
			"status": "UNAPPROVED",
		},
	))
	mockMergeStatus("42", map[string]interface{}{"conflicted": false, "vetoes": []string{}})
	mockOpenTasks("42")

	mockWebhook("<https://bitbucket.example.com/projects/PROJ/repos/repo/pull-requests/42/overview|Fix bug>\nWaiting for: @bob\n")

	err := newTestReminder().Run(RunOptions{Limit: 1000})

	assert.NoError(t, err)
	assert.True(t, gock.IsDone())
}

func TestRunConflictedPRPingsAuthorOnly(t *testing.T) {
	defer gock.Off()

	mockPRList(prFixture(42, "Fix bug", "alice",
		map[string]interface{}{
			"user":   map[string]string{"name": "bob"},
			"status": "UNAPPROVED",
		},
	))
	mockMergeStatus("42", map[string]interface{}{"conflicted": true, "vetoes": []string{}})
	// No task fetch: a conflict already decided the ping list.

	mockWebhook("<https://bitbucket.example.com/projects/PROJ/repos/repo/pull-requests/42/overview|Fix bug>\nWaiting for: @alice (merge CONFLICT)\n")

	err := newTestReminder().Run(RunOptions{Limit: 1000})

	assert.NoError(t, err)
	assert.True(t, gock.IsDone())
}

func TestRunNoOpenPRsSendsNothing(t *testing.T) {
	defer gock.Off()

	mockPRList()

	// No webhook mock: a post would fail the run.
	err := newTestReminder().Run(RunOptions{Limit: 1000})

	assert.NoError(t, err)
	assert.True(t, gock.IsDone())
}

func TestRunFiltersByAuthor(t *testing.T) {
	defer gock.Off()

	mockPRList(
		prFixture(42, "Fix bug", "alice"),
		prFixture(43, "Add feature", "carol"),
	)
	mockMergeStatus("42", map[string]interface{}{"conflicted": false, "vetoes": []string{}})
	mockOpenTasks("42")

	mockWebhook("<https://bitbucket.example.com/projects/PROJ/repos/repo/pull-requests/42/overview|Fix bug>\nWaiting for: @alice\n")

	err := newTestReminder().Run(RunOptions{Users: []string{"alice"}, Limit: 1000})

	assert.NoError(t, err)
	assert.True(t, gock.IsDone())
}

func TestRunSinglePRModeSkipsClosedPR(t *testing.T) {
	defer gock.Off()

	gock.New("https://bitbucket.example.com").
		Get("/pull-requests/42$").
		Reply(200).
		JSON(map[string]interface{}{
			"id":    42,
			"title": "Fix bug",
			"state": "MERGED",
		})

	err := newTestReminder().Run(RunOptions{PRID: 42})

	assert.NoError(t, err)
	assert.True(t, gock.IsDone())
}

func TestRunAbortsOnAPIError(t *testing.T) {
	defer gock.Off()

	mockPRList(prFixture(42, "Fix bug", "alice"))

	gock.New("https://bitbucket.example.com").
		Get("/pull-requests/42/merge").
		Reply(500).
		BodyString("boom")

	// No webhook mock: nothing may be sent when the API fails mid-run.
	err := newTestReminder().Run(RunOptions{Limit: 1000})

	assert.Error(t, err)
	assert.True(t, gock.IsDone())
}
