package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inesp/bitbucket-pr-reminder/models"
)

const msgTemplate = "<%s|%s>\nWaiting for: %s\n"

// RunOptions narrows one run down: a single PR, a set of authors, or
// everything open up to Limit.
type RunOptions struct {
	PRID  int
	Users []string
	Limit int
}

// Reminder is the whole pipeline: fetch PRs, classify their merge status,
// resolve who to ping and send the digest. One pass per invocation, nothing
// is retained between runs.
type Reminder struct {
	cfg    *Config
	client *BitbucketClient
	log    *logrus.Entry
}

func NewReminder(cfg *Config, client *BitbucketClient) *Reminder {
	return &Reminder{
		cfg:    cfg,
		client: client,
		log:    logrus.WithField("run_id", uuid.NewString()),
	}
}

func (r *Reminder) Run(opts RunOptions) error {
	prs, err := r.selectPRs(opts)
	if err != nil {
		return err
	}

	if len(prs) == 0 {
		r.log.Info("no open PRs found")
		return nil
	}

	var slackMsgs []string
	for _, pr := range prs {
		peopleToPing, err := r.peopleToPing(pr)
		if err != nil {
			return err
		}

		r.log.WithFields(logrus.Fields{
			"pr":      pr.ID,
			"waiting": peopleToPing,
		}).Info("reminder composed")

		msg := fmt.Sprintf(msgTemplate, r.cfg.PROverviewLink(pr.ID), pr.Title, strings.Join(peopleToPing, ", "))
		slackMsgs = append(slackMsgs, msg)
	}

	if err := SendReminders(r.cfg.SlackWebhookURL, slackMsgs); err != nil {
		return err
	}

	r.log.WithField("pr_count", len(prs)).Info("digest sent")
	return nil
}

func (r *Reminder) selectPRs(opts RunOptions) ([]models.PullRequest, error) {
	var prs []models.PullRequest

	if opts.PRID > 0 {
		pr, err := r.client.FetchOnePR(opts.PRID)
		if err != nil {
			return nil, err
		}
		if pr != nil {
			prs = append(prs, *pr)
		}
	} else {
		var err error
		prs, err = r.client.FetchAllOpenPRs(opts.Limit)
		if err != nil {
			return nil, err
		}
	}

	if len(opts.Users) == 0 {
		return prs, nil
	}

	wanted := make(map[string]bool, len(opts.Users))
	for _, name := range opts.Users {
		wanted[name] = true
	}

	var filtered []models.PullRequest
	for _, pr := range prs {
		if wanted[pr.AuthorName()] {
			filtered = append(filtered, pr)
		}
	}

	return filtered, nil
}

func (r *Reminder) peopleToPing(pr models.PullRequest) ([]string, error) {
	status, err := r.client.FetchMergeStatus(pr.ID)
	if err != nil {
		return nil, err
	}

	verdict := ClassifyMergeStatus(status)

	// A conflict or a failed build short-circuits the ping list, no point in
	// fetching tasks for those.
	var openTasks []string
	if !verdict.IsConflicted && !verdict.BuildsHaveFailed {
		openTasks, err = r.client.FetchOpenTasks(pr.ID)
		if err != nil {
			return nil, err
		}
	}

	return CollectPeopleToPing(r.cfg, pr, verdict, openTasks), nil
}
