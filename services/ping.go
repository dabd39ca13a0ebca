package services

import (
	"fmt"
	"strings"

	"github.com/inesp/bitbucket-pr-reminder/models"
)

// CollectPeopleToPing decides who is blocking one PR and returns their Slack
// handles, already translated. A conflict or a failed build is the author's
// problem alone; otherwise unapproved reviewers are pinged and the author is
// annotated with whatever work is left on their side. Order is insertion order
// with duplicates dropped, so the rendered message is stable.
func CollectPeopleToPing(cfg *Config, pr models.PullRequest, verdict MergeVerdict, openTasks []string) []string {
	author := SlackName(cfg, pr.AuthorName())

	if verdict.IsConflicted {
		return []string{author + " (merge CONFLICT)"}
	}

	if verdict.BuildsHaveFailed {
		return []string{author + " (builds FAILED)"}
	}

	var peopleToPing []string
	for _, reviewerName := range pr.UnapprovedReviewers() {
		peopleToPing = appendUnique(peopleToPing, SlackName(cfg, reviewerName))
	}

	authorsUnfinishedWork := append([]string{}, verdict.OtherVetoes...)
	if len(openTasks) > 0 {
		authorsUnfinishedWork = append(authorsUnfinishedWork, "open tasks: "+strings.Join(openTasks, " & "))
	}

	if len(authorsUnfinishedWork) > 0 {
		peopleToPing = appendUnique(peopleToPing, fmt.Sprintf("%s (%s)", author, strings.Join(authorsUnfinishedWork, "; ")))
	}

	if len(peopleToPing) == 0 {
		// Nothing blocks the reviewers and the author has no unfinished work:
		// the PR is waiting on its owner to respond or merge.
		peopleToPing = append(peopleToPing, author)
	}

	return peopleToPing
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
