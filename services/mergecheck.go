package services

import (
	"strings"

	"github.com/inesp/bitbucket-pr-reminder/models"
)

// Veto summaries we drop from the digest: missing approvals are already
// conveyed by listing unapproved reviewers, unresolved tasks by the task list,
// and branch permissions are not actionable by anyone we ping.
var ignoredVetoSummaries = map[string]bool{
	"Requires approvals":                true,
	"Requires all tasks to be resolved": true,
	"Insufficient branch permissions":   true,
}

const (
	vetoBuildNotFinished = "Not all required builds are successful yet"
	failedBuildsMarker   = "has failed builds"
)

// MergeVerdict is the classified view of one merge-status payload.
type MergeVerdict struct {
	IsConflicted     bool
	BuildsHaveFailed bool
	BuildsInProgress bool
	OtherVetoes      []string
}

// ClassifyMergeStatus sorts the server's veto list into build-state flags and
// the reasons worth surfacing verbatim.
func ClassifyMergeStatus(status models.MergeStatus) MergeVerdict {
	verdict := MergeVerdict{IsConflicted: status.Conflicted}

	for _, veto := range status.Vetoes {
		if ignoredVetoSummaries[veto.SummaryMessage] {
			continue
		}

		if veto.SummaryMessage == vetoBuildNotFinished {
			if strings.Contains(veto.DetailedMessage, failedBuildsMarker) {
				verdict.BuildsHaveFailed = true
			} else {
				verdict.BuildsInProgress = true
			}
			continue
		}

		verdict.OtherVetoes = appendUnique(verdict.OtherVetoes, veto.SummaryMessage)
	}

	return verdict
}
