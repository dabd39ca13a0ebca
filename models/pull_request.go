package models

// Bitbucket wire shapes. JSON tags follow the REST API field names.

const (
	PullRequestOpen    = "OPEN"
	ReviewerUnapproved = "UNAPPROVED"
)

type User struct {
	Name string `json:"name"`
}

type Participant struct {
	User User `json:"user"`
}

type Reviewer struct {
	User   User   `json:"user"`
	Status string `json:"status"` // "APPROVED" or "UNAPPROVED"
}

type PullRequest struct {
	ID        int         `json:"id"`
	Title     string      `json:"title"`
	State     string      `json:"state"` // "OPEN", "MERGED", "DECLINED"
	Author    Participant `json:"author"`
	Reviewers []Reviewer  `json:"reviewers"`
}

// PullRequestPage is one page of the bulk PR listing.
type PullRequestPage struct {
	Values []PullRequest `json:"values"`
}

func (pr PullRequest) AuthorName() string {
	return pr.Author.User.Name
}

// UnapprovedReviewers returns the reviewers still missing an approval, in API order.
func (pr PullRequest) UnapprovedReviewers() []string {
	var names []string
	for _, reviewer := range pr.Reviewers {
		if reviewer.Status == ReviewerUnapproved {
			names = append(names, reviewer.User.Name)
		}
	}
	return names
}
