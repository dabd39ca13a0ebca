package models

// Veto is one server-reported reason a PR cannot be merged yet.
type Veto struct {
	SummaryMessage  string `json:"summaryMessage"`
	DetailedMessage string `json:"detailedMessage"`
}

// MergeStatus is the raw payload of the per-PR merge endpoint.
type MergeStatus struct {
	Conflicted bool   `json:"conflicted"`
	Vetoes     []Veto `json:"vetoes"`
}
