package models

const TaskOpen = "OPEN"

// Task is an unresolved reviewer action item attached to a PR.
type Task struct {
	State string `json:"state"` // "OPEN" or "RESOLVED"
	Text  string `json:"text"`
}

type TaskPage struct {
	Values []Task `json:"values"`
}
