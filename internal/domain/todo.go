package domain

// Todo IDs are client-assigned integers; the browser generates them when it
// publishes a create-todo event.
type Todo struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Status   bool   `json:"status"`
	Creator  string `json:"creator"`
	MarkedBy string `json:"markedBy,omitempty"`
}
