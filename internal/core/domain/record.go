package domain

import "time"

// Annotation is one (author, body) comment pair carried on a record.
type Annotation struct {
	Author string `json:"author"`
	Body   string `json:"body"`
}

// TaskRecord is the normalized, flattened representation of one issue or
// pull request, ready for import into the record store. Records are created
// once per surviving payload and never mutated after emission; the (URL,
// Type) pair is the unique key.
type TaskRecord struct {
	// ID is assigned by the record store on first insert (UUID).
	ID string `json:"id,omitempty"`

	// Derived fields.
	Project     string       `json:"project"`
	Priority    string       `json:"priority"`
	Tags        []string     `json:"tags"`
	Annotations []Annotation `json:"annotations"`
	Description string       `json:"description"`

	// Fields copied from the payload.
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	URL       string    `json:"url"`
	Repo      string    `json:"repo"`
	Type      string    `json:"type"`
	Number    int       `json:"number"`
	Author    string    `json:"author"`
	Milestone string    `json:"milestone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
