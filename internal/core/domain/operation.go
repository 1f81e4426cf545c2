package domain

// Verb identifies the kind of record-system operation.
type Verb string

const (
	VerbRead   Verb = "read"
	VerbCreate Verb = "create"
	VerbUpdate Verb = "update"
	VerbDelete Verb = "delete"
)

// Operation describes one outbound call to the remote record system.
// It is immutable for the duration of an invocation.
type Operation struct {
	Target  string         `json:"target"`
	Verb    Verb           `json:"verb"`
	Payload map[string]any `json:"payload,omitempty"`
	Name    string         `json:"name"`
	Subject string         `json:"subject,omitempty"` // e.g. patient id the call is about
}
