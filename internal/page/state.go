package page

// StatusKind classifies the outcome shown under the contact form.
type StatusKind string

const (
	KindNone    StatusKind = ""
	KindSuccess StatusKind = "success"
	KindError   StatusKind = "error"
)

// Fixed user-facing submission messages.
const (
	MessageSent   = "Message sent successfully! I will get back to you soon."
	MessageFailed = "Failed to send message. Please try again."
)

// Status is the submission feedback pair. Message is empty exactly when
// Kind is KindNone.
type Status struct {
	Message string     `json:"message"`
	Kind    StatusKind `json:"kind"`
}

// Empty reports whether no feedback is shown.
func (s Status) Empty() bool {
	return s.Kind == KindNone
}

// State is the complete view state of one mounted page.
type State struct {
	Dark             bool    `json:"dark"`
	MenuOpen         bool    `json:"menu_open"`
	Active           Section `json:"active"`
	ScrollTopVisible bool    `json:"scroll_top_visible"`
	Status           Status  `json:"status"`
	Submitting       bool    `json:"submitting"`
}

// DefaultState is the state every page starts from at mount.
func DefaultState() State {
	return State{Active: SectionHome}
}
