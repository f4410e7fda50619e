package page

import (
	"context"
	"errors"
)

var (
	// ErrMissingField is returned when a required contact field is empty.
	ErrMissingField = errors.New("page: required contact field is empty")
	// ErrSubmitInFlight is returned when a submission is already running.
	ErrSubmitInFlight = errors.New("page: submission already in flight")
)

// Form field names shared by the markup, the live protocol and the relay
// templates.
const (
	FieldName    = "from_name"
	FieldEmail   = "from_email"
	FieldMessage = "message"
)

// ContactMessage is what the visitor typed into the contact form.
type ContactMessage struct {
	Name  string `json:"from_name" form:"from_name" binding:"required"`
	Email string `json:"from_email" form:"from_email" binding:"required"`
	Body  string `json:"message" form:"message" binding:"required"`

	// RemoteAddr is the visitor's address as seen by the transport. It is
	// never forwarded to the relay.
	RemoteAddr string `json:"-" form:"-"`
}

// MessageFromFields builds a ContactMessage from form field values keyed
// by the Field* constants.
func MessageFromFields(fields map[string]string) ContactMessage {
	return ContactMessage{
		Name:  fields[FieldName],
		Email: fields[FieldEmail],
		Body:  fields[FieldMessage],
	}
}

// Fields returns the message as form field values, the shape relay
// templates expect.
func (m ContactMessage) Fields() map[string]string {
	return map[string]string{
		FieldName:    m.Name,
		FieldEmail:   m.Email,
		FieldMessage: m.Body,
	}
}

// Validate checks that every required field is present. Like the form's
// required attribute it does not trim, so whitespace counts as a value.
func (m ContactMessage) Validate() error {
	if m.Name == "" || m.Email == "" || m.Body == "" {
		return ErrMissingField
	}
	return nil
}

// Relay delivers a contact message to the site owner. Any error counts as
// a failed delivery.
type Relay interface {
	Send(ctx context.Context, msg ContactMessage) error
}

// RelayFunc adapts a function to Relay.
type RelayFunc func(ctx context.Context, msg ContactMessage) error

// Send calls f.
func (f RelayFunc) Send(ctx context.Context, msg ContactMessage) error {
	return f(ctx, msg)
}
