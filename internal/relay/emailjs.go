// Package relay delivers contact form messages to the site owner through
// an external mail service.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Saicharan2707l/portfolio/internal/page"
)

// DefaultEmailJSEndpoint is the public EmailJS REST API host.
const DefaultEmailJSEndpoint = "https://api.emailjs.com"

const emailJSSendPath = "/api/v1.0/email/send"

// EmailJSConfig identifies the EmailJS service, template and account.
type EmailJSConfig struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	// PrivateKey is the optional access token required when the account
	// enforces private keys for REST calls.
	PrivateKey string
	HTTPClient *http.Client
}

// EmailJS sends messages through an EmailJS template.
type EmailJS struct {
	endpoint   string
	serviceID  string
	templateID string
	publicKey  string
	privateKey string
	client     *http.Client
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// NewEmailJS validates cfg and returns a relay for it.
func NewEmailJS(cfg EmailJSConfig) (*EmailJS, error) {
	if cfg.ServiceID == "" || cfg.TemplateID == "" || cfg.PublicKey == "" {
		return nil, errors.New("emailjs: service id, template id and public key are required")
	}
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultEmailJSEndpoint
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &EmailJS{
		endpoint:   endpoint,
		serviceID:  cfg.ServiceID,
		templateID: cfg.TemplateID,
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		client:     client,
	}, nil
}

// Send posts msg to the EmailJS send endpoint.
func (e *EmailJS) Send(ctx context.Context, msg page.ContactMessage) error {
	payload, err := json.Marshal(emailJSRequest{
		ServiceID:      e.serviceID,
		TemplateID:     e.templateID,
		UserID:         e.publicKey,
		AccessToken:    e.privateKey,
		TemplateParams: msg.Fields(),
	})
	if err != nil {
		return fmt.Errorf("emailjs: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+emailJSSendPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("emailjs: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emailjs: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
