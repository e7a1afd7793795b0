// Package platform wraps the upstream widget API the engine consumes:
// config fetch, conversational replies and lead capture.
package platform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/chatterloop/widget/internal/config"
	"github.com/chatterloop/widget/internal/domain/models"
)

// ErrWidgetDisabled signals that the chatbot is inactive or its subscription
// expired; the widget must render nothing.
var ErrWidgetDisabled = errors.New("widget disabled")

// Client exposes the platform operations used by the widget engine.
// Calls are never retried; callers degrade to fallback behavior on error.
type Client interface {
	FetchWidget(ctx context.Context, chatbotID string) (*WidgetResponse, error)
	SendMessage(ctx context.Context, chatbotID string, req MessageRequest) (*MessageResponse, error)
	CaptureLead(ctx context.Context, chatbotID string, req CaptureLeadRequest) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a platform API client from configuration.
func NewClient(cfg config.PlatformConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	if cfg.APIKey != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey))
	}

	return &APIClient{httpClient: restyClient}
}

// WidgetResponse is the payload of GET /api/widget/{chatbotId}.
type WidgetResponse struct {
	Config       models.ChatbotConfig `json:"config"`
	Status       string               `json:"status"`
	Client       ClientInfo           `json:"client"`
	Subscription SubscriptionInfo     `json:"subscription"`
}

// ClientInfo identifies the chatbot owner shown in the widget header.
type ClientInfo struct {
	Name string `json:"name"`
}

// SubscriptionInfo carries the owner's billing state.
type SubscriptionInfo struct {
	Status string `json:"status"`
}

// Disabled reports whether the widget must render nothing.
func (w *WidgetResponse) Disabled() bool {
	return w.Subscription.Status == "expired" || w.Status != "active"
}

// MessageRequest is the body of POST /api/widget/{chatbotId}/message.
type MessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// MessageResponse is the assistant's reply.
type MessageResponse struct {
	Response        string        `json:"response"`
	ResponseOptions []string      `json:"responseOptions,omitempty"`
	Links           []models.Link `json:"links,omitempty"`
}

// CaptureLeadRequest is the body of POST /api/widget/{chatbotId}/capture-lead.
// The response body is ignored beyond its status code.
type CaptureLeadRequest struct {
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Message        string `json:"message,omitempty"`
	ConversationID string `json:"conversationId"`
	Source         string `json:"source"`
}

// apiError is the platform's error envelope.
type apiError struct {
	Error string `json:"error"`
}

// FetchWidget loads the chatbot configuration and availability state.
func (c *APIClient) FetchWidget(ctx context.Context, chatbotID string) (*WidgetResponse, error) {
	result := new(WidgetResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr).
		Get(fmt.Sprintf("/api/widget/%s", chatbotID))
	if err != nil {
		return nil, fmt.Errorf("fetch widget config: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, statusError("fetch widget config", resp.StatusCode(), apiErr)
	}

	return result, nil
}

// SendMessage forwards the visitor's text and returns the assistant reply.
func (c *APIClient) SendMessage(ctx context.Context, chatbotID string, req MessageRequest) (*MessageResponse, error) {
	result := new(MessageResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		SetError(apiErr).
		Post(fmt.Sprintf("/api/widget/%s/message", chatbotID))
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, statusError("send message", resp.StatusCode(), apiErr)
	}

	return result, nil
}

// CaptureLead submits partial contact details. Repeated partial submissions
// are expected; the server merges them.
func (c *APIClient) CaptureLead(ctx context.Context, chatbotID string, req CaptureLeadRequest) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetError(apiErr).
		Post(fmt.Sprintf("/api/widget/%s/capture-lead", chatbotID))
	if err != nil {
		return fmt.Errorf("capture lead: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return statusError("capture lead", resp.StatusCode(), apiErr)
	}

	return nil
}

func statusError(op string, status int, apiErr *apiError) error {
	message := ""
	if apiErr != nil {
		message = apiErr.Error
	}
	return fmt.Errorf("%s: platform api error: status=%d, message=%s", op, status, message)
}

// DefaultTimeout is applied when configuration leaves the timeout unset.
const DefaultTimeout = 15 * time.Second
