// Package client submits contact-form inquiries to the intake service and
// reduces the reply to a single message for the person filling in the form.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultEndpoint = "http://localhost:5000/contact"
	GenericFailure  = "Something went wrong. Please try again later."

	maxReplyBytes = 64 << 10
)

// Form is what the contact form collects. Phone is sent but not stored.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Phone   string `json:"phone,omitempty"`
}

// Result is the outcome shown to the user.
type Result struct {
	OK      bool
	Status  int
	Message string
}

type reply struct {
	Message string `json:"message"`
	Errors  []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

// Client posts forms to one endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// New creates a Client. An empty endpoint means DefaultEndpoint.
func New(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Submit sends form once. The returned Result always carries a displayable
// message; the error is set only when no usable reply came back.
func (c *Client) Submit(ctx context.Context, form Form) (Result, error) {
	payload, err := json.Marshal(form)
	if err != nil {
		return Result{Message: GenericFailure}, fmt.Errorf("encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{Message: GenericFailure}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{Message: GenericFailure}, fmt.Errorf("post %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return Result{Status: resp.StatusCode, Message: GenericFailure}, fmt.Errorf("read reply: %w", err)
	}

	res := Result{
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status: resp.StatusCode,
	}
	res.Message = messageFor(resp.StatusCode, body)
	return res, nil
}

func messageFor(status int, body []byte) string {
	var r reply
	if err := json.Unmarshal(body, &r); err == nil {
		if r.Message != "" {
			return r.Message
		}
		if len(r.Errors) > 0 && r.Errors[0].Msg != "" {
			return r.Errors[0].Msg
		}
	}
	if status == http.StatusTooManyRequests {
		if text := strings.TrimSpace(string(body)); text != "" {
			return text
		}
	}
	return GenericFailure
}
