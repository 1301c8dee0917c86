package signup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RegisterPath is the captain registration endpoint, relative to the base URL.
const RegisterPath = "/captains/register"

// maxErrorBody caps how much of a rejected response is read.
const maxErrorBody = 64 << 10

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Vehicle is the vehicle of a registered captain as returned by the server.
type Vehicle struct {
	Color       string `json:"color"`
	Plate       string `json:"plate"`
	Capacity    int    `json:"capacity"`
	VehicleType string `json:"vehicleType"`
}

// Captain is the captain record returned by the server.
type Captain struct {
	ID        string    `json:"id"`
	FullName  FullName  `json:"fullname"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	Vehicle   Vehicle   `json:"vehicle"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterResponse is the body of a successful registration.
type RegisterResponse struct {
	Token   string  `json:"token"`
	Captain Captain `json:"captain"`
}

// RegistrationError describes a registration the server did not accept.
// StatusCode is zero when the request never got a response.
type RegistrationError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
	Err        error
}

func (e *RegistrationError) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("registration request failed: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("registration rejected with status %d: %s", e.StatusCode, e.Message)
	case len(e.Fields) > 0:
		return fmt.Sprintf("registration rejected with status %d: %d invalid fields", e.StatusCode, len(e.Fields))
	case e.Err != nil:
		return fmt.Sprintf("registration rejected with status %d: %v", e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("registration rejected with status %d", e.StatusCode)
	}
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// Client talks to the accounts API.
type Client struct {
	baseURL string
	http    Doer
}

// NewClient creates a Client for baseURL. A nil doer uses http.DefaultClient.
func NewClient(baseURL string, doer Doer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    doer,
	}
}

// Register submits the payload once. Only a 201 response counts as success;
// everything else is returned as a *RegistrationError.
func (c *Client) Register(ctx context.Context, payload Payload) (*RegisterResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode registration payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+RegisterPath, bytes.NewReader(body))
	if err != nil {
		return nil, &RegistrationError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RegistrationError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, decodeRejection(resp)
	}

	var out RegisterResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &RegistrationError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to decode registration response: %w", err),
		}
	}
	return &out, nil
}

// rejectionBody is the error body written by the accounts API.
type rejectionBody struct {
	Error   string          `json:"error"`
	Message json.RawMessage `json:"message"`
}

// decodeRejection extracts the server message. The message is either a string
// or an object of field path to text; an unreadable body leaves both empty.
func decodeRejection(resp *http.Response) *RegistrationError {
	regErr := &RegistrationError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		regErr.Err = err
		return regErr
	}

	var body rejectionBody
	if err := json.Unmarshal(data, &body); err != nil {
		regErr.Err = errors.New(http.StatusText(resp.StatusCode))
		return regErr
	}

	var text string
	var fields map[string]string
	switch {
	case len(body.Message) == 0:
	case json.Unmarshal(body.Message, &text) == nil:
		regErr.Message = text
	case json.Unmarshal(body.Message, &fields) == nil:
		regErr.Fields = fields
	}

	if body.Error != "" {
		regErr.Err = errors.New(body.Error)
	}
	return regErr
}
