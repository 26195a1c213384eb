package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
)

// DefaultErrorMessage is shown when the server gives no usable error.
const DefaultErrorMessage = "Authentication failed."

// ErrSubmitInFlight is returned when a submission is attempted while a
// previous one is still outstanding.
var ErrSubmitInFlight = errors.New("submission already in progress")

// ValidationError reports the fields that blocked a submission.
type ValidationError struct {
	Results map[string]FieldResult
}

func (e *ValidationError) Error() string {
	for _, res := range e.Results {
		if !res.Valid {
			return res.Message
		}
	}
	return "validation failed"
}

// ServerError carries the message the server returned for a rejected
// request, or DefaultErrorMessage when it returned none.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// AuthClient talks to the auth API on behalf of a form.
type AuthClient struct {
	baseURL string
	http    *http.Client
	tokens  *TokenStore

	// inFlight guards against duplicate concurrent submissions.
	inFlight atomic.Bool
}

// NewAuthClient creates a client for the given server base URL. httpClient
// may be nil to use http.DefaultClient.
func NewAuthClient(baseURL string, httpClient *http.Client, tokens *TokenStore) *AuthClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &AuthClient{baseURL: baseURL, http: httpClient, tokens: tokens}
}

type tokenResponse struct {
	Token string `json:"token"`
	Error string `json:"error"`
}

// Submit validates the form values and posts them to the form's endpoint.
// On success the returned token has already been persisted to the token
// store. The in-flight flag is cleared on every path, so a failed submit
// leaves the client ready for a retry.
func (c *AuthClient) Submit(ctx context.Context, form *Form, values map[string]string) (string, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return "", ErrSubmitInFlight
	}
	defer c.inFlight.Store(false)

	if results, ok := form.Validate(values); !ok {
		return "", &ValidationError{Results: results}
	}

	body, err := json.Marshal(form.Payload(values))
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+form.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &ServerError{Message: DefaultErrorMessage}
	}

	// A 2xx without a token is treated the same as a rejection.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || decoded.Token == "" {
		msg := decoded.Error
		if msg == "" {
			msg = DefaultErrorMessage
		}
		return "", &ServerError{Message: msg}
	}

	if c.tokens != nil {
		if err := c.tokens.Save(decoded.Token); err != nil {
			return "", fmt.Errorf("failed to store token: %w", err)
		}
	}
	return decoded.Token, nil
}

// Dashboard calls the token-gated dashboard endpoint using the stored
// token and returns its welcome message.
func (c *AuthClient) Dashboard(ctx context.Context) (string, error) {
	token, err := c.tokens.Load()
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/dashboard", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &ServerError{Message: DefaultErrorMessage}
	}

	if resp.StatusCode != http.StatusOK {
		msg := decoded.Error
		if msg == "" {
			msg = DefaultErrorMessage
		}
		return "", &ServerError{Message: msg}
	}
	return decoded.Message, nil
}
