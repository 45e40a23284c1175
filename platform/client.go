// Package platform implements the remote repositories over the voice platform
// REST API. The console owns no entity data; every repository here is a thin,
// contract-shaped view of an upstream endpoint.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrUnauthorized is returned after the platform rejects the bearer token.
	// By the time a caller sees it, the local session has already been purged.
	ErrUnauthorized = errors.New("platform: unauthorized")

	// ErrNotFound is returned for 404 responses. Callers that treat a missing
	// sub-resource as empty-but-valid match on it with errors.Is.
	ErrNotFound = errors.New("platform: not found")
)

// APIError carries the platform's error detail for non-2xx responses that are
// neither 401 nor 404. Detail is surfaced to the operator verbatim when present.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("platform: status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("platform: status %d", e.StatusCode)
}

// SessionAccessor is the single read/write surface for the operator session.
// Token yields the current bearer token for the request's session; Purge
// destroys the session record. The client never touches session state any
// other way.
type SessionAccessor interface {
	Token(ctx context.Context) (string, error)
	Purge(ctx context.Context) error
}

// Client is the shared HTTP plumbing under every remote repository. Any
// authorized call that comes back 401 purges the session as a side effect and
// fails with ErrUnauthorized so the caller cannot proceed on stale state.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Sessions   SessionAccessor

	// Optional metric hooks. OnRequest receives one of: ok, unauthorized,
	// not_found, error, transport_error. OnPurge fires when a 401 forces a
	// session purge.
	OnRequest func(outcome string)
	OnPurge   func()
}

// NewClient creates a platform API client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, sessions SessionAccessor) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Sessions:   sessions,
	}
}

type detailEnvelope struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// do issues one request. When authorized is true the session token is attached
// as a bearer header; a 401 response then triggers the purge side effect.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, authorized bool, out any) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authorized {
		token, err := c.Sessions.Token(ctx)
		if err != nil {
			return fmt.Errorf("platform: no session token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.observe("transport_error")
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.observe("unauthorized")
		if authorized {
			_ = c.Sessions.Purge(ctx)
			if c.OnPurge != nil {
				c.OnPurge()
			}
		}
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		c.observe("not_found")
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.observe("error")
		return &APIError{StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	c.observe("ok")

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) observe(outcome string) {
	if c.OnRequest != nil {
		c.OnRequest(outcome)
	}
}

// readDetail extracts the platform's error detail message, falling back to a
// trimmed body snippet for non-JSON responses.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var env detailEnvelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Detail != "" {
			return env.Detail
		}
		if env.Message != "" {
			return env.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", true, out)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(b), "application/json", true, out)
}

func (c *Client) putJSON(ctx context.Context, path string, payload, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, nil, bytes.NewReader(b), "application/json", true, out)
}

func (c *Client) deleteJSON(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", true, nil)
}

// postForm sends a form-encoded body. Only the login endpoint uses this; the
// platform's auth service does not accept JSON credentials.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, authorized bool, out any) error {
	body := strings.NewReader(form.Encode())
	return c.do(ctx, http.MethodPost, path, nil, body, "application/x-www-form-urlencoded", authorized, out)
}

// postMultipart uploads a single file field plus optional extra fields.
func (c *Client) postMultipart(ctx context.Context, path, fieldName, fileName string, data []byte, fields map[string]string, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(fieldName, fileName)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType(), true, out)
}
