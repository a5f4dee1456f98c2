// Package api implements the HTTP client for the activities service: one
// read call that fetches the roster and the two mutating calls (signup,
// unregister).
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/mergington-hs/activities-client/internal/model"
	"github.com/mergington-hs/activities-client/internal/observability"
)

// ErrUnavailable is returned by FetchRoster for every failure mode —
// transport error, non-2xx status, or malformed payload. Callers render a
// single "unavailable" state and do not retry.
var ErrUnavailable = errors.New("roster unavailable")

// StatusError is an application-level failure on a mutating call: the
// service answered with a non-2xx status. Detail carries the service's
// explanation and may be empty when the body had none.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("service returned status %d", e.Status)
	}
	return fmt.Sprintf("service returned status %d: %s", e.Status, e.Detail)
}

// Client talks to the activities service. It performs no retries and no
// caching; every call is a single request.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *log.Logger
}

// NewClient constructs a Client. A nil httpc falls back to
// http.DefaultClient and a nil logger to log.Default().
func NewClient(baseURL string, httpc *http.Client, logger *log.Logger) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{baseURL: baseURL, httpc: httpc, logger: logger}
}

// FetchRoster retrieves the current roster. Transport failures, non-2xx
// statuses, and unparseable payloads all collapse into ErrUnavailable; the
// underlying cause is logged and carried in the error text for diagnostics.
func (c *Client) FetchRoster(ctx context.Context) (*model.Roster, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/activities", nil)
	if err != nil {
		return nil, c.unavailable("build request", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, c.unavailable("get activities", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.unavailable("get activities", fmt.Errorf("status %d", resp.StatusCode))
	}

	roster := model.NewRoster()
	if err := json.NewDecoder(resp.Body).Decode(roster); err != nil {
		return nil, c.unavailable("decode roster", err)
	}

	observability.RecordFetch(true)
	return roster, nil
}

func (c *Client) unavailable(op string, cause error) error {
	c.logger.Printf("roster fetch failed: %s: %v", op, cause)
	observability.RecordFetch(false)
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, cause)
}

// Enroll signs email up for the named activity and returns the service's
// confirmation message. A non-2xx answer yields a *StatusError carrying the
// service's detail text; transport failures yield a plain error.
func (c *Client) Enroll(ctx context.Context, activity, email string) (string, error) {
	return c.mutate(ctx, "signup", activity, email)
}

// Withdraw removes email from the named activity. Same outcome shape as
// Enroll.
func (c *Client) Withdraw(ctx context.Context, activity, email string) (string, error) {
	return c.mutate(ctx, "unregister", activity, email)
}

func (c *Client) mutate(ctx context.Context, action, activity, email string) (string, error) {
	// Activity names may contain spaces, slashes, or other reserved
	// characters; the service must receive the literal original name.
	endpoint := fmt.Sprintf("%s/activities/%s/%s?email=%s",
		c.baseURL, url.PathEscape(activity), action, url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		observability.RecordMutation(action, false)
		return "", fmt.Errorf("build %s request: %w", action, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		observability.RecordMutation(action, false)
		return "", fmt.Errorf("%s %q: %w", action, activity, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		observability.RecordMutation(action, false)
		return "", fmt.Errorf("read %s response: %w", action, err)
	}

	if resp.StatusCode != http.StatusOK {
		var detail model.DetailResponse
		_ = json.Unmarshal(body, &detail)
		c.logger.Printf("%s %q for %s failed: status %d detail %q", action, activity, email, resp.StatusCode, detail.Detail)
		observability.RecordMutation(action, false)
		return "", &StatusError{Status: resp.StatusCode, Detail: detail.Detail}
	}

	observability.RecordMutation(action, true)

	// A success with an unparseable body is still a success; callers fall
	// back to a generic confirmation when the message is empty.
	var msg model.MessageResponse
	_ = json.Unmarshal(body, &msg)
	return msg.Message, nil
}
