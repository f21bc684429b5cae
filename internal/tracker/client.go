package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

// Client talks to an issue tracker exposing /api/issues/{project}.
// Requests are unauthenticated and never retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// NewClient creates a client for the tracker rooted at baseURL.
// A nil logger discards request logging.
func NewClient(baseURL string, logger logrus.FieldLogger) *Client {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        logger,
	}
}

// Create submits a new issue.
func (c *Client) Create(ctx context.Context, project string, issue NewIssue) (*Response, error) {
	return c.do(ctx, http.MethodPost, c.issuesURL(project), issue.form())
}

// List fetches the project's issues, narrowed by filter when it is non-empty.
func (c *Client) List(ctx context.Context, project string, filter Filter) (*Response, error) {
	u := c.issuesURL(project)
	if len(filter) > 0 {
		u += "?" + filter.query().Encode()
	}
	return c.do(ctx, http.MethodGet, u, nil)
}

// Update changes the fields set in upd on the issue upd.ID.
func (c *Client) Update(ctx context.Context, project string, upd Update) (*Response, error) {
	return c.do(ctx, http.MethodPut, c.issuesURL(project), upd.form())
}

// Delete removes the issue with the given id.
func (c *Client) Delete(ctx context.Context, project string, id string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, c.issuesURL(project), url.Values{"_id": {id}})
}

func (c *Client) issuesURL(project string) string {
	return fmt.Sprintf("%s/api/issues/%s", c.baseURL, url.PathEscape(project))
}

// do sends one request and decodes the JSON reply. Non-2xx statuses are not
// errors; only transport failures and undecodable bodies are.
func (c *Client) do(ctx context.Context, method, u string, form url.Values) (*Response, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	c.log.WithFields(logrus.Fields{"method": method, "url": u}).Debug("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request %s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.log.WithFields(logrus.Fields{"method": method, "url": u, "status": resp.StatusCode}).Debug("received response")

	// Numbers stay json.Number so large ids and counts print unchanged.
	var decoded any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding %s %s response (status %d): %w: %s", method, u, resp.StatusCode, err, string(raw))
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decoding %s %s response (status %d): trailing data: %s", method, u, resp.StatusCode, string(raw))
	}

	return &Response{StatusCode: resp.StatusCode, Body: decoded, Raw: raw}, nil
}
