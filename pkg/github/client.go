package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
)

const (
	// DefaultAPIURL is the GitHub REST API host used unless the
	// configuration points somewhere else (GitHub Enterprise).
	DefaultAPIURL = "https://api.github.com"

	// MaxPageSize is the largest per_page value the API accepts and
	// the default for every paged read.
	MaxPageSize = 100

	apiVersion = "2022-11-28"
	mediaType  = "application/vnd.github+json"
)

// Page is one decoded page of a collection endpoint. Next is the page
// number advertised by the response's link header, or 0 when the
// response carried no rel="next" relation (final page).
type Page struct {
	Records []Record
	Next    int
}

// APIClient is the transport surface the engine needs. The concrete
// Client talks to the GitHub REST API; tests substitute their own.
type APIClient interface {
	GetPage(path string, query url.Values) (*Page, error)
	GetRuleset(owner, repo string, id int64) (Record, error)
	CreateRuleset(owner, repo string, rule Record) (Record, error)
	UpdateRuleset(owner, repo string, id int64, rule Record) (Record, error)
}

// Client implements APIClient against the GitHub REST API.
type Client struct {
	baseURL *url.URL
	httpc   *http.Client
	log     *slog.Logger
	ctx     context.Context
}

// NewClient creates an authenticated API client. apiURL may be empty,
// in which case DefaultAPIURL is used.
func NewClient(token, apiURL string, logger *slog.Logger) (*Client, error) {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	base, err := url.Parse(strings.TrimSuffix(apiURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", apiURL, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx := context.Background()
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})

	return &Client{
		baseURL: base,
		httpc:   oauth2.NewClient(ctx, ts),
		log:     logger,
		ctx:     ctx,
	}, nil
}

// GetPage issues one paginated GET and returns the decoded page body
// plus the next cursor. per_page defaults to MaxPageSize and page to 1
// unless the query says otherwise. A page body may be a single object
// or an array of objects; both come back as Records.
func (c *Client) GetPage(path string, query url.Values) (*Page, error) {
	q := url.Values{}
	for k, vs := range query {
		q[k] = vs
	}
	if q.Get("per_page") == "" {
		q.Set("per_page", strconv.Itoa(MaxPageSize))
	}
	if q.Get("page") == "" {
		q.Set("page", "1")
	}

	body, header, err := c.do(http.MethodGet, path, q, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	records, err := decodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("decoding page of %s: %w", path, err)
	}

	return &Page{Records: records, Next: nextPage(header.Get("Link"))}, nil
}

// GetRuleset fetches one full ruleset; the paged list only returns
// summaries.
func (c *Client) GetRuleset(owner, repo string, id int64) (Record, error) {
	path := fmt.Sprintf("/repos/%s/%s/rulesets/%d", owner, repo, id)
	body, _, err := c.do(http.MethodGet, path, nil, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body)
}

// CreateRuleset creates a repository ruleset. Anything but 201 is an
// error, including a 200.
func (c *Client) CreateRuleset(owner, repo string, rule Record) (Record, error) {
	path := fmt.Sprintf("/repos/%s/%s/rulesets", owner, repo)
	body, _, err := c.do(http.MethodPost, path, nil, rule, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body)
}

// UpdateRuleset updates a repository ruleset by id; expects 200.
func (c *Client) UpdateRuleset(owner, repo string, id int64, rule Record) (Record, error) {
	path := fmt.Sprintf("/repos/%s/%s/rulesets/%d", owner, repo, id)
	body, _, err := c.do(http.MethodPut, path, nil, rule, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body)
}

// do issues one request and enforces the acceptable status set. There
// is no retry: any status outside accept aborts the run with a
// StatusError carrying the URL, status, and reason.
func (c *Client) do(method, path string, query url.Values, body any, accept ...int) ([]byte, http.Header, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding %s body: %w", method, err)
		}
		c.log.Debug("request body", "method", method, "url", u.String(), "body", string(data))
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(c.ctx, method, u.String(), payload)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", mediaType)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", mediaType)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", method, u.String(), err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: reading response: %w", method, u.String(), err)
	}

	c.log.Info("request", "method", method, "url", u.String(), "status", resp.StatusCode)

	if !statusAccepted(resp.StatusCode, accept) {
		return nil, nil, &StatusError{
			Method: method,
			URL:    u.String(),
			Status: resp.StatusCode,
			Reason: http.StatusText(resp.StatusCode),
		}
	}

	return data, resp.Header, nil
}

func statusAccepted(status int, accept []int) bool {
	for _, s := range accept {
		if s == status {
			return true
		}
	}
	return false
}

// nextPage extracts the integer page parameter of the rel="next" entry
// from a link header of the form `<url>; rel="name", ...`. Zero means
// the final page was just received.
func nextPage(link string) int {
	for _, entry := range strings.Split(link, ",") {
		var target, rel string
		for _, part := range strings.Split(entry, ";") {
			part = strings.TrimSpace(part)
			switch {
			case strings.HasPrefix(part, "<") && strings.HasSuffix(part, ">"):
				target = strings.Trim(part, "<>")
			case strings.HasPrefix(part, "rel="):
				rel = strings.Trim(strings.TrimPrefix(part, "rel="), `"`)
			}
		}
		if rel != "next" || target == "" {
			continue
		}
		u, err := url.Parse(target)
		if err != nil {
			continue
		}
		if n, err := strconv.Atoi(u.Query().Get("page")); err == nil {
			return n
		}
	}
	return 0
}

// decodeRecords accepts either a JSON object or a JSON array body and
// normalizes both to a slice of records.
func decodeRecords(body []byte) ([]Record, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var records []Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	}
	rec, err := decodeRecord(trimmed)
	if err != nil {
		return nil, err
	}
	return []Record{rec}, nil
}

func decodeRecord(body []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}
