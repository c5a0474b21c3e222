package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/longkey1/notion-presence/internal/notion/types"
)

const (
	baseURL       = "https://api.notion.com/v1"
	notionVersion = "2022-06-28"
)

// Client is a Notion REST API client
type Client struct {
	httpClient *http.Client
	token      string
	baseURL    string
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API endpoint
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new Notion REST API client
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		token:      token,
		baseURL:    baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListPageIDs pages through the search endpoint until every page has been
// seen. A failure on any request discards what was collected so far.
func (c *Client) ListPageIDs(ctx context.Context) ([]string, error) {
	var ids []string
	cursor := ""

	for {
		searchReq := searchRequest{
			Filter: &searchFilter{
				Value:    "page",
				Property: "object",
			},
			StartCursor: cursor,
			PageSize:    types.SearchPageSize,
		}

		var searchResp searchResponse
		if err := c.do(ctx, http.MethodPost, "/search", searchReq, &searchResp); err != nil {
			return nil, fmt.Errorf("failed to search pages: %w", err)
		}

		for _, result := range searchResp.Results {
			if result.Object == "page" {
				ids = append(ids, result.ID)
			}
		}

		if !searchResp.HasMore || searchResp.NextCursor == "" {
			break
		}
		cursor = searchResp.NextCursor
	}

	return ids, nil
}

// ResolvePage retrieves a page and extracts its title and parent
func (c *Client) ResolvePage(ctx context.Context, pageID string) (*types.PageRef, error) {
	var page pageResponse
	if err := c.do(ctx, http.MethodGet, "/pages/"+normalizeID(pageID), nil, &page); err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	return &types.PageRef{
		ID:       page.ID,
		Title:    extractTitle(page.Properties),
		ParentID: page.Parent.id(),
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		jsonBody, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr APIError
		if err := json.Unmarshal(respBody, &apiErr); err != nil || apiErr.Message == "" {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
		}
		apiErr.Status = resp.StatusCode
		return &apiErr
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", notionVersion)
}

func normalizeID(id string) string {
	return strings.ReplaceAll(id, "-", "")
}

// Internal types for API requests and responses

type pageResponse struct {
	Object     string              `json:"object"`
	ID         string              `json:"id"`
	Parent     parent              `json:"parent"`
	Properties map[string]property `json:"properties"`
}

type parent struct {
	Type       string `json:"type"`
	PageID     string `json:"page_id,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
	Workspace  bool   `json:"workspace,omitempty"`
}

func (p parent) id() string {
	if p.PageID != "" {
		return p.PageID
	}
	return p.DatabaseID
}

type property struct {
	Type  string     `json:"type"`
	Title []richText `json:"title,omitempty"`
}

type richText struct {
	PlainText string `json:"plain_text"`
}

type searchRequest struct {
	Query       string        `json:"query"`
	Filter      *searchFilter `json:"filter,omitempty"`
	StartCursor string        `json:"start_cursor,omitempty"`
	PageSize    int           `json:"page_size,omitempty"`
}

type searchFilter struct {
	Value    string `json:"value"`
	Property string `json:"property"`
}

type searchResponse struct {
	Results    []pageResponse `json:"results"`
	NextCursor string         `json:"next_cursor"`
	HasMore    bool           `json:"has_more"`
}

// APIError is the error object returned by the Notion API
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d): %s", e.Code, e.Status, e.Message)
}

// extractTitle joins the text runs of the first title property. A title
// property without runs, or no title property at all, yields "Untitled".
func extractTitle(props map[string]property) string {
	for _, prop := range props {
		if prop.Type != "title" {
			continue
		}
		if len(prop.Title) == 0 {
			return types.UntitledTitle
		}
		var sb strings.Builder
		for _, text := range prop.Title {
			sb.WriteString(text.PlainText)
		}
		return sb.String()
	}
	return types.UntitledTitle
}
