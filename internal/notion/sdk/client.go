package sdk

import (
	"context"
	"fmt"
	"strings"

	"github.com/jomei/notionapi"

	"github.com/longkey1/notion-presence/internal/notion/types"
)

//go:generate mockgen -source=client.go -destination=mock_sdk/mock_sdk.go -package=mock_sdk
type (
	PageService interface {
		Get(context.Context, notionapi.PageID) (*notionapi.Page, error)
	}

	SearchService interface {
		Do(context.Context, *notionapi.SearchRequest) (*notionapi.SearchResponse, error)
	}
)

// Client implements types.Client on top of the notionapi SDK
type Client struct {
	pages  PageService
	search SearchService
}

// NewClient creates a client authenticated with an integration token
func NewClient(token string) *Client {
	c := notionapi.NewClient(notionapi.Token(token))
	return NewClientWithServices(c.Page, c.Search)
}

// NewClientWithServices creates a client from explicit services
func NewClientWithServices(pages PageService, search SearchService) *Client {
	return &Client{
		pages:  pages,
		search: search,
	}
}

// ListPageIDs pages through search results until has_more is false
func (c *Client) ListPageIDs(ctx context.Context) ([]string, error) {
	var ids []string
	var cursor notionapi.Cursor

	for {
		resp, err := c.search.Do(ctx, &notionapi.SearchRequest{
			Filter: notionapi.SearchFilter{
				Property: "object",
				Value:    "page",
			},
			StartCursor: cursor,
			PageSize:    types.SearchPageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to search pages: %w", err)
		}

		for _, obj := range resp.Results {
			page, ok := obj.(*notionapi.Page)
			if !ok || page.Object != notionapi.ObjectTypePage {
				continue
			}
			ids = append(ids, string(page.ID))
		}

		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	return ids, nil
}

// ResolvePage fetches a page and extracts its title and parent
func (c *Client) ResolvePage(ctx context.Context, pageID string) (*types.PageRef, error) {
	page, err := c.pages.Get(ctx, notionapi.PageID(strings.ReplaceAll(pageID, "-", "")))
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	return &types.PageRef{
		ID:       string(page.ID),
		Title:    pageTitle(page.Properties),
		ParentID: parentID(page.Parent),
	}, nil
}

func parentID(p notionapi.Parent) string {
	if p.PageID != "" {
		return string(p.PageID)
	}
	return string(p.DatabaseID)
}

func pageTitle(props notionapi.Properties) string {
	for _, prop := range props {
		var runs []notionapi.RichText
		switch p := prop.(type) {
		case *notionapi.TitleProperty:
			runs = p.Title
		case notionapi.TitleProperty:
			runs = p.Title
		default:
			continue
		}

		if len(runs) == 0 {
			return types.UntitledTitle
		}
		var sb strings.Builder
		for _, text := range runs {
			sb.WriteString(text.PlainText)
		}
		return sb.String()
	}
	return types.UntitledTitle
}
