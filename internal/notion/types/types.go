package types

import "context"

//go:generate mockgen -source=types.go -destination=../mock_types/mock_types.go -package=mock_types

// Client defines the Notion operations the presence tool relies on
type Client interface {
	// ListPageIDs returns the ID of every page shared with the integration
	ListPageIDs(ctx context.Context) ([]string, error)

	// ResolvePage fetches a page's title and parent
	ResolvePage(ctx context.Context, pageID string) (*PageRef, error)
}

// UntitledTitle is used when a page has a title property without text
const UntitledTitle = "Untitled"

// SearchPageSize is the page size used when listing pages (API maximum)
const SearchPageSize = 100

// PageRef is the resolved title and parent of a page
type PageRef struct {
	ID    string
	Title string
	// ParentID is the parent page or database ID, empty for top-level pages
	ParentID string
}
