package hierarchy

import (
	"sort"
	"strings"

	"github.com/longkey1/notion-presence/internal/notion/types"
)

// Indent is prepended to a title once per depth level
const Indent = "  "

// Entry is one line of the flattened hierarchy
type Entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Depth int    `json:"depth"`
}

// DisplayTitle returns the title indented for its depth
func (e Entry) DisplayTitle() string {
	return strings.Repeat(Indent, e.Depth) + e.Title
}

// Node is a page and its child pages
type Node struct {
	Page     types.PageRef
	Children []*Node
}

// Forest holds the top-level pages. Pages whose parent was not resolved
// (a database, or a page the integration cannot see) are not reachable.
type Forest struct {
	Roots []*Node
}

// BuildForest links resolved pages to their parents. Input order is kept
// among pages with equal titles.
func BuildForest(pages []types.PageRef) *Forest {
	nodes := make([]*Node, len(pages))
	children := make(map[string][]*Node)
	f := &Forest{}

	for i, page := range pages {
		n := &Node{Page: page}
		nodes[i] = n
		if page.ParentID == "" {
			f.Roots = append(f.Roots, n)
			continue
		}
		children[page.ParentID] = append(children[page.ParentID], n)
	}

	for _, n := range nodes {
		n.Children = children[n.Page.ID]
		sortByTitle(n.Children)
	}
	sortByTitle(f.Roots)

	return f
}

func sortByTitle(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Page.Title < nodes[j].Page.Title
	})
}

// Flatten walks the forest depth first. A page id is emitted at most once,
// which also stops traversal of any cycle.
func (f *Forest) Flatten() []Entry {
	entries := []Entry{}
	visited := make(map[string]bool)

	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			if visited[n.Page.ID] {
				continue
			}
			visited[n.Page.ID] = true
			entries = append(entries, Entry{
				ID:    n.Page.ID,
				Title: n.Page.Title,
				Depth: depth,
			})
			walk(n.Children, depth+1)
		}
	}
	walk(f.Roots, 0)

	return entries
}
