// Package state holds the navigation state machine and view preferences.
// Neither type is safe for concurrent use; the dashboard serializes access.
package state

import (
	"fmt"

	"drivedash/models"
)

type Mode int

const (
	Browsing Mode = iota
	Searching
)

func (m Mode) String() string {
	if m == Searching {
		return "searching"
	}
	return "browsing"
}

// ListingQuery is what the next refresh should fetch. When SearchTerm is
// set, FolderID and Sort do not apply.
type ListingQuery struct {
	FolderID   *string
	SearchTerm string
	Sort       SortOption
}

func (q ListingQuery) IsSearch() bool {
	return q.SearchTerm != ""
}

// Scope describes the query for logs.
func (q ListingQuery) Scope() string {
	if q.IsSearch() {
		return fmt.Sprintf("search %q", q.SearchTerm)
	}
	if q.FolderID == nil {
		return "root"
	}
	return "folder " + *q.FolderID
}

// NavigationState is a copy of the navigator's state.
type NavigationState struct {
	CurrentFolderID *string
	Breadcrumbs     []models.BreadcrumbEntry
	SearchTerm      string
	Mode            Mode
}

// Navigator owns the current folder, the breadcrumb path and the search
// override. Searching suspends the folder and breadcrumbs; leaving search
// restores them untouched.
type Navigator struct {
	breadcrumbs []models.BreadcrumbEntry
	searchTerm  string
}

func NewNavigator() *Navigator {
	return &Navigator{breadcrumbs: []models.BreadcrumbEntry{models.RootBreadcrumb()}}
}

// CurrentFolderID is nil at the root.
func (n *Navigator) CurrentFolderID() *string {
	return copyID(n.breadcrumbs[len(n.breadcrumbs)-1].FolderID)
}

func (n *Navigator) Mode() Mode {
	if n.searchTerm != "" {
		return Searching
	}
	return Browsing
}

func (n *Navigator) SearchTerm() string {
	return n.searchTerm
}

// EnterFolder descends into item and leaves search mode.
func (n *Navigator) EnterFolder(item models.Item) error {
	folder, ok := item.(models.Folder)
	if !ok {
		return fmt.Errorf("cannot enter %s %q: not a folder", item.ItemType(), item.ItemName())
	}
	id := folder.ID
	n.breadcrumbs = append(n.breadcrumbs, models.BreadcrumbEntry{FolderID: &id, Name: folder.Name})
	n.searchTerm = ""
	return nil
}

// ClickBreadcrumb truncates the path to index and leaves search mode.
func (n *Navigator) ClickBreadcrumb(index int) error {
	if index < 0 || index >= len(n.breadcrumbs) {
		return fmt.Errorf("breadcrumb %d out of range [0, %d]", index, len(n.breadcrumbs)-1)
	}
	n.breadcrumbs = n.breadcrumbs[:index+1:index+1]
	n.searchTerm = ""
	return nil
}

// OpenAt jumps to folder directly under the root, as when opening a folder
// from the shared-with-me list.
func (n *Navigator) OpenAt(folder models.Folder) {
	id := folder.ID
	n.breadcrumbs = []models.BreadcrumbEntry{
		models.RootBreadcrumb(),
		{FolderID: &id, Name: folder.Name},
	}
	n.searchTerm = ""
}

// SetSearchTerm enters search mode for a non-empty term. An empty term
// returns to browsing the folder that was current before the search.
func (n *Navigator) SetSearchTerm(term string) {
	n.searchTerm = term
}

// Query computes the listing query for the current mode.
func (n *Navigator) Query(prefs Preferences) ListingQuery {
	if n.searchTerm != "" {
		return ListingQuery{SearchTerm: n.searchTerm}
	}
	return ListingQuery{FolderID: n.CurrentFolderID(), Sort: prefs.Sort}
}

// Snapshot copies the state so callers cannot mutate the navigator.
func (n *Navigator) Snapshot() NavigationState {
	crumbs := make([]models.BreadcrumbEntry, len(n.breadcrumbs))
	for i, b := range n.breadcrumbs {
		crumbs[i] = models.BreadcrumbEntry{FolderID: copyID(b.FolderID), Name: b.Name}
	}
	return NavigationState{
		CurrentFolderID: n.CurrentFolderID(),
		Breadcrumbs:     crumbs,
		SearchTerm:      n.searchTerm,
		Mode:            n.Mode(),
	}
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
