package models

type Folder struct {
	ItemMeta
}

func (Folder) ItemType() ItemType { return ItemTypeFolder }
func (Folder) isItem()            {}

// RootName is the display name of the root breadcrumb.
const RootName = "My Drive"

// BreadcrumbEntry is one step of the path from the root to the current
// folder. A nil FolderID denotes the root.
type BreadcrumbEntry struct {
	FolderID *string
	Name     string
}

func RootBreadcrumb() BreadcrumbEntry {
	return BreadcrumbEntry{FolderID: nil, Name: RootName}
}

// IsRoot reports whether the entry denotes the root folder.
func (b BreadcrumbEntry) IsRoot() bool {
	return b.FolderID == nil
}
