package models

import "strings"

type File struct {
	ItemMeta
	FileType    string // MIME type
	StoragePath string // opaque key used to request a signed URL
}

func (File) ItemType() ItemType { return ItemTypeFile }
func (File) isItem()            {}

// Preview is what gets handed to the preview collaborator when a file is opened.
type Preview struct {
	URL      string
	MimeType string
	Name     string
}

// IsImage reports whether the preview can be shown inline as an image.
func (p Preview) IsImage() bool {
	return strings.HasPrefix(p.MimeType, "image/")
}
