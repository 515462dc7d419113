package models

import (
	"fmt"
	"time"
)

type ItemType string

const (
	ItemTypeFolder ItemType = "folder"
	ItemTypeFile   ItemType = "file"
)

// Item is either a Folder or a File. The set is closed: only types in this
// package implement it, so a type switch over Folder and File is exhaustive.
type Item interface {
	ItemID() string
	ItemName() string
	ItemType() ItemType
	ItemSize() int64
	ItemCreatedAt() time.Time
	isItem()
}

// ItemMeta holds the fields shared by folders and files.
type ItemMeta struct {
	ID        string
	Name      string
	Size      int64
	CreatedAt time.Time
}

func (m ItemMeta) ItemID() string           { return m.ID }
func (m ItemMeta) ItemName() string         { return m.Name }
func (m ItemMeta) ItemSize() int64          { return m.Size }
func (m ItemMeta) ItemCreatedAt() time.Time { return m.CreatedAt }

// Record is the wire shape of an item as returned by the content service.
type Record struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	FileType    string    `json:"file_type,omitempty"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	StoragePath string    `json:"storage_path,omitempty"`
}

// ToItem converts a wire record into the closed Item variant.
func (r Record) ToItem() (Item, error) {
	meta := ItemMeta{ID: r.ID, Name: r.Name, Size: r.Size, CreatedAt: r.CreatedAt}
	switch ItemType(r.Type) {
	case ItemTypeFolder:
		return Folder{ItemMeta: meta}, nil
	case ItemTypeFile:
		return File{ItemMeta: meta, FileType: r.FileType, StoragePath: r.StoragePath}, nil
	default:
		return nil, fmt.Errorf("item %q has unknown type %q", r.ID, r.Type)
	}
}

// RecordOf is the inverse of ToItem.
func RecordOf(item Item) Record {
	r := Record{
		ID:        item.ItemID(),
		Name:      item.ItemName(),
		Type:      string(item.ItemType()),
		Size:      item.ItemSize(),
		CreatedAt: item.ItemCreatedAt(),
	}
	if f, ok := item.(File); ok {
		r.FileType = f.FileType
		r.StoragePath = f.StoragePath
	}
	return r
}

// ItemsFromRecords converts a listing. One bad record fails the whole listing.
func ItemsFromRecords(records []Record) ([]Item, error) {
	items := make([]Item, 0, len(records))
	for _, r := range records {
		item, err := r.ToItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
