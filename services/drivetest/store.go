package drivetest

import (
	"bytes"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"

	"drivedash/models"
)

var errItemNotFound = errors.New("Item not found")

type entry struct {
	models.Record
	parent  *string
	owner   string
	trashed bool
	grants  map[string]models.Role
}

type store struct {
	items  map[string]*entry
	users  map[string]models.User // by email
	nextID int
}

func newStore() *store {
	return &store{
		items: make(map[string]*entry),
		users: make(map[string]models.User),
	}
}

func (st *store) addUser(u models.User) {
	st.users[strings.ToLower(u.Email)] = u
}

func (st *store) add(rec models.Record, parent *string, owner string) *entry {
	st.nextID++
	prefix := "file"
	if rec.Type == string(models.ItemTypeFolder) {
		prefix = "folder"
	}
	rec.ID = prefix + "-" + strconv.Itoa(st.nextID)
	var p *string
	if parent != nil {
		id := *parent
		p = &id
	}
	e := &entry{Record: rec, parent: p, owner: owner, grants: make(map[string]models.Role)}
	st.items[rec.ID] = e
	return e
}

func (st *store) live(id string) (*entry, bool) {
	e, ok := st.items[id]
	if !ok || e.trashed {
		return nil, false
	}
	return e, true
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (st *store) children(parent *string, sortBy, sortOrder string) []*entry {
	var out []*entry
	for _, e := range st.items {
		if !e.trashed && sameParent(e.parent, parent) {
			out = append(out, e)
		}
	}
	sortEntries(out, sortBy, sortOrder)
	return out
}

func sortEntries(entries []*entry, sortBy, sortOrder string) {
	less := func(i, j int) bool {
		if sortBy == "date" {
			if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
				return entries[i].CreatedAt.Before(entries[j].CreatedAt)
			}
			return entries[i].ID < entries[j].ID
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	}
	if sortOrder == "desc" {
		sort.SliceStable(entries, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.SliceStable(entries, less)
}

func (st *store) nameTaken(parent *string, name, itemType, exceptID string) bool {
	for _, e := range st.items {
		if !e.trashed && e.ID != exceptID && e.Type == itemType && sameParent(e.parent, parent) && e.Name == name {
			return true
		}
	}
	return false
}

// trash marks id and everything below it.
func (st *store) trash(id string) {
	e, ok := st.items[id]
	if !ok {
		return
	}
	e.trashed = true
	for _, child := range st.items {
		if child.parent != nil && *child.parent == id && !child.trashed {
			st.trash(child.ID)
		}
	}
}

// HasItemPermission implements middleware.PermissionChecker. Editors and
// owners satisfy any role; viewers satisfy only the viewer role. Grants on
// a folder extend to its contents.
func (st *store) HasItemPermission(userID, itemID string, role models.Role) (bool, error) {
	e, ok := st.live(itemID)
	if !ok {
		return false, errItemNotFound
	}
	for cur := e; cur != nil; {
		if cur.owner == userID {
			return true, nil
		}
		if granted, ok := cur.grants[userID]; ok {
			if granted == models.RoleEditor || granted == role {
				return true, nil
			}
		}
		if cur.parent == nil {
			break
		}
		cur = st.items[*cur.parent]
	}
	return false, nil
}

func newBody(data []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(data))
}
