package state

import "fmt"

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewGrid, ViewList:
		return ViewMode(s), nil
	}
	return "", fmt.Errorf("unknown view mode %q (grid, list)", s)
}

// SortOption is a (field, direction) pair in its dashed form.
type SortOption string

const (
	SortNameAsc  SortOption = "name-asc"
	SortNameDesc SortOption = "name-desc"
	SortDateDesc SortOption = "date-desc"
	SortDateAsc  SortOption = "date-asc"
)

// SortOptions lists the options in menu order.
var SortOptions = []SortOption{SortNameAsc, SortNameDesc, SortDateDesc, SortDateAsc}

func ParseSortOption(s string) (SortOption, error) {
	for _, opt := range SortOptions {
		if string(opt) == s {
			return opt, nil
		}
	}
	return "", fmt.Errorf("unknown sort option %q (name-asc, name-desc, date-desc, date-asc)", s)
}

// Field is the sortBy value sent to the content service.
func (o SortOption) Field() string {
	switch o {
	case SortDateAsc, SortDateDesc:
		return "date"
	default:
		return "name"
	}
}

// Direction is the sortOrder value sent to the content service.
func (o SortOption) Direction() string {
	switch o {
	case SortNameDesc, SortDateDesc:
		return "desc"
	default:
		return "asc"
	}
}

// Preferences holds the view mode and sort option. They survive folder
// changes but not the session.
type Preferences struct {
	ViewMode ViewMode
	Sort     SortOption
}

func DefaultPreferences() Preferences {
	return Preferences{ViewMode: ViewGrid, Sort: SortNameAsc}
}
