package listing

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"drivedash/controllers"
	"drivedash/models"
	"drivedash/utils"
)

// Coordinator is the part of the dashboard the listing reports intents to.
type Coordinator interface {
	Snapshot() controllers.DashboardState
	Activate(ctx context.Context, item models.Item) error
	RenameItem(ctx context.Context, item models.Item, newName string) error
	RequestTrash(item models.Item)
	ShareItem(item models.Item) *controllers.ShareDialog
}

type OverlayKind int

const (
	OverlayNone OverlayKind = iota
	OverlayMenu
	OverlayRename
)

func (k OverlayKind) String() string {
	switch k {
	case OverlayMenu:
		return "menu"
	case OverlayRename:
		return "rename"
	default:
		return "none"
	}
}

// Overlay is the single context menu or inline rename editor open on the
// listing. Opening one closes the other.
type Overlay struct {
	Kind   OverlayKind
	ItemID string
}

// Action is an entry of the context menu.
type Action string

const (
	ActionShare  Action = "share"
	ActionRename Action = "rename"
	ActionTrash  Action = "trash"
)

var Actions = []Action{ActionShare, ActionRename, ActionTrash}

func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == strings.ToLower(s) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action %q (want share, rename or trash)", s)
}

// Adapter maps user intents on the rendered listing to coordinator calls.
type Adapter struct {
	coord Coordinator

	mu      sync.Mutex
	overlay Overlay
	editing models.Item
	draft   string
}

func NewAdapter(coord Coordinator) *Adapter {
	return &Adapter{coord: coord}
}

func (a *Adapter) Overlay() Overlay {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.overlay
}

// Draft returns the text of the inline rename editor.
func (a *Adapter) Draft() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.draft
}

func (a *Adapter) setOverlay(o Overlay, editing models.Item, draft string) {
	a.overlay, a.editing, a.draft = o, editing, draft
}

// ToggleMenu opens the context menu of item, or closes it when it is
// already open.
func (a *Adapter) ToggleMenu(item models.Item) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.overlay == (Overlay{Kind: OverlayMenu, ItemID: item.ItemID()}) {
		a.setOverlay(Overlay{}, nil, "")
		return
	}
	a.setOverlay(Overlay{Kind: OverlayMenu, ItemID: item.ItemID()}, nil, "")
}

func (a *Adapter) CloseOverlay() {
	a.mu.Lock()
	a.setOverlay(Overlay{}, nil, "")
	a.mu.Unlock()
}

// Choose runs a context menu action on item. The menu is closed first.
func (a *Adapter) Choose(item models.Item, action Action) (*controllers.ShareDialog, error) {
	a.CloseOverlay()
	switch action {
	case ActionShare:
		return a.coord.ShareItem(item), nil
	case ActionRename:
		a.BeginRename(item)
		return nil, nil
	case ActionTrash:
		a.coord.RequestTrash(item)
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown action %q", action)
	}
}

// BeginRename switches item into the inline editor, prefilled with its name.
func (a *Adapter) BeginRename(item models.Item) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.setOverlay(Overlay{Kind: OverlayRename, ItemID: item.ItemID()}, item, item.ItemName())
}

func (a *Adapter) SetDraft(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.overlay.Kind == OverlayRename {
		a.draft = name
	}
}

// CommitRename submits the inline editor. Submit and blur both land here;
// the editor is cleared before the rename is sent so a second commit for
// the same edit does nothing.
func (a *Adapter) CommitRename(ctx context.Context) error {
	a.mu.Lock()
	if a.overlay.Kind != OverlayRename {
		a.mu.Unlock()
		return nil
	}
	item, draft := a.editing, a.draft
	a.setOverlay(Overlay{}, nil, "")
	a.mu.Unlock()

	return a.coord.RenameItem(ctx, item, draft)
}

// CancelRename closes the inline editor without renaming.
func (a *Adapter) CancelRename() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.overlay.Kind == OverlayRename {
		a.setOverlay(Overlay{}, nil, "")
	}
}

// Activate is a click on item. Clicks on the row being edited are ignored.
func (a *Adapter) Activate(ctx context.Context, item models.Item) error {
	a.mu.Lock()
	if a.overlay == (Overlay{Kind: OverlayRename, ItemID: item.ItemID()}) {
		a.mu.Unlock()
		return nil
	}
	a.setOverlay(Overlay{}, nil, "")
	a.mu.Unlock()

	return a.coord.Activate(ctx, item)
}

// Lookup resolves ref against the current listing: a 1-based position as
// printed by Render, or an exact item name.
func (a *Adapter) Lookup(ref string) (models.Item, error) {
	return Lookup(a.coord.Snapshot().Items, ref)
}

func Lookup(items []models.Item, ref string) (models.Item, error) {
	if utils.IsBlank(ref) {
		return nil, fmt.Errorf("no item given")
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(items) {
			return nil, fmt.Errorf("no item #%d in a listing of %d", n, len(items))
		}
		return items[n-1], nil
	}
	for _, item := range items {
		if item.ItemName() == ref {
			return item, nil
		}
	}
	return nil, fmt.Errorf("no item named %q", ref)
}
