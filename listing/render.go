package listing

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"drivedash/controllers"
	"drivedash/models"
	"drivedash/state"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

const (
	gridColumns = 4
	gridWidth   = 22
	emptyHint   = "This folder is empty. Drop files here with `upload <path>...` to add them."
)

// Renderer writes the dashboard snapshot as a grid or a list.
type Renderer struct {
	folder *color.Color
	muted  *color.Color
	active *color.Color
	now    func() time.Time
}

func NewRenderer(colorize bool) *Renderer {
	r := &Renderer{
		folder: color.New(color.FgBlue, color.Bold),
		muted:  color.New(color.Faint),
		active: color.New(color.FgYellow),
		now:    time.Now,
	}
	for _, c := range []*color.Color{r.folder, r.muted, r.active} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Render writes the header, the items in the preferred view mode and any
// open overlay.
func (r *Renderer) Render(w io.Writer, st controllers.DashboardState, ov Overlay, draft string) error {
	if _, err := fmt.Fprintln(w, header(st)); err != nil {
		return err
	}
	if st.Loading {
		_, err := fmt.Fprintln(w, r.muted.Sprint("Loading..."))
		return err
	}
	if len(st.Items) == 0 {
		_, err := fmt.Fprintln(w, r.muted.Sprint(emptyMessage(st)))
		return err
	}

	var err error
	if st.Preferences.ViewMode == state.ViewList {
		err = r.list(w, st.Items, ov, draft)
	} else {
		err = r.grid(w, st.Items, ov, draft)
	}
	if err != nil {
		return err
	}
	if ov.Kind == OverlayMenu {
		_, err = fmt.Fprintf(w, "%s %s\n", r.active.Sprint("actions:"), joinActions())
	}
	return err
}

func header(st controllers.DashboardState) string {
	switch {
	case st.Navigation.Mode == state.Searching:
		return fmt.Sprintf("Search results for %q", st.Navigation.SearchTerm)
	case st.Source == controllers.SourceShared:
		return "Shared with me"
	}
	names := make([]string, len(st.Navigation.Breadcrumbs))
	for i, b := range st.Navigation.Breadcrumbs {
		names[i] = b.Name
	}
	return strings.Join(names, " / ")
}

func emptyMessage(st controllers.DashboardState) string {
	switch {
	case st.Navigation.Mode == state.Searching:
		return "No items match your search."
	case st.Source == controllers.SourceShared:
		return "Nothing has been shared with you yet."
	}
	return emptyHint
}

func joinActions() string {
	parts := make([]string, len(Actions))
	for i, a := range Actions {
		parts[i] = string(a)
	}
	return strings.Join(parts, " | ")
}

// label is the plain display name of item, with the inline editor or the
// menu marker when an overlay is open on it.
func label(item models.Item, ov Overlay, draft string) string {
	if ov == (Overlay{Kind: OverlayRename, ItemID: item.ItemID()}) {
		return "[" + draft + "_]"
	}
	name := item.ItemName()
	if item.ItemType() == models.ItemTypeFolder {
		name += "/"
	}
	if ov == (Overlay{Kind: OverlayMenu, ItemID: item.ItemID()}) {
		name += " *"
	}
	return name
}

func (r *Renderer) paint(item models.Item, ov Overlay, text string) string {
	switch {
	case ov.ItemID == item.ItemID() && ov.Kind != OverlayNone:
		return r.active.Sprint(text)
	case item.ItemType() == models.ItemTypeFolder:
		return r.folder.Sprint(text)
	}
	return text
}

func (r *Renderer) grid(w io.Writer, items []models.Item, ov Overlay, draft string) error {
	var line strings.Builder
	for i, item := range items {
		text := label(item, ov, draft)
		line.WriteString(fmt.Sprintf("%2d %s %s", i+1, icon(item), r.paint(item, ov, text)))
		last := (i+1)%gridColumns == 0 || i == len(items)-1
		if !last {
			if pad := gridWidth - len(text); pad > 0 {
				line.WriteString(strings.Repeat(" ", pad))
			} else {
				line.WriteString("  ")
			}
			continue
		}
		if _, err := fmt.Fprintln(w, line.String()); err != nil {
			return err
		}
		line.Reset()
	}
	return nil
}

func (r *Renderer) list(w io.Writer, items []models.Item, ov Overlay, draft string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tSIZE\tCREATED\tTYPE")
	now := r.now()
	for i, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			label(item, ov, draft),
			size(item),
			humanize.RelTime(item.ItemCreatedAt(), now, "ago", "from now"),
			kind(item),
		)
	}
	return tw.Flush()
}

func icon(item models.Item) string {
	if item.ItemType() == models.ItemTypeFolder {
		return "[D]"
	}
	return "[F]"
}

func size(item models.Item) string {
	if item.ItemType() == models.ItemTypeFolder {
		return "-"
	}
	return humanize.Bytes(uint64(item.ItemSize()))
}

func kind(item models.Item) string {
	switch it := item.(type) {
	case models.Folder:
		return "folder"
	case models.File:
		if it.FileType != "" {
			return it.FileType
		}
		return "file"
	default:
		return string(item.ItemType())
	}
}
