package controllers

import (
	"context"
	"fmt"

	"drivedash/models"
	"drivedash/state"
	"drivedash/utils"
)

// EnterFolder descends into folder, leaving search or the shared list.
func (d *Dashboard) EnterFolder(ctx context.Context, item models.Item) error {
	d.mu.Lock()
	err := d.nav.EnterFolder(item)
	if err == nil {
		d.showShared = false
	}
	d.mu.Unlock()
	if err != nil {
		return err
	}
	return d.Refresh(ctx)
}

// OpenFolderAt shows folder directly under the root. Folders opened from
// the shared list have no known path.
func (d *Dashboard) OpenFolderAt(ctx context.Context, folder models.Folder) error {
	d.mu.Lock()
	d.nav.OpenAt(folder)
	d.showShared = false
	d.mu.Unlock()
	return d.Refresh(ctx)
}

// ClickBreadcrumb returns to the folder at index; 0 is the root.
func (d *Dashboard) ClickBreadcrumb(ctx context.Context, index int) error {
	d.mu.Lock()
	err := d.nav.ClickBreadcrumb(index)
	if err == nil {
		d.showShared = false
	}
	d.mu.Unlock()
	if err != nil {
		return err
	}
	return d.Refresh(ctx)
}

// SetSearchTerm switches to search results for a non-empty term and back
// to the suspended folder for an empty one.
func (d *Dashboard) SetSearchTerm(ctx context.Context, term string) error {
	d.mu.Lock()
	d.nav.SetSearchTerm(term)
	d.showShared = false
	d.mu.Unlock()
	return d.Refresh(ctx)
}

// SetSort stores the sort option. The listing is only re-fetched while
// browsing a folder; search results ignore the sort.
func (d *Dashboard) SetSort(ctx context.Context, opt state.SortOption) error {
	d.mu.Lock()
	d.prefs.Sort = opt
	browsing := d.nav.Mode() == state.Browsing && !d.showShared
	d.mu.Unlock()
	if !browsing {
		return nil
	}
	return d.Refresh(ctx)
}

func (d *Dashboard) SetViewMode(mode state.ViewMode) {
	d.mu.Lock()
	d.prefs.ViewMode = mode
	d.mu.Unlock()
}

// OpenNewFolderDialog shows the create-folder form with a default name.
func (d *Dashboard) OpenNewFolderDialog() {
	d.mu.Lock()
	d.newFolder = NewFolderDialog{Open: true, Draft: defaultFolderName}
	d.mu.Unlock()
}

func (d *Dashboard) SetNewFolderName(name string) {
	d.mu.Lock()
	d.newFolder.Draft = name
	d.mu.Unlock()
}

func (d *Dashboard) CloseNewFolderDialog() {
	d.mu.Lock()
	d.newFolder = NewFolderDialog{}
	d.mu.Unlock()
}

// CreateFolder creates name in the current folder. A blank name is
// rejected without a network call. On failure the dialog stays as it was.
func (d *Dashboard) CreateFolder(ctx context.Context, name string) (models.Item, error) {
	const op = models.OpCreateFolder
	if utils.IsBlank(name) {
		err := utils.NewMutationError(string(op), utils.ErrEmptyName)
		d.finish(op, err)
		d.notifyError("Folder name cannot be empty.")
		return nil, err
	}

	d.mu.Lock()
	parent := d.nav.CurrentFolderID()
	d.mu.Unlock()

	parentKey := "root"
	if parent != nil {
		parentKey = *parent
	}
	done, err := d.begin(op, parentKey+"/"+name)
	if err != nil {
		return nil, err
	}
	defer done()

	item, err := d.gateway.CreateFolder(ctx, name, parent)
	if err != nil {
		err = utils.Classify(string(op), err, utils.NewMutationError)
		d.finish(op, err)
		d.notifyError(failureNotice(err))
		return nil, err
	}

	d.CloseNewFolderDialog()
	d.finish(op, nil)
	d.notifySuccess(fmt.Sprintf("Folder %q created.", name))
	d.refreshAfter(ctx)
	return item, nil
}
