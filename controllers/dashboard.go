package controllers

import (
	"context"
	"errors"
	"sync"

	"drivedash/jobs"
	"drivedash/metrics"
	"drivedash/models"
	"drivedash/services"
	"drivedash/state"
	"drivedash/utils"

	"go.uber.org/zap"
)

// ErrInFlight is returned when the same operation on the same item is
// already running.
var ErrInFlight = errors.New("operation already in progress")

// Notifier shows transient notices.
type Notifier interface {
	Post(n models.Notice)
	NewID() string
}

// Session is the signed-in user as far as the dashboard needs to know.
type Session interface {
	LoggedIn() bool
	CurrentUser() (models.User, error)
	SignOut() error
}

// ListingSource says where the displayed items came from.
type ListingSource string

const (
	SourceFolder ListingSource = "folder"
	SourceSearch ListingSource = "search"
	SourceShared ListingSource = "shared"
)

// NewFolderDialog is the state of the create-folder form.
type NewFolderDialog struct {
	Open  bool
	Draft string
}

const defaultFolderName = "Untitled folder"

// DashboardState is an immutable snapshot for rendering.
type DashboardState struct {
	Navigation   state.NavigationState
	Preferences  state.Preferences
	Items        []models.Item
	Source       ListingSource
	Loading      bool
	Uploading    bool
	NewFolder    NewFolderDialog
	PendingTrash models.Item
	ShareTarget  models.Item
}

// Dashboard coordinates navigation, the listing and every mutating
// operation against the content service. All state is owned here and only
// changes through its methods.
type Dashboard struct {
	gateway   services.Gateway
	uploader  jobs.BatchUploader
	session   Session
	notifier  Notifier
	previewer services.Previewer

	mu           sync.Mutex
	nav          *state.Navigator
	prefs        state.Preferences
	items        []models.Item
	source       ListingSource
	showShared   bool
	loading      bool
	uploading    int
	newFolder    NewFolderDialog
	pendingTrash models.Item
	share        *ShareDialog
	inFlight     map[string]bool

	// refreshSeq is bumped for every refresh issued; only the latest one
	// may replace items.
	refreshSeq uint64
}

func NewDashboard(gateway services.Gateway, uploader jobs.BatchUploader, session Session, notifier Notifier, previewer services.Previewer) *Dashboard {
	return &Dashboard{
		gateway:   gateway,
		uploader:  uploader,
		session:   session,
		notifier:  notifier,
		previewer: previewer,
		nav:       state.NewNavigator(),
		prefs:     state.DefaultPreferences(),
		source:    SourceFolder,
		inFlight:  make(map[string]bool),
	}
}

// Snapshot returns a copy of the current state.
func (d *Dashboard) Snapshot() DashboardState {
	d.mu.Lock()
	defer d.mu.Unlock()

	items := make([]models.Item, len(d.items))
	copy(items, d.items)

	var shareTarget models.Item
	if d.share != nil {
		shareTarget = d.share.Item()
	}

	return DashboardState{
		Navigation:   d.nav.Snapshot(),
		Preferences:  d.prefs,
		Items:        items,
		Source:       d.source,
		Loading:      d.loading,
		Uploading:    d.uploading > 0,
		NewFolder:    d.newFolder,
		PendingTrash: d.pendingTrash,
		ShareTarget:  shareTarget,
	}
}

// Refresh re-fetches the current scope: the search results, the shared
// list or the current folder. A refresh that completes after a newer one
// was issued is discarded.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.mu.Lock()
	query := d.nav.Query(d.prefs)
	shared := d.showShared && !query.IsSearch()
	d.refreshSeq++
	seq := d.refreshSeq
	d.loading = true
	d.mu.Unlock()

	var (
		items  []models.Item
		err    error
		op     models.Operation
		source ListingSource
	)
	switch {
	case query.IsSearch():
		op, source = models.OpSearch, SourceSearch
		items, err = d.gateway.Search(ctx, query.SearchTerm)
	case shared:
		op, source = models.OpSharedWithMe, SourceShared
		items, err = d.gateway.SharedWithMe(ctx)
	default:
		op, source = models.OpList, SourceFolder
		items, err = d.gateway.ListContents(ctx, query.FolderID, query.Sort.Field(), query.Sort.Direction())
	}

	d.mu.Lock()
	if seq != d.refreshSeq {
		d.mu.Unlock()
		metrics.RecordStaleRefresh()
		utils.LogDebug("discarding stale refresh", zap.String("scope", query.Scope()), zap.Uint64("seq", seq))
		return nil
	}
	d.loading = false
	d.source = source
	if err != nil {
		d.items = nil
		d.mu.Unlock()
		err = utils.Classify(string(op), err, utils.NewFetchError)
		d.finish(op, err)
		d.notifyError("Could not load files.")
		return err
	}
	d.items = items
	d.mu.Unlock()

	d.finish(op, nil)
	return nil
}

// refreshAfter re-fetches after a mutation. A failed refresh has already
// been reported and does not fail the mutation.
func (d *Dashboard) refreshAfter(ctx context.Context) {
	_ = d.Refresh(ctx)
}

// finish records the outcome of op.
func (d *Dashboard) finish(op models.Operation, err error) {
	recordOperation(op, err)
}

func recordOperation(op models.Operation, err error) {
	metrics.RecordOperation(string(op), err)
	if err != nil {
		utils.LogError("operation failed", err, zap.String("operation", string(op)))
	}
}

// begin marks op on key as running. It fails if it already is.
func (d *Dashboard) begin(op models.Operation, key string) (func(), error) {
	k := string(op) + ":" + key
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inFlight[k] {
		return nil, ErrInFlight
	}
	d.inFlight[k] = true
	return func() {
		d.mu.Lock()
		delete(d.inFlight, k)
		d.mu.Unlock()
	}, nil
}

func (d *Dashboard) notify(level models.NoticeLevel, message string) {
	d.notifier.Post(models.Notice{Level: level, Message: message})
}

func (d *Dashboard) notifySuccess(message string) { d.notify(models.NoticeSuccess, message) }
func (d *Dashboard) notifyError(message string)   { d.notify(models.NoticeError, message) }

// failureNotice is the text shown for a failed mutation.
func failureNotice(err error) string {
	var authErr *utils.AuthRequiredError
	if errors.As(err, &authErr) {
		return "You need to be logged in."
	}
	return "Error: " + utils.UserMessage(err)
}

// itemType dispatches over the closed Item variant.
func itemType(item models.Item) models.ItemType {
	switch item.(type) {
	case models.Folder:
		return models.ItemTypeFolder
	case models.File:
		return models.ItemTypeFile
	default:
		return item.ItemType()
	}
}
