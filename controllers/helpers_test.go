package controllers

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"drivedash/config"
	"drivedash/jobs"
	"drivedash/models"
	"drivedash/services"
	"drivedash/services/drivetest"
)

type fakePreviewer struct {
	mu    sync.Mutex
	shown []models.Preview
}

func (f *fakePreviewer) Show(p models.Preview) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shown = append(f.shown, p)
	return nil
}

type harness struct {
	dash      *Dashboard
	srv       *drivetest.Server
	notices   *services.NotificationService
	previewer *fakePreviewer
	auth      *services.AuthService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := drivetest.New(t)
	auth := services.NewAuthService(srv.OwnerToken(), "")
	return newHarnessWithAuth(t, srv, auth)
}

func newHarnessWithAuth(t *testing.T, srv *drivetest.Server, auth *services.AuthService) *harness {
	t.Helper()
	client := services.NewClient(services.ClientConfig{BaseURL: srv.URL, Tokens: auth})
	notices := services.NewNotificationService(nil)
	previewer := &fakePreviewer{}
	uploader := jobs.NewBatchUploader(config.UploadAggregate, client, 0)
	return &harness{
		dash:      NewDashboard(client, uploader, auth, notices, previewer),
		srv:       srv,
		notices:   notices,
		previewer: previewer,
		auth:      auth,
	}
}

func (h *harness) lastNotice(t *testing.T) models.Notice {
	t.Helper()
	n, ok := h.notices.Last()
	if !ok {
		t.Fatal("no notice posted")
	}
	return n
}

func (h *harness) noticesAt(level models.NoticeLevel) []models.Notice {
	var out []models.Notice
	for _, n := range h.notices.Notices() {
		if n.Level == level {
			out = append(out, n)
		}
	}
	return out
}

func names(items []models.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ItemName()
	}
	return out
}

func find(t *testing.T, items []models.Item, name string) models.Item {
	t.Helper()
	for _, it := range items {
		if it.ItemName() == name {
			return it
		}
	}
	t.Fatalf("item %q not in listing %v", name, names(items))
	return nil
}

func textFile(name, body string) models.UploadSource {
	return models.UploadSource{
		Name:        name,
		Size:        int64(len(body)),
		ContentType: "text/plain",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

// stubGateway is a Gateway whose listing calls can be held open.
type stubGateway struct {
	services.Gateway

	mu      sync.Mutex
	lists   map[string][]models.Item
	gates   map[string]chan struct{}
	started chan string
	renames int
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		lists:   make(map[string][]models.Item),
		gates:   make(map[string]chan struct{}),
		started: make(chan string, 16),
	}
}

func scopeKey(folderID *string) string {
	if folderID == nil {
		return "root"
	}
	return *folderID
}

func (g *stubGateway) ListContents(ctx context.Context, folderID *string, sortBy, sortOrder string) ([]models.Item, error) {
	key := scopeKey(folderID)
	g.started <- key

	g.mu.Lock()
	gate := g.gates[key]
	g.mu.Unlock()
	if gate != nil {
		<-gate
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lists[key], nil
}

func (g *stubGateway) Rename(ctx context.Context, itemType models.ItemType, id, name string) error {
	g.mu.Lock()
	g.renames++
	g.mu.Unlock()
	return nil
}

type stubSession struct{ loggedIn bool }

func (s stubSession) LoggedIn() bool                    { return s.loggedIn }
func (s stubSession) CurrentUser() (models.User, error) { return models.User{}, nil }
func (s stubSession) SignOut() error                    { return nil }
