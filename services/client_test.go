package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"drivedash/models"
	"drivedash/services/drivetest"
	"drivedash/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T) (*Client, *drivetest.Server) {
	t.Helper()
	srv := drivetest.New(t)
	client := NewClient(ClientConfig{BaseURL: srv.URL, Tokens: staticToken(srv.OwnerToken())})
	return client, srv
}

func memSource(name, body string) models.UploadSource {
	return models.UploadSource{
		Name:        name,
		Size:        int64(len(body)),
		ContentType: "text/plain",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func TestListContentsPassesScopeAndSort(t *testing.T) {
	client, srv := newTestClient(t)
	reports := srv.AddFolder("Reports", nil)
	srv.AddFile("b.txt", "text/plain", 1, &reports)
	srv.AddFile("a.txt", "text/plain", 1, &reports)

	items, err := client.ListContents(context.Background(), &reports, "name", "asc")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a.txt", items[0].ItemName())
	assert.Equal(t, "b.txt", items[1].ItemName())

	calls := srv.Calls("GET /files/contents")
	require.Len(t, calls, 1)
	assert.Equal(t, reports, calls[0].Query.Get("folderId"))
	assert.Equal(t, "name", calls[0].Query.Get("sortBy"))
	assert.Equal(t, "asc", calls[0].Query.Get("sortOrder"))
}

func TestListContentsRootOmitsFolderID(t *testing.T) {
	client, srv := newTestClient(t)
	srv.AddFolder("Reports", nil)

	items, err := client.ListContents(context.Background(), nil, "date", "desc")
	require.NoError(t, err)
	require.Len(t, items, 1)
	_, isFolder := items[0].(models.Folder)
	assert.True(t, isFolder)

	calls := srv.Calls("GET /files/contents")
	require.Len(t, calls, 1)
	assert.False(t, calls[0].Query.Has("folderId"))
}

func TestListAcceptsBareArrays(t *testing.T) {
	client, srv := newTestClient(t)
	srv.RawArrays = true
	srv.AddFile("notes.md", "text/markdown", 12, nil)

	items, err := client.ListContents(context.Background(), nil, "name", "asc")
	require.NoError(t, err)
	require.Len(t, items, 1)
	file, ok := items[0].(models.File)
	require.True(t, ok)
	assert.Equal(t, "text/markdown", file.FileType)
	assert.NotEmpty(t, file.StoragePath)
}

func TestUnknownItemTypeIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":"x","name":"odd","type":"symlink"}]`)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, Tokens: staticToken("t")})
	_, err := client.ListContents(context.Background(), nil, "name", "asc")
	assert.ErrorContains(t, err, "unknown type")
}

func TestStatusErrorCarriesServerMessage(t *testing.T) {
	client, srv := newTestClient(t)
	srv.Fail("GET /files/contents", http.StatusServiceUnavailable)

	_, err := client.ListContents(context.Background(), nil, "name", "asc")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, "GET /files/contents failed", statusErr.UserMessage())
}

func TestNoSessionShortCircuits(t *testing.T) {
	srv := drivetest.New(t)
	client := NewClient(ClientConfig{BaseURL: srv.URL, Tokens: staticToken("")})

	_, err := client.ListContents(context.Background(), nil, "name", "asc")
	assert.True(t, errors.Is(err, utils.ErrNotLoggedIn))

	_, err = client.Upload(context.Background(), memSource("a.txt", "a"), nil)
	assert.True(t, errors.Is(err, utils.ErrNotLoggedIn))

	assert.Zero(t, srv.CallCount(""))
}

func TestCreateRenameTrash(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	item, err := client.CreateFolder(ctx, "Reports", nil)
	require.NoError(t, err)
	folder, ok := item.(models.Folder)
	require.True(t, ok)
	assert.Equal(t, "Reports", folder.Name)

	_, err = client.CreateFolder(ctx, "Reports", nil)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusConflict, statusErr.StatusCode)

	require.NoError(t, client.Rename(ctx, models.ItemTypeFolder, folder.ID, "Q3 Reports"))
	rec, _ := srv.Item(folder.ID)
	assert.Equal(t, "Q3 Reports", rec.Name)

	err = client.Rename(ctx, models.ItemTypeFile, folder.ID, "wrong type")
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)

	require.NoError(t, client.Trash(ctx, models.ItemTypeFolder, folder.ID))
	assert.True(t, srv.Trashed(folder.ID))
}

func TestSearchAndSharedWithMe(t *testing.T) {
	client, srv := newTestClient(t)
	srv.AddFolder("Budget 2024", nil)
	srv.AddFile("budget.xlsx", "application/vnd.ms-excel", 10, nil)
	srv.AddFile("photo.jpg", "image/jpeg", 10, nil)

	items, err := client.Search(context.Background(), "budget")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "q=budget", srv.Calls("GET /files/search")[0].Query.Encode())

	guest := models.User{ID: "u2", Email: "guest@example.com"}
	shared := srv.AddFolder("Team", nil)
	srv.Grant(shared, guest, models.RoleViewer)

	guestClient := NewClient(ClientConfig{BaseURL: srv.URL, Tokens: staticToken(srv.Token(guest))})
	items, err = guestClient.SharedWithMe(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Team", items[0].ItemName())

	err = guestClient.Rename(context.Background(), models.ItemTypeFolder, shared, "Mine")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}

func TestShareAndLinks(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()
	srv.Token(models.User{ID: "u2", Email: "friend@example.com"})
	fileID := srv.AddFile("report.pdf", "application/pdf", 100, nil)
	folderID := srv.AddFolder("Docs", nil)

	msg, err := client.Share(ctx, models.ShareRequest{ItemID: fileID, ItemType: "file", Email: "friend@example.com", Role: "viewer"})
	require.NoError(t, err)
	assert.Contains(t, msg, "friend@example.com")

	_, err = client.Share(ctx, models.ShareRequest{ItemID: fileID, ItemType: "file", Email: "nobody@example.com", Role: "viewer"})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "User not found", statusErr.UserMessage())

	link, err := client.PublicLink(ctx, fileID)
	require.NoError(t, err)
	assert.Contains(t, link, "/public/"+fileID)

	_, err = client.PublicLink(ctx, folderID)
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)

	rec, _ := srv.Item(fileID)
	signed, err := client.SignedURL(ctx, rec.StoragePath)
	require.NoError(t, err)
	assert.Contains(t, signed, "sig=")

	_, err = client.SignedURL(ctx, "users/missing")
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestUpload(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()
	folderID := srv.AddFolder("Inbox", nil)

	item, err := client.Upload(ctx, memSource("hello.txt", "hello world"), &folderID)
	require.NoError(t, err)
	file, ok := item.(models.File)
	require.True(t, ok)
	assert.Equal(t, int64(11), file.Size)
	assert.Equal(t, "text/plain", file.FileType)
	assert.Equal(t, []string{"hello.txt"}, srv.Children(&folderID))

	_, err = client.Upload(ctx, memSource("root.txt", "x"), nil)
	require.NoError(t, err)
	assert.Contains(t, srv.Children(nil), "root.txt")

	srv.FailUpload("bad.txt")
	_, err = client.Upload(ctx, memSource("bad.txt", "x"), nil)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}
