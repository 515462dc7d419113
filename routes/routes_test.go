package routes

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"drivedash/config"
	"drivedash/models"
	"drivedash/services/drivetest"
	"drivedash/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPreviewer struct {
	mu    sync.Mutex
	shown []models.Preview
}

func (p *recordingPreviewer) Show(preview models.Preview) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shown = append(p.shown, preview)
	return nil
}

type shell struct {
	t         *testing.T
	srv       *drivetest.Server
	c         *ServiceContainer
	out       *bytes.Buffer
	previewer *recordingPreviewer
}

func newShell(t *testing.T) *shell {
	t.Helper()
	srv := drivetest.New(t)
	cfg := &config.Config{
		APIBaseURL:     srv.URL,
		RequestTimeout: 5 * time.Second,
		Token:          srv.OwnerToken(),
		UploadStrategy: config.UploadAggregate,
	}
	out := &bytes.Buffer{}
	previewer := &recordingPreviewer{}
	c, err := NewServiceContainer(cfg, out, WithPreviewer(previewer), WithColor(false))
	require.NoError(t, err)
	return &shell{t: t, srv: srv, c: c, out: out, previewer: previewer}
}

// run executes one command line and returns what it printed.
func (s *shell) run(line string) (string, error) {
	s.t.Helper()
	s.out.Reset()
	err := Execute(context.Background(), s.c, strings.Fields(line))
	return s.out.String(), err
}

func (s *shell) mustRun(line string) string {
	s.t.Helper()
	out, err := s.run(line)
	require.NoError(s.t, err, "%s\n%s", line, out)
	return out
}

func TestNewServiceContainerValidatesConfig(t *testing.T) {
	_, err := NewServiceContainer(&config.Config{UploadStrategy: "sometimes"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestBrowseSession(t *testing.T) {
	s := newShell(t)
	reports := s.srv.AddFolder("Reports", nil)
	s.srv.AddFile("q1.pdf", "application/pdf", 2048, &reports)
	s.srv.AddFile("notes.txt", "text/plain", 10, nil)

	out := s.mustRun("ls")
	assert.Contains(t, out, "My Drive")
	assert.Contains(t, out, "Reports/")
	assert.Contains(t, out, "notes.txt")

	out = s.mustRun("cd Reports")
	assert.Contains(t, out, "My Drive / Reports")
	assert.Contains(t, out, "q1.pdf")

	out = s.mustRun("crumb")
	assert.Equal(t, "0  My Drive\n1  Reports\n", out)

	out = s.mustRun("cd ..")
	assert.Contains(t, out, "notes.txt")

	_, err := s.run("cd ..")
	assert.Error(t, err)

	_, err = s.run("cd notes.txt")
	assert.EqualError(t, err, `"notes.txt" is not a folder`)
}

func TestViewAndSort(t *testing.T) {
	s := newShell(t)
	s.srv.AddFile("a.txt", "text/plain", 1, nil)
	s.srv.AddFile("b.txt", "text/plain", 1, nil)
	s.mustRun("ls")

	out := s.mustRun("view list")
	assert.Contains(t, out, "NAME")

	out = s.mustRun("sort name-desc")
	assert.Less(t, strings.Index(out, "b.txt"), strings.Index(out, "a.txt"))
	last := s.srv.Calls("GET /files/contents")
	assert.Equal(t, "desc", last[len(last)-1].Query.Get("sortOrder"))

	_, err := s.run("sort size-asc")
	assert.Error(t, err)
	_, err = s.run("view tiles")
	assert.Error(t, err)
}

func TestMutations(t *testing.T) {
	s := newShell(t)
	s.mustRun("ls")

	out := s.mustRun("mkdir Projects 2026")
	assert.Contains(t, out, `Folder "Projects 2026" created.`)

	out = s.mustRun("mkdir")
	assert.Contains(t, out, "Untitled folder/")

	out = s.mustRun("rename 2 Archive")
	assert.Contains(t, out, "Archive/")

	s.srv.ResetCalls()
	s.mustRun("rename Archive Archive")
	assert.Zero(t, s.srv.CallCount("PATCH /files/:type/:id"))

	out = s.mustRun("rm Archive")
	assert.Contains(t, out, `Move "Archive" to trash?`)
	s.mustRun("cancel")
	_, err := s.run("confirm")
	assert.EqualError(t, err, "nothing to confirm")

	s.mustRun("rm Archive")
	out = s.mustRun("confirm")
	assert.Contains(t, out, `"Archive" moved to trash.`)
	assert.NotContains(t, out, "Archive/")

	out = s.mustRun("rm -y 1")
	assert.Contains(t, out, `"Projects 2026" moved to trash.`)
	assert.Contains(t, out, "This folder is empty.")
}

func TestUpload(t *testing.T) {
	s := newShell(t)
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"1.txt", "2.txt", "3.txt"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(name), 0o644))
		paths = append(paths, p)
	}
	s.srv.FailUpload("2.txt")

	out, err := s.run("upload " + strings.Join(paths, " "))
	require.Error(t, err)
	assert.True(t, Notified(err))
	assert.Contains(t, out, "Uploading 3 file(s)...")
	assert.Contains(t, out, "Upload failed.")

	out = s.mustRun("ls")
	assert.Contains(t, out, "1.txt")
	assert.Contains(t, out, "3.txt")
	assert.NotContains(t, out, "2.txt")

	_, err = s.run("upload " + filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
	assert.False(t, Notified(err))
}

func TestOpenAndShare(t *testing.T) {
	s := newShell(t)
	s.srv.Token(models.User{ID: "u2", Email: "friend@example.com"})
	s.srv.AddFolder("Team", nil)
	s.srv.AddFile("cat.png", "image/png", 100, nil)
	s.mustRun("ls")

	s.mustRun("open cat.png")
	require.Len(t, s.previewer.shown, 1)
	assert.Equal(t, "image/png", s.previewer.shown[0].MimeType)

	out := s.mustRun("link cat.png")
	assert.Contains(t, out, "http")

	s.srv.ResetCalls()
	out, err := s.run("link Team")
	var linkErr *utils.LinkError
	require.ErrorAs(t, err, &linkErr)
	assert.Contains(t, out, "Public links are not yet supported for folders.")
	assert.Zero(t, s.srv.CallCount(""))

	out = s.mustRun("share Team friend@example.com --role editor")
	assert.Contains(t, out, "Shared Team with friend@example.com as editor")
	assert.Nil(t, s.c.Dashboard.ShareDialog())

	_, err = s.run("share Team nobody")
	assert.True(t, Notified(err))
}

func TestMenu(t *testing.T) {
	s := newShell(t)
	s.srv.AddFile("a.txt", "text/plain", 1, nil)
	s.mustRun("ls")

	out := s.mustRun("menu a.txt")
	assert.Contains(t, out, "a.txt *")
	assert.Contains(t, out, "actions: share | rename | trash")

	out = s.mustRun("menu a.txt trash")
	assert.Contains(t, out, `Move "a.txt" to trash?`)
	assert.Equal(t, "a.txt", s.c.Dashboard.Snapshot().PendingTrash.ItemName())

	out = s.mustRun("menu 1 rename")
	assert.Contains(t, out, "[a.txt_]")

	_, err := s.run("menu 1 copy")
	assert.Error(t, err)
}

func TestSearchAndShared(t *testing.T) {
	s := newShell(t)
	docs := s.srv.AddFolder("Docs", nil)
	s.srv.AddFile("budget.xlsx", "application/vnd.ms-excel", 1, &docs)
	s.mustRun("ls")

	out := s.mustRun("search budget")
	assert.Contains(t, out, `Search results for "budget"`)
	assert.Contains(t, out, "budget.xlsx")

	out = s.mustRun("search")
	assert.Contains(t, out, "Docs/")

	out = s.mustRun("shared")
	assert.Contains(t, out, "Shared with me")
}

func TestSessionCommands(t *testing.T) {
	s := newShell(t)

	out := s.mustRun("whoami")
	assert.Equal(t, "Owner <owner@example.com>\n", out)

	out = s.mustRun("logout")
	assert.Contains(t, out, "Signed out.")

	out, err := s.run("ls")
	var authErr *utils.AuthRequiredError
	require.ErrorAs(t, err, &authErr)
	assert.True(t, Notified(err))
	assert.Contains(t, out, "Could not load files.")

	_, err = s.run("whoami")
	assert.ErrorIs(t, err, utils.ErrNotLoggedIn)

	out = s.mustRun("login " + s.srv.OwnerToken())
	assert.Contains(t, out, "Signed in.")
	assert.Contains(t, out, "My Drive")
}

func TestNotified(t *testing.T) {
	assert.True(t, Notified(utils.NewFetchError("list", errors.New("boom"))))
	assert.True(t, Notified(&utils.AuthRequiredError{Op: "rename"}))
	assert.False(t, Notified(errors.New("unknown command")))
}
