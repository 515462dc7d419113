// Package drivetest runs an in-process content service for tests. It speaks
// the same HTTP contract as the real service and records every call.
package drivetest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"drivedash/middleware"
	"drivedash/models"
	"drivedash/utils"

	"github.com/gin-gonic/gin"
)

// DefaultUser owns every item seeded without an explicit owner.
var DefaultUser = models.User{ID: "u1", Email: "owner@example.com", Name: "Owner"}

const jwtSecret = "drivetest-secret"

// Call is one request the server received.
type Call struct {
	Route string // "METHOD /full/path/:param"
	Query url.Values
	Body  []byte
}

type Server struct {
	*httptest.Server

	// RawArrays makes listing routes return bare JSON arrays instead of the
	// {"success","data"} envelope.
	RawArrays bool

	mu          sync.Mutex
	store       *store
	calls       []Call
	failRoutes  map[string]int
	failUploads map[string]bool
	now         func() time.Time // advances a minute per call; guarded by mu
}

type lockedChecker struct{ s *Server }

func (l lockedChecker) HasItemPermission(userID, itemID string, role models.Role) (bool, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return l.s.store.HasItemPermission(userID, itemID, role)
}

// New starts a server seeded with DefaultUser and closes it with t.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		store:       newStore(),
		failRoutes:  make(map[string]int),
		failUploads: make(map[string]bool),
	}
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		start = start.Add(time.Minute)
		return start
	}
	s.store.addUser(DefaultUser)
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.record())

	files := r.Group("/files")
	files.Use(middleware.AuthMiddleware(jwtSecret))
	{
		files.GET("/contents", s.listContents)
		files.GET("/search", s.search)
		files.GET("/shared-with-me", s.sharedWithMe)
		files.POST("/folders", s.createFolder)
		files.POST("/share", s.share)
		files.POST("/signed-url", s.signedURL)
		files.POST("/upload", s.upload)
		files.GET("/:id/public-link", s.publicLink)

		editor := middleware.PermissionMiddleware(lockedChecker{s}, models.RoleEditor)
		files.PATCH("/:type/:id", editor, s.rename)
		files.POST("/:type/:id/trash", editor, s.trash)
	}
	return r
}

// record logs the call and applies injected failures before any handler.
func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.Request.Method + " " + c.FullPath()
		var body []byte
		if c.ContentType() == gin.MIMEJSON {
			body, _ = c.GetRawData()
			c.Request.Body = newBody(body)
		}

		s.mu.Lock()
		s.calls = append(s.calls, Call{Route: route, Query: c.Request.URL.Query(), Body: body})
		status, fail := s.failRoutes[route]
		s.mu.Unlock()

		if fail {
			utils.ErrorResponse(c, status, "Injected failure", fmt.Sprintf("%s failed", route))
			c.Abort()
			return
		}
		c.Next()
	}
}

// Token mints a session token for user.
func (s *Server) Token(user models.User) string {
	s.mu.Lock()
	s.store.addUser(user)
	s.mu.Unlock()

	token, err := utils.GenerateJWTTokenWithSecret(user, "", jwtSecret, time.Hour)
	if err != nil {
		panic(err)
	}
	return token
}

// OwnerToken mints a token for DefaultUser.
func (s *Server) OwnerToken() string {
	return s.Token(DefaultUser)
}

// Fail makes every request to route answer with status until Recover.
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failRoutes[route] = status
}

func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failRoutes, route)
}

// FailUpload makes uploads of the named file fail with 500.
func (s *Server) FailUpload(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failUploads[name] = true
}

// Calls returns the recorded calls to route, or every call when route is "".
func (s *Server) Calls(route string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Call
	for _, c := range s.calls {
		if route == "" || c.Route == route {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) CallCount(route string) int {
	return len(s.Calls(route))
}

func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// AddFolder seeds a folder owned by DefaultUser. parent nil is the root.
func (s *Server) AddFolder(name string, parent *string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.add(models.Record{Name: name, Type: string(models.ItemTypeFolder), CreatedAt: s.now()}, parent, DefaultUser.ID).ID
}

// AddFile seeds a file owned by DefaultUser.
func (s *Server) AddFile(name, fileType string, size int64, parent *string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := models.Record{Name: name, Type: string(models.ItemTypeFile), FileType: fileType, Size: size, CreatedAt: s.now()}
	e := s.store.add(rec, parent, DefaultUser.ID)
	e.StoragePath = "users/" + DefaultUser.ID + "/" + e.ID + "/" + name
	return e.ID
}

// Grant shares an item with user directly in the store.
func (s *Server) Grant(itemID string, user models.User, role models.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.addUser(user)
	if e, ok := s.store.items[itemID]; ok {
		e.grants[user.ID] = role
	}
}

// Item returns the current state of an item.
func (s *Server) Item(id string) (models.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.store.items[id]
	if !ok {
		return models.Record{}, false
	}
	return e.Record, true
}

// Trashed reports whether an item has been moved to the trash.
func (s *Server) Trashed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.store.items[id]
	return ok && e.trashed
}

// Children lists the names of live items under parent.
func (s *Server) Children(parent *string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var names []string
	for _, e := range s.store.children(parent, "name", "asc") {
		names = append(names, e.Name)
	}
	return names
}

func (s *Server) respondList(c *gin.Context, entries []*entry) {
	records := make([]models.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, e.Record)
	}
	if s.RawArrays {
		c.JSON(http.StatusOK, records)
		return
	}
	utils.SuccessResponse(c, "OK", records)
}
