package drivetest

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"drivedash/models"
	"drivedash/utils"

	"github.com/gin-gonic/gin"
)

func optionalID(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *Server) listContents(c *gin.Context) {
	folderID := optionalID(c.Query("folderId"))
	sortBy := c.DefaultQuery("sortBy", "name")
	sortOrder := c.DefaultQuery("sortOrder", "asc")

	s.mu.Lock()
	defer s.mu.Unlock()

	if folderID != nil {
		e, ok := s.store.live(*folderID)
		if !ok || e.Type != string(models.ItemTypeFolder) {
			utils.NotFoundResponse(c, "Folder not found")
			return
		}
	}
	s.respondList(c, s.store.children(folderID, sortBy, sortOrder))
}

func (s *Server) search(c *gin.Context) {
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	if q == "" {
		utils.BadRequestResponse(c, "Search query is required", "Search query is required")
		return
	}
	userID := c.GetString("userId")

	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []*entry
	for _, e := range s.store.items {
		if e.trashed || !strings.Contains(strings.ToLower(e.Name), q) {
			continue
		}
		if ok, _ := s.store.HasItemPermission(userID, e.ID, models.RoleViewer); ok {
			matches = append(matches, e)
		}
	}
	sortEntries(matches, "name", "asc")
	s.respondList(c, matches)
}

func (s *Server) sharedWithMe(c *gin.Context) {
	userID := c.GetString("userId")

	s.mu.Lock()
	defer s.mu.Unlock()

	var shared []*entry
	for _, e := range s.store.items {
		if _, ok := e.grants[userID]; ok && !e.trashed {
			shared = append(shared, e)
		}
	}
	sortEntries(shared, "name", "asc")
	s.respondList(c, shared)
}

func (s *Server) createFolder(c *gin.Context) {
	var req models.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request", err.Error())
		return
	}
	if err := utils.ValidateItemName(req.Name); err != nil {
		utils.BadRequestResponse(c, "Invalid folder name", err.Error())
		return
	}
	userID := c.GetString("userId")

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.ParentFolderID != nil {
		parent, ok := s.store.live(*req.ParentFolderID)
		if !ok || parent.Type != string(models.ItemTypeFolder) {
			utils.NotFoundResponse(c, "Parent folder not found")
			return
		}
		if ok, _ := s.store.HasItemPermission(userID, parent.ID, models.RoleEditor); !ok {
			utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions", "Insufficient permissions")
			return
		}
	}
	if s.store.nameTaken(req.ParentFolderID, req.Name, string(models.ItemTypeFolder), "") {
		utils.ErrorResponse(c, http.StatusConflict, "Conflict", fmt.Sprintf("folder with name '%s' already exists", req.Name))
		return
	}

	e := s.store.add(models.Record{Name: req.Name, Type: string(models.ItemTypeFolder), CreatedAt: s.now()}, req.ParentFolderID, userID)
	utils.CreatedResponse(c, "Folder created", e.Record)
}

func (s *Server) rename(c *gin.Context) {
	itemType := models.ItemType(c.Param("type"))
	id := c.Param("id")

	var req models.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request", err.Error())
		return
	}
	if err := utils.ValidateItemName(req.Name); err != nil {
		utils.BadRequestResponse(c, "Invalid name", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.store.live(id)
	if !ok || e.Type != string(itemType) {
		utils.NotFoundResponse(c, fmt.Sprintf("%s not found", itemType))
		return
	}
	if s.store.nameTaken(e.parent, req.Name, e.Type, e.ID) {
		utils.ErrorResponse(c, http.StatusConflict, "Conflict", fmt.Sprintf("%s with name '%s' already exists", itemType, req.Name))
		return
	}
	e.Name = req.Name
	utils.SuccessResponse(c, "Renamed", e.Record)
}

func (s *Server) trash(c *gin.Context) {
	itemType := models.ItemType(c.Param("type"))
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.store.live(id)
	if !ok || e.Type != string(itemType) {
		utils.NotFoundResponse(c, fmt.Sprintf("%s not found", itemType))
		return
	}
	s.store.trash(id)
	utils.SuccessResponse(c, "Moved to trash", nil)
}

func (s *Server) share(c *gin.Context) {
	var req models.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request", err.Error())
		return
	}
	if err := utils.ValidateShareRequest(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := c.GetString("userId")

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.store.live(req.ItemID)
	if !ok || e.Type != req.ItemType {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if e.owner != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can share this item"})
		return
	}
	target, ok := s.store.users[strings.ToLower(req.Email)]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	e.grants[target.ID] = models.Role(req.Role)
	c.JSON(http.StatusOK, models.ShareResponse{Message: fmt.Sprintf("Shared %s with %s as %s", e.Name, req.Email, req.Role)})
}

func (s *Server) publicLink(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.store.live(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if e.Type == string(models.ItemTypeFolder) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Public links are not supported for folders"})
		return
	}
	c.JSON(http.StatusOK, models.PublicLinkResponse{PublicURL: s.URL + "/public/" + url.PathEscape(e.ID)})
}

func (s *Server) signedURL(c *gin.Context) {
	var req models.SignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.store.items {
		if !e.trashed && e.StoragePath == req.Path {
			c.JSON(http.StatusOK, models.SignedURLResponse{
				SignedURL: s.URL + "/storage/" + req.Path + "?expires=3600&sig=test",
			})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
}

func (s *Server) upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided", err.Error())
		return
	}
	folderID := optionalID(c.PostForm("folderId"))
	userID := c.GetString("userId")

	f, err := header.Open()
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to read upload", err.Error())
		return
	}
	size, err := io.Copy(io.Discard, f)
	f.Close()
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to read upload", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failUploads[header.Filename] {
		utils.InternalServerErrorResponse(c, "Upload failed", "storage unavailable")
		return
	}
	if folderID != nil {
		parent, ok := s.store.live(*folderID)
		if !ok || parent.Type != string(models.ItemTypeFolder) {
			utils.NotFoundResponse(c, "Folder not found")
			return
		}
	}

	rec := models.Record{
		Name:      header.Filename,
		Type:      string(models.ItemTypeFile),
		FileType:  header.Header.Get("Content-Type"),
		Size:      size,
		CreatedAt: s.now(),
	}
	e := s.store.add(rec, folderID, userID)
	e.StoragePath = "users/" + userID + "/" + e.ID + "/" + header.Filename
	utils.CreatedResponse(c, "File uploaded", e.Record)
}
