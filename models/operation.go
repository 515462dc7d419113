package models

// Operation names a user intent. Mutating operations go Idle -> InFlight ->
// Succeeded or Failed and are never persisted.
type Operation string

const (
	OpList         Operation = "list"
	OpSearch       Operation = "search"
	OpSharedWithMe Operation = "shared_with_me"
	OpCreateFolder Operation = "create_folder"
	OpRename       Operation = "rename"
	OpTrash        Operation = "trash"
	OpShare        Operation = "share"
	OpPublicLink   Operation = "public_link"
	OpOpenFile     Operation = "open_file"
	OpUploadBatch  Operation = "upload_batch"
)

// CreateFolderRequest is the body of POST /files/folders.
type CreateFolderRequest struct {
	Name           string  `json:"name"`
	ParentFolderID *string `json:"parentFolderId"`
}

// RenameRequest is the body of PATCH /files/{type}/{id}.
type RenameRequest struct {
	Name string `json:"name"`
}
