package models

// ShareRequest is the body of POST /files/share.
type ShareRequest struct {
	ItemID   string `json:"itemId" validate:"required"`
	ItemType string `json:"itemType" validate:"required,oneof=file folder"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=viewer editor"`
}

// ShareResponse carries the server's confirmation message.
type ShareResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type PublicLinkResponse struct {
	PublicURL string `json:"publicUrl"`
	Error     string `json:"error,omitempty"`
}

type SignedURLRequest struct {
	Path string `json:"path"`
}

type SignedURLResponse struct {
	SignedURL string `json:"signedUrl"`
	Error     string `json:"error,omitempty"`
}
