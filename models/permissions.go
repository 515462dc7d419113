package models

// Role is the permission level granted when sharing with another user.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
)

// Roles lists the roles the share dialog offers, default first.
var Roles = []Role{RoleViewer, RoleEditor}
