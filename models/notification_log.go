package models

type NoticeLevel string

const (
	NoticeLoading NoticeLevel = "loading"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient user-visible message. A notice with the same ID as
// an earlier one replaces it (progress -> result).
type Notice struct {
	ID      string
	Level   NoticeLevel
	Message string
}
