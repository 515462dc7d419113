package models

import (
	"io"
	"mime"
	"os"
	"path/filepath"
)

// UploadSource is one file picked or dropped for upload.
type UploadSource struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// UploadSourceFromPath builds a source backed by a local file.
func UploadSourceFromPath(path string) (UploadSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return UploadSource{}, err
	}
	name := filepath.Base(path)
	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return UploadSource{
		Name:        name,
		Size:        info.Size(),
		ContentType: ct,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}
