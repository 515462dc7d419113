package services

import (
	"fmt"
	"io"

	"drivedash/models"

	"github.com/pkg/browser"
)

// Previewer presents an opened file.
type Previewer interface {
	Show(p models.Preview) error
}

// BrowserPreviewer opens the signed URL in the system browser.
type BrowserPreviewer struct {
	out  io.Writer
	open func(url string) error
}

func NewBrowserPreviewer(out io.Writer) *BrowserPreviewer {
	return &BrowserPreviewer{out: out, open: browser.OpenURL}
}

// Show never fails when a browser is missing: the link is printed instead.
func (p *BrowserPreviewer) Show(preview models.Preview) error {
	if p.out != nil {
		kind := "file"
		if preview.IsImage() {
			kind = "image"
		}
		fmt.Fprintf(p.out, "Opening %s %s (%s)\n", kind, preview.Name, preview.MimeType)
	}
	if err := p.open(preview.URL); err != nil && p.out != nil {
		fmt.Fprintf(p.out, "Could not launch a browser; the link is valid for a limited time:\n%s\n", preview.URL)
	}
	return nil
}
