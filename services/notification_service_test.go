package services

import (
	"bytes"
	"testing"

	"drivedash/models"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationReplacesByID(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	n := NewNotificationService(&out)

	id := n.NewID()
	n.Post(models.Notice{ID: id, Level: models.NoticeLoading, Message: "Uploading 3 file(s)..."})
	n.Post(models.Notice{ID: id, Level: models.NoticeError, Message: "Upload failed"})
	n.Success("Folder created")

	notices := n.Notices()
	require.Len(t, notices, 2)
	assert.Equal(t, models.NoticeError, notices[0].Level)
	assert.Equal(t, "Upload failed", notices[0].Message)

	last, ok := n.Last()
	require.True(t, ok)
	assert.Equal(t, "Folder created", last.Message)

	assert.Contains(t, out.String(), "… Uploading 3 file(s)...")
	assert.Contains(t, out.String(), "✗ Upload failed")
	assert.Contains(t, out.String(), "✓ Folder created")
}
