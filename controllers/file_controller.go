package controllers

import (
	"context"
	"errors"
	"fmt"

	"drivedash/models"
	"drivedash/utils"
)

// Activate is a click on an item: folders are entered, files are opened.
// Any active search is cancelled first.
func (d *Dashboard) Activate(ctx context.Context, item models.Item) error {
	d.mu.Lock()
	wasSearching := d.nav.SearchTerm() != ""
	fromShared := d.showShared
	d.nav.SetSearchTerm("")
	d.mu.Unlock()

	switch it := item.(type) {
	case models.Folder:
		if fromShared {
			return d.OpenFolderAt(ctx, it)
		}
		return d.EnterFolder(ctx, it)
	case models.File:
		err := d.OpenFile(ctx, it)
		if wasSearching {
			d.refreshAfter(ctx)
		}
		return err
	default:
		return fmt.Errorf("cannot activate %T", item)
	}
}

// RenameItem renames item. A blank name or one equal to the current name
// is a no-op and makes no network call.
func (d *Dashboard) RenameItem(ctx context.Context, item models.Item, newName string) error {
	const op = models.OpRename
	if utils.IsBlank(newName) || newName == item.ItemName() {
		return nil
	}

	done, err := d.begin(op, item.ItemID())
	if err != nil {
		return err
	}
	defer done()

	if err := d.gateway.Rename(ctx, itemType(item), item.ItemID(), newName); err != nil {
		err = utils.Classify(string(op), err, utils.NewMutationError)
		d.finish(op, err)
		d.notifyError(failureNotice(err))
		return err
	}

	d.finish(op, nil)
	d.notifySuccess(fmt.Sprintf("Renamed to %q", newName))
	d.refreshAfter(ctx)
	return nil
}

// OpenFile fetches a signed URL for file and hands it to the previewer.
// There is no fallback to an unsigned path.
func (d *Dashboard) OpenFile(ctx context.Context, item models.Item) error {
	const op = models.OpOpenFile

	file, ok := item.(models.File)
	if !ok {
		return fmt.Errorf("cannot open %s %q as a file", item.ItemType(), item.ItemName())
	}
	if file.StoragePath == "" {
		err := utils.NewLinkError(string(op), errors.New("file has no storage path"))
		d.finish(op, err)
		d.notifyError("Could not open file: " + utils.UserMessage(err))
		return err
	}

	url, err := d.gateway.SignedURL(ctx, file.StoragePath)
	if err != nil {
		err = utils.Classify(string(op), err, utils.NewLinkError)
		d.finish(op, err)
		d.notifyError(openFailureNotice(err))
		return err
	}

	if err := d.previewer.Show(models.Preview{URL: url, MimeType: file.FileType, Name: file.Name}); err != nil {
		err = utils.NewLinkError(string(op), err)
		d.finish(op, err)
		d.notifyError(openFailureNotice(err))
		return err
	}
	d.finish(op, nil)
	return nil
}

func openFailureNotice(err error) string {
	var authErr *utils.AuthRequiredError
	if errors.As(err, &authErr) {
		return "You need to be logged in."
	}
	return "Could not open file: " + utils.UserMessage(err)
}

// UploadBatch uploads files into the current folder concurrently. One
// progress notice is shown and then replaced by one result notice; files
// that uploaded before a sibling failed stay uploaded. The listing is
// refreshed exactly once whatever the outcome.
func (d *Dashboard) UploadBatch(ctx context.Context, files []models.UploadSource) error {
	const op = models.OpUploadBatch
	if len(files) == 0 {
		return nil
	}

	noticeID := d.notifier.NewID()
	d.notifier.Post(models.Notice{
		ID:      noticeID,
		Level:   models.NoticeLoading,
		Message: fmt.Sprintf("Uploading %d file(s)...", len(files)),
	})

	if !d.session.LoggedIn() {
		err := &utils.AuthRequiredError{Op: string(op)}
		d.finish(op, err)
		d.notifier.Post(models.Notice{ID: noticeID, Level: models.NoticeError, Message: "You must be logged in to upload."})
		return err
	}

	d.mu.Lock()
	folderID := d.nav.CurrentFolderID()
	d.uploading++
	d.mu.Unlock()

	res := d.uploader.UploadBatch(ctx, files, folderID)

	d.mu.Lock()
	d.uploading--
	d.mu.Unlock()

	if res.Err != nil {
		err := utils.Classify(string(op), res.Err, utils.NewMutationError)
		d.finish(op, err)
		d.notifier.Post(models.Notice{ID: noticeID, Level: models.NoticeError, Message: uploadFailureNotice(res.Total, res.Failed, res.Results != nil)})
		d.refreshAfter(ctx)
		return err
	}

	d.finish(op, nil)
	d.notifier.Post(models.Notice{ID: noticeID, Level: models.NoticeSuccess, Message: "Upload complete!"})
	d.refreshAfter(ctx)
	return nil
}

func uploadFailureNotice(total, failed int, perFile bool) string {
	if perFile && failed > 0 {
		return fmt.Sprintf("Upload failed: %d of %d file(s) could not be uploaded.", failed, total)
	}
	return "Upload failed."
}
