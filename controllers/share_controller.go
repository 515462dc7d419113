package controllers

import (
	"context"
	"errors"
	"sync"

	"drivedash/models"
	"drivedash/services"
	"drivedash/utils"
)

// ShareDialog is the share form for one item. It owns its own form state;
// the dashboard only opens and closes it.
type ShareDialog struct {
	gateway  services.Gateway
	notifier Notifier
	item     models.Item

	mu        sync.Mutex
	email     string
	role      models.Role
	publicURL string
}

// ShareDialogState is a copy of the form.
type ShareDialogState struct {
	Item      models.Item
	Email     string
	Role      models.Role
	PublicURL string
}

// ShareItem opens the share dialog for item, replacing any open one.
func (d *Dashboard) ShareItem(item models.Item) *ShareDialog {
	dialog := &ShareDialog{
		gateway:  d.gateway,
		notifier: d.notifier,
		item:     item,
		role:     models.RoleViewer,
	}
	d.mu.Lock()
	d.share = dialog
	d.mu.Unlock()
	return dialog
}

// ShareDialog returns the open share dialog, or nil.
func (d *Dashboard) ShareDialog() *ShareDialog {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.share
}

func (d *Dashboard) CloseShare() {
	d.mu.Lock()
	d.share = nil
	d.mu.Unlock()
}

func (s *ShareDialog) Item() models.Item {
	return s.item
}

func (s *ShareDialog) State() ShareDialogState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ShareDialogState{Item: s.item, Email: s.email, Role: s.role, PublicURL: s.publicURL}
}

// ShareWithUser grants email the role on the item. The form is validated
// before anything is sent.
func (s *ShareDialog) ShareWithUser(ctx context.Context, email string, role models.Role) (string, error) {
	const op = models.OpShare

	s.mu.Lock()
	s.email, s.role = email, role
	s.mu.Unlock()

	req := models.ShareRequest{
		ItemID:   s.item.ItemID(),
		ItemType: string(itemType(s.item)),
		Email:    email,
		Role:     string(role),
	}
	if err := utils.ValidateShareRequest(req); err != nil {
		err = utils.NewMutationError(string(op), err)
		s.fail(op, err)
		return "", err
	}

	message, err := s.gateway.Share(ctx, req)
	if err != nil {
		err = utils.Classify(string(op), err, utils.NewMutationError)
		s.fail(op, err)
		return "", err
	}

	s.mu.Lock()
	s.email = ""
	s.mu.Unlock()

	recordOperation(op, nil)
	s.notifier.Post(models.Notice{Level: models.NoticeSuccess, Message: message})
	return message, nil
}

// PublicLink returns a public URL for the item. Folders are refused
// without contacting the server.
func (s *ShareDialog) PublicLink(ctx context.Context) (string, error) {
	const op = models.OpPublicLink

	var file models.File
	switch it := s.item.(type) {
	case models.Folder:
		err := utils.NewLinkError(string(op), utils.ErrFolderPublicLink)
		recordOperation(op, err)
		s.notifier.Post(models.Notice{Level: models.NoticeError, Message: "Public links are not yet supported for folders."})
		return "", err
	case models.File:
		file = it
	default:
		return "", utils.NewLinkError(string(op), errors.New("unsupported item"))
	}

	url, err := s.gateway.PublicLink(ctx, file.ID)
	if err != nil {
		err = utils.Classify(string(op), err, utils.NewLinkError)
		s.fail(op, err)
		return "", err
	}

	s.mu.Lock()
	s.publicURL = url
	s.mu.Unlock()

	recordOperation(op, nil)
	s.notifier.Post(models.Notice{Level: models.NoticeSuccess, Message: "Public link created."})
	return url, nil
}

func (s *ShareDialog) fail(op models.Operation, err error) {
	recordOperation(op, err)
	s.notifier.Post(models.Notice{Level: models.NoticeError, Message: failureNotice(err)})
}
