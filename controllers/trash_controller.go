package controllers

import (
	"context"
	"fmt"

	"drivedash/models"
	"drivedash/utils"
)

// RequestTrash asks for confirmation before trashing item.
func (d *Dashboard) RequestTrash(item models.Item) {
	d.mu.Lock()
	d.pendingTrash = item
	d.mu.Unlock()
}

func (d *Dashboard) CancelTrash() {
	d.mu.Lock()
	d.pendingTrash = nil
	d.mu.Unlock()
}

// ConfirmTrash trashes the item awaiting confirmation.
func (d *Dashboard) ConfirmTrash(ctx context.Context) error {
	d.mu.Lock()
	item := d.pendingTrash
	d.mu.Unlock()
	if item == nil {
		return nil
	}
	return d.TrashItem(ctx, item)
}

// TrashItem moves item to the trash. Restoring is up to the server.
func (d *Dashboard) TrashItem(ctx context.Context, item models.Item) error {
	const op = models.OpTrash

	done, err := d.begin(op, item.ItemID())
	if err != nil {
		return err
	}
	defer done()

	if err := d.gateway.Trash(ctx, itemType(item), item.ItemID()); err != nil {
		err = utils.Classify(string(op), err, utils.NewMutationError)
		d.finish(op, err)
		d.notifyError(failureNotice(err))
		return err
	}

	d.mu.Lock()
	if d.pendingTrash != nil && d.pendingTrash.ItemID() == item.ItemID() {
		d.pendingTrash = nil
	}
	d.mu.Unlock()

	d.finish(op, nil)
	d.notifySuccess(fmt.Sprintf("%q moved to trash.", item.ItemName()))
	d.refreshAfter(ctx)
	return nil
}
