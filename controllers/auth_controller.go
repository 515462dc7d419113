package controllers

import (
	"drivedash/models"
	"drivedash/state"
)

// CurrentUser returns the identity of the session.
func (d *Dashboard) CurrentUser() (models.User, error) {
	return d.session.CurrentUser()
}

// SignOut ends the session and resets the dashboard to its initial state.
// Preferences do not survive a new session.
func (d *Dashboard) SignOut() error {
	if err := d.session.SignOut(); err != nil {
		d.notifyError("Error: " + err.Error())
		return err
	}

	d.mu.Lock()
	d.nav = state.NewNavigator()
	d.prefs = state.DefaultPreferences()
	d.items = nil
	d.source = SourceFolder
	d.showShared = false
	d.newFolder = NewFolderDialog{}
	d.pendingTrash = nil
	d.share = nil
	d.refreshSeq++
	d.mu.Unlock()

	d.notifySuccess("Signed out.")
	return nil
}
