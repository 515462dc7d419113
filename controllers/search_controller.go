package controllers

import "context"

// SharedWithMe lists the items other users have shared with the signed-in
// user. Any navigation action leaves the list.
func (d *Dashboard) SharedWithMe(ctx context.Context) error {
	d.mu.Lock()
	d.nav.SetSearchTerm("")
	d.showShared = true
	d.mu.Unlock()
	return d.Refresh(ctx)
}

// ClearSearch is SetSearchTerm with an empty term.
func (d *Dashboard) ClearSearch(ctx context.Context) error {
	return d.SetSearchTerm(ctx, "")
}
