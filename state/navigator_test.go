package state

import (
	"fmt"
	"testing"

	"drivedash/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func folder(id, name string) models.Folder {
	return models.Folder{ItemMeta: models.ItemMeta{ID: id, Name: name}}
}

func TestNewNavigatorStartsAtRoot(t *testing.T) {
	n := NewNavigator()
	snap := n.Snapshot()
	assert.Nil(t, snap.CurrentFolderID)
	require.Len(t, snap.Breadcrumbs, 1)
	assert.Equal(t, models.RootName, snap.Breadcrumbs[0].Name)
	assert.True(t, snap.Breadcrumbs[0].IsRoot())
	assert.Equal(t, Browsing, snap.Mode)
}

func TestEnterFolderGrowsBreadcrumbs(t *testing.T) {
	n := NewNavigator()
	for depth := 1; depth <= 6; depth++ {
		id := fmt.Sprintf("F%d", depth)
		require.NoError(t, n.EnterFolder(folder(id, "Level "+id)))

		snap := n.Snapshot()
		assert.Len(t, snap.Breadcrumbs, depth+1)
		last := snap.Breadcrumbs[len(snap.Breadcrumbs)-1]
		require.NotNil(t, last.FolderID)
		require.NotNil(t, snap.CurrentFolderID)
		assert.Equal(t, *last.FolderID, *snap.CurrentFolderID)
	}
}

func TestEnterFolderRejectsFiles(t *testing.T) {
	n := NewNavigator()
	err := n.EnterFolder(models.File{ItemMeta: models.ItemMeta{ID: "x", Name: "a.txt"}})
	assert.Error(t, err)
	assert.Len(t, n.Snapshot().Breadcrumbs, 1)
}

func TestClickBreadcrumbZeroReturnsToRoot(t *testing.T) {
	for depth := 0; depth < 5; depth++ {
		n := NewNavigator()
		for i := 0; i < depth; i++ {
			require.NoError(t, n.EnterFolder(folder(fmt.Sprint(i), "f")))
		}
		n.SetSearchTerm("q")

		require.NoError(t, n.ClickBreadcrumb(0))
		snap := n.Snapshot()
		assert.Nil(t, snap.CurrentFolderID)
		assert.Equal(t, []models.BreadcrumbEntry{models.RootBreadcrumb()}, snap.Breadcrumbs)
		assert.Empty(t, snap.SearchTerm)
	}
}

func TestClickBreadcrumbTruncates(t *testing.T) {
	n := NewNavigator()
	require.NoError(t, n.EnterFolder(folder("A", "a")))
	require.NoError(t, n.EnterFolder(folder("B", "b")))
	require.NoError(t, n.EnterFolder(folder("C", "c")))

	require.NoError(t, n.ClickBreadcrumb(1))
	assert.Equal(t, "A", *n.CurrentFolderID())

	// Appending after truncation must not resurrect the old tail.
	require.NoError(t, n.EnterFolder(folder("D", "d")))
	snap := n.Snapshot()
	require.Len(t, snap.Breadcrumbs, 3)
	assert.Equal(t, "D", *snap.Breadcrumbs[2].FolderID)

	assert.Error(t, n.ClickBreadcrumb(3))
	assert.Error(t, n.ClickBreadcrumb(-1))
}

func TestReportsScenario(t *testing.T) {
	n := NewNavigator()
	prefs := DefaultPreferences()

	require.NoError(t, n.EnterFolder(folder("F1", "Reports")))
	snap := n.Snapshot()
	require.Len(t, snap.Breadcrumbs, 2)
	assert.Nil(t, snap.Breadcrumbs[0].FolderID)
	assert.Equal(t, "My Drive", snap.Breadcrumbs[0].Name)
	assert.Equal(t, "F1", *snap.Breadcrumbs[1].FolderID)
	assert.Equal(t, "Reports", snap.Breadcrumbs[1].Name)
	assert.Equal(t, "F1", *n.Query(prefs).FolderID)

	require.NoError(t, n.ClickBreadcrumb(0))
	assert.Len(t, n.Snapshot().Breadcrumbs, 1)
	assert.Nil(t, n.Query(prefs).FolderID)
	assert.Equal(t, "root", n.Query(prefs).Scope())
}

func TestSearchSuspendsAndRestores(t *testing.T) {
	n := NewNavigator()
	require.NoError(t, n.EnterFolder(folder("A", "a")))
	require.NoError(t, n.EnterFolder(folder("B", "b")))
	before := n.Snapshot()

	n.SetSearchTerm("x")
	assert.Equal(t, Searching, n.Mode())
	q := n.Query(DefaultPreferences())
	assert.True(t, q.IsSearch())
	assert.Nil(t, q.FolderID)
	assert.Empty(t, q.Sort)

	n.SetSearchTerm("")
	after := n.Snapshot()
	assert.Equal(t, before, after)
	assert.Equal(t, Browsing, after.Mode)
}

func TestOpenAt(t *testing.T) {
	n := NewNavigator()
	require.NoError(t, n.EnterFolder(folder("A", "a")))
	n.SetSearchTerm("x")

	n.OpenAt(folder("S", "Shared"))
	snap := n.Snapshot()
	require.Len(t, snap.Breadcrumbs, 2)
	assert.Equal(t, "S", *snap.CurrentFolderID)
	assert.Equal(t, Browsing, snap.Mode)
}

func TestSnapshotIsDetached(t *testing.T) {
	n := NewNavigator()
	require.NoError(t, n.EnterFolder(folder("A", "a")))
	snap := n.Snapshot()
	*snap.Breadcrumbs[1].FolderID = "mutated"
	*snap.CurrentFolderID = "mutated"
	assert.Equal(t, "A", *n.CurrentFolderID())
}
