package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treki/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "collections.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenCreatesDefaultCollection(t *testing.T) {
	store := newTestStore(t)

	cols := store.Collections()
	require.Len(t, cols, 1)
	assert.Equal(t, DefaultCollection, cols[0].Name)
	assert.True(t, cols[0].IsExpanded)
	assert.Empty(t, cols[0].Requests)
}

func TestOpenCorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collections.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	cols := store.Collections()
	require.Len(t, cols, 1)
	assert.Equal(t, DefaultCollection, cols[0].Name)
}

func TestAddCollectionBecomesActive(t *testing.T) {
	store := newTestStore(t)

	col, err := store.AddCollection("APIs", "")
	require.NoError(t, err)
	assert.NotEmpty(t, col.ID)
	assert.Equal(t, col.ID, store.ActiveCollectionID())
}

func TestAddCollectionUnknownParent(t *testing.T) {
	store := newTestStore(t)

	_, err := store.AddCollection("child", "missing")
	require.Error(t, err)
}

func TestAddRequestDefaults(t *testing.T) {
	store := newTestStore(t)
	col, _ := store.AddCollection("APIs", "")

	req, err := store.AddRequest(col.ID, "list users")
	require.NoError(t, err)
	require.NotNil(t, req)

	assert.Equal(t, DefaultRequestMethod, req.Method)
	assert.Equal(t, DefaultRequestURL, req.URL)
	assert.Equal(t, types.BodyNone, req.Body.Type)
	assert.Equal(t, req.ID, store.ActiveRequestID())
}

func TestAddRequestUnknownCollection(t *testing.T) {
	store := newTestStore(t)

	req, err := store.AddRequest("missing", "x")
	require.NoError(t, err)
	assert.Nil(t, req)
}

func TestDeleteCollectionReparentsChildren(t *testing.T) {
	store := newTestStore(t)
	root, _ := store.AddCollection("root", "")
	mid, _ := store.AddCollection("mid", root.ID)
	leaf, _ := store.AddCollection("leaf", mid.ID)

	require.NoError(t, store.DeleteCollection(mid.ID))

	var found *Collection
	for _, col := range store.Collections() {
		assert.NotEqual(t, mid.ID, col.ID)
		if col.ID == leaf.ID {
			found = col
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, root.ID, found.ParentID)
}

func TestDeleteActiveCollectionResetsActive(t *testing.T) {
	store := newTestStore(t)
	first := store.Collections()[0]
	second, _ := store.AddCollection("second", "")

	require.Equal(t, second.ID, store.ActiveCollectionID())
	require.NoError(t, store.DeleteCollection(second.ID))

	assert.Equal(t, first.ID, store.ActiveCollectionID())
}

func TestDeleteActiveRequestFallsBack(t *testing.T) {
	store := newTestStore(t)
	col, _ := store.AddCollection("APIs", "")
	first, _ := store.AddRequest(col.ID, "first")
	second, _ := store.AddRequest(col.ID, "second")

	require.Equal(t, second.ID, store.ActiveRequestID())
	require.NoError(t, store.DeleteRequest(second.ID))
	assert.Equal(t, first.ID, store.ActiveRequestID())

	require.NoError(t, store.DeleteRequest(first.ID))
	assert.Empty(t, store.ActiveRequestID())
}

func TestUpdateRequestPartialMerge(t *testing.T) {
	store := newTestStore(t)
	col, _ := store.AddCollection("APIs", "")
	req, _ := store.AddRequest(col.ID, "orig")

	newURL := "https://example.org/v2"
	require.NoError(t, store.UpdateRequest(req.ID, &RequestPatch{URL: &newURL}))

	got, _ := store.FindRequest(req.ID)
	assert.Equal(t, newURL, got.URL)
	// 未提供的字段保持原值
	assert.Equal(t, "orig", got.Name)
	assert.Equal(t, DefaultRequestMethod, got.Method)
}

func TestUpdateRequestRejectsInvalidMethod(t *testing.T) {
	store := newTestStore(t)
	col, _ := store.AddCollection("APIs", "")
	req, _ := store.AddRequest(col.ID, "orig")

	bad := "TRACE"
	require.NoError(t, store.UpdateRequest(req.ID, &RequestPatch{Method: &bad}))

	got, _ := store.FindRequest(req.ID)
	assert.Equal(t, DefaultRequestMethod, got.Method)
}

func TestSetActiveRequestSelectsOwningCollection(t *testing.T) {
	store := newTestStore(t)
	colA, _ := store.AddCollection("A", "")
	reqA, _ := store.AddRequest(colA.ID, "a1")
	colB, _ := store.AddCollection("B", "")
	_, _ = store.AddRequest(colB.ID, "b1")

	require.NoError(t, store.SetActiveRequest(reqA.ID))
	assert.Equal(t, colA.ID, store.ActiveCollectionID())
	assert.Equal(t, reqA.ID, store.ActiveRequestID())
}

func TestSetActiveCollectionSelectsFirstRequest(t *testing.T) {
	store := newTestStore(t)
	colA, _ := store.AddCollection("A", "")
	reqA1, _ := store.AddRequest(colA.ID, "a1")
	_, _ = store.AddRequest(colA.ID, "a2")
	colB, _ := store.AddCollection("B", "")

	require.Equal(t, colB.ID, store.ActiveCollectionID())
	require.NoError(t, store.SetActiveCollection(colA.ID))
	assert.Equal(t, reqA1.ID, store.ActiveRequestID())
}

func TestStateSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collections.json")
	store, err := Open(path)
	require.NoError(t, err)

	col, _ := store.AddCollection("APIs", "")
	req, _ := store.AddRequest(col.ID, "users")
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, col.ID, reopened.ActiveCollectionID())
	assert.Equal(t, req.ID, reopened.ActiveRequestID())

	got, owner := reopened.FindRequest(req.ID)
	require.NotNil(t, got)
	assert.Equal(t, "users", got.Name)
	assert.Equal(t, col.ID, owner.ID)
}

func TestClosedStoreRejectsWrites(t *testing.T) {
	store := newTestStore(t)
	col, _ := store.AddCollection("APIs", "")
	require.NoError(t, store.Close())

	_, err := store.AddRequest(col.ID, "late")
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestToggleCollectionExpand(t *testing.T) {
	store := newTestStore(t)
	col, _ := store.AddCollection("APIs", "")

	require.NoError(t, store.ToggleCollectionExpand(col.ID))
	for _, c := range store.Collections() {
		if c.ID == col.ID {
			assert.False(t, c.IsExpanded)
		}
	}
}

func findCol(store *Store, id string) *Collection {
	for _, c := range store.Collections() {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func TestUpdateCollectionPartialMerge(t *testing.T) {
	store := newTestStore(t)
	col, _ := store.AddCollection("APIs", "")

	name := "Renamed"
	require.NoError(t, store.UpdateCollection(col.ID, &CollectionPatch{Name: &name}))

	got := findCol(store, col.ID)
	assert.Equal(t, "Renamed", got.Name)
	assert.True(t, got.IsExpanded, "未提供的字段保留原值")

	collapsed := false
	require.NoError(t, store.UpdateCollection(col.ID, &CollectionPatch{IsExpanded: &collapsed}))

	got = findCol(store, col.ID)
	assert.Equal(t, "Renamed", got.Name)
	assert.False(t, got.IsExpanded)

	// 未知 id 静默忽略
	require.NoError(t, store.UpdateCollection("missing", &CollectionPatch{Name: &name}))
}

func TestUpdateCollectionReparent(t *testing.T) {
	store := newTestStore(t)
	root, _ := store.AddCollection("root", "")
	child, _ := store.AddCollection("child", root.ID)
	grandchild, _ := store.AddCollection("grandchild", child.ID)

	// 挂到根
	empty := ""
	require.NoError(t, store.UpdateCollection(grandchild.ID, &CollectionPatch{ParentID: &empty}))
	assert.Equal(t, "", findCol(store, grandchild.ID).ParentID)

	// 挂回去
	require.NoError(t, store.UpdateCollection(grandchild.ID, &CollectionPatch{ParentID: &child.ID}))
	assert.Equal(t, child.ID, findCol(store, grandchild.ID).ParentID)
}

func TestUpdateCollectionRejectsBadParent(t *testing.T) {
	store := newTestStore(t)
	root, _ := store.AddCollection("root", "")
	child, _ := store.AddCollection("child", root.ID)
	grandchild, _ := store.AddCollection("grandchild", child.ID)

	// 不存在的父节点
	missing := "missing"
	assert.Error(t, store.UpdateCollection(root.ID, &CollectionPatch{ParentID: &missing}))
	// 挂到自身
	assert.Error(t, store.UpdateCollection(root.ID, &CollectionPatch{ParentID: &root.ID}))
	// 挂到自己的子孙
	assert.Error(t, store.UpdateCollection(root.ID, &CollectionPatch{ParentID: &grandchild.ID}))

	assert.Equal(t, "", findCol(store, root.ID).ParentID, "失败的移动不落盘")
}
