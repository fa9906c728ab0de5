package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/amitem/internal/am"
	"github.com/roach88/amitem/internal/tagged"
	"github.com/roach88/amitem/internal/testutil"
)

func TestHandleRefCount(t *testing.T) {
	h := NewHandle(Exact(am.Root, tagged.NewInt(1)))
	assert.Equal(t, 1, h.RefCount())

	d := h.Duplicate()
	assert.Equal(t, 2, h.RefCount())
	assert.Equal(t, 2, d.RefCount())
	assert.Same(t, h.Item(), d.Item())

	require.NoError(t, d.Release())
	assert.Equal(t, 0, d.RefCount())
	assert.Equal(t, 1, h.RefCount())

	require.NoError(t, h.Release())
	assert.Equal(t, 0, h.RefCount())
	assert.Nil(t, h.Item())
}

func TestHandleDoubleRelease(t *testing.T) {
	h := NewHandle(Void())
	require.NoError(t, h.Release())
	assert.True(t, tagged.IsReleased(h.Release()))
	assert.Nil(t, h.Duplicate())
}

func TestNilHandle(t *testing.T) {
	var h *Handle
	assert.Equal(t, 0, h.RefCount())
	assert.Nil(t, h.Duplicate())
	assert.NoError(t, h.Release())
	assert.Equal(t, tagged.Default, h.ValType())
	assert.Equal(t, IdxDefault, h.IdxType())
	assert.False(t, h.Equal(nil))
}

func TestNewHandleNilIsVoid(t *testing.T) {
	h := NewHandle(nil)
	assert.Equal(t, tagged.Void, h.ValType())
	assert.True(t, h.Equal(NewHandle(Void())))
}

func TestExclusiveMutationGate(t *testing.T) {
	actor := testutil.Actor(1)
	change := testutil.NewChangeChain(actor).Next(t, "gate")

	tests := []struct {
		name  string
		value tagged.Value
		call  func(*Handle) error
	}{
		{"doc", tagged.NewDoc(am.NewDoc(actor)), func(h *Handle) error { _, err := h.ToDoc(); return err }},
		{"sync state", tagged.NewSyncState(am.NewSyncState()), func(h *Handle) error { _, err := h.ToSyncState(); return err }},
		{"change view", tagged.NewChange(change), func(h *Handle) error { _, err := h.ToChangeView(); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandle(FromValue(tt.value))
			require.NoError(t, tt.call(h))

			d := h.Duplicate()
			assert.True(t, tagged.IsExclusiveAccess(tt.call(h)))
			assert.True(t, tagged.IsExclusiveAccess(tt.call(d)))

			require.NoError(t, d.Release())
			assert.NoError(t, tt.call(h))
			assert.True(t, tagged.IsReleased(tt.call(d)))
		})
	}
}

func TestSharedReadsIgnoreAliases(t *testing.T) {
	actor := testutil.Actor(1)
	change := testutil.NewChangeChain(actor).Next(t, "gate")

	h := NewHandle(FromValue(tagged.NewChange(change)))
	d := h.Duplicate()

	got, err := d.ToChange()
	require.NoError(t, err)
	assert.Same(t, change, got)

	_, err = h.ToChangeView()
	assert.True(t, tagged.IsExclusiveAccess(err))
}

func TestMismatchedMutationReportsType(t *testing.T) {
	h := NewHandle(FromValue(tagged.NewInt(1)))
	_, err := h.ToDoc()
	assert.True(t, tagged.IsInvalidValueType(err))
}

func TestHandleEqual(t *testing.T) {
	h := NewHandle(Indexed(KeyIndex("x"), am.Root, tagged.NewInt(42)))
	d := h.Duplicate()
	other := NewHandle(Indexed(KeyIndex("x"), am.Root, tagged.NewInt(42)))
	diff := NewHandle(Indexed(KeyIndex("x"), am.Root, tagged.NewInt(43)))

	assert.True(t, h.Equal(d))
	assert.True(t, h.Equal(other))
	assert.False(t, h.Equal(diff))

	require.NoError(t, d.Release())
	assert.False(t, h.Equal(d))
}

func TestLastReleaseClosesDoc(t *testing.T) {
	doc := testutil.Doc(t, testutil.Actor(1))

	h := NewHandle(FromValue(tagged.NewDoc(doc)))
	d := h.Duplicate()

	require.NoError(t, h.Release())
	assert.False(t, doc.Closed())
	require.NoError(t, d.Release())
	assert.True(t, doc.Closed())
}
