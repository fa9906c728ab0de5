package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/amitem/internal/am"
	"github.com/roach88/amitem/internal/item"
	"github.com/roach88/amitem/internal/tagged"
	"github.com/roach88/amitem/internal/testutil"
)

// assertAllSentinels checks every extractor against its failure value.
func assertAllSentinels(t *testing.T, h *item.Handle) {
	t.Helper()
	assert.Nil(t, ItemToActorID(h))
	assert.False(t, ItemToBool(h))
	assert.True(t, ItemToBytes(h).IsEmpty())
	assert.Nil(t, ItemToChange(h))
	assert.True(t, ItemToChangeHash(h).IsEmpty())
	assert.Equal(t, IntSentinel, ItemToCounter(h))
	assert.Nil(t, ItemToDoc(h))
	assert.Equal(t, F64Sentinel, ItemToF64(h))
	assert.Equal(t, IntSentinel, ItemToInt(h))
	assert.True(t, ItemToStr(h).IsEmpty())
	assert.Nil(t, ItemToSyncHave(h))
	assert.Nil(t, ItemToSyncMessage(h))
	assert.Nil(t, ItemToSyncState(h))
	assert.Equal(t, IntSentinel, ItemToTimestamp(h))
	assert.Equal(t, UintSentinel, ItemToUint(h))
	assert.True(t, ItemToUnknown(h).IsZero())
	assert.True(t, ItemKey(h).IsEmpty())
	assert.Equal(t, PosNotFound, ItemPos(h))
	assert.Nil(t, ItemObjID(h))
}

func TestNilHandleReturnsSentinels(t *testing.T) {
	assertAllSentinels(t, nil)
	assert.Equal(t, tagged.Default, ItemValType(nil))
	assert.Equal(t, item.IdxDefault, ItemIdxType(nil))
	assert.Equal(t, 0, ItemRefCount(nil))
	assert.Nil(t, ItemResult(nil))
	assert.False(t, ItemEqual(nil, nil))
}

func TestVoidItemReturnsSentinels(t *testing.T) {
	h := item.NewHandle(item.Void())
	assertAllSentinels(t, h)
	assert.Equal(t, tagged.Void, ItemValType(h))

	_, _, err := h.ToValueObjID()
	assert.True(t, tagged.IsInvalidObjID(err))
}

func TestIndexedKeyScenario(t *testing.T) {
	actor, err := am.ActorIDFromBytes([]byte{0x0f})
	require.NoError(t, err)
	obj := am.NewObjID(7, actor)
	h := item.NewHandle(item.Indexed(item.KeyIndex("x"), obj, tagged.NewInt(42)))

	assert.Equal(t, tagged.Int, ItemValType(h))
	assert.Equal(t, item.IdxKey, ItemIdxType(h))
	assert.Equal(t, int64(42), ItemToInt(h))
	assert.Equal(t, F64Sentinel, ItemToF64(h))
	assert.Equal(t, IntSentinel, ItemToCounter(h))
	assert.Equal(t, "x", ItemKey(h).String())
	assert.Equal(t, PosNotFound, ItemPos(h))

	id := ItemObjID(h)
	require.NotNil(t, id)
	assert.Equal(t, obj, *id)
}

func TestIndexedPosScenario(t *testing.T) {
	h := item.NewHandle(item.Indexed(item.PosIndex(0), am.Root, tagged.NewString("a")))

	assert.Equal(t, item.IdxPos, ItemIdxType(h))
	assert.Equal(t, uint64(0), ItemPos(h))
	assert.True(t, ItemKey(h).IsEmpty())
	assert.Equal(t, "a", ItemToStr(h).String())
}

func TestFromConstructorsRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Result
		want  tagged.ValType
		check func(t *testing.T, h *item.Handle)
	}{
		{"bool", func() *Result { return ItemFromBool(true) }, tagged.Bool, func(t *testing.T, h *item.Handle) {
			assert.True(t, ItemToBool(h))
		}},
		{"bytes", func() *Result { return ItemFromBytes([]byte{1, 2}) }, tagged.Bytes, func(t *testing.T, h *item.Handle) {
			assert.Equal(t, []byte{1, 2}, ItemToBytes(h).Src)
		}},
		{"counter", func() *Result { return ItemFromCounter(-3) }, tagged.Counter, func(t *testing.T, h *item.Handle) {
			assert.Equal(t, int64(-3), ItemToCounter(h))
			assert.Equal(t, IntSentinel, ItemToInt(h))
		}},
		{"f64", func() *Result { return ItemFromF64(1.5) }, tagged.F64, func(t *testing.T, h *item.Handle) {
			assert.Equal(t, 1.5, ItemToF64(h))
		}},
		{"int", func() *Result { return ItemFromInt(-1) }, tagged.Int, func(t *testing.T, h *item.Handle) {
			assert.Equal(t, int64(-1), ItemToInt(h))
			assert.Equal(t, UintSentinel, ItemToUint(h))
		}},
		{"null", ItemFromNull, tagged.Null, func(t *testing.T, h *item.Handle) {
			assert.False(t, ItemToBool(h))
		}},
		{"str", func() *Result { return ItemFromStr(Str("hi")) }, tagged.Str, func(t *testing.T, h *item.Handle) {
			assert.Equal(t, "hi", ItemToStr(h).String())
		}},
		{"timestamp", func() *Result { return ItemFromTimestamp(1700000000000) }, tagged.Timestamp, func(t *testing.T, h *item.Handle) {
			assert.Equal(t, int64(1700000000000), ItemToTimestamp(h))
		}},
		{"uint", func() *Result { return ItemFromUint(9) }, tagged.Uint, func(t *testing.T, h *item.Handle) {
			assert.Equal(t, uint64(9), ItemToUint(h))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.build()
			defer ResultFree(r)
			require.Equal(t, StatusOK, ResultStatus(r))
			require.Equal(t, 1, ResultSize(r))

			h := ResultItem(r)
			assert.Equal(t, tt.want, ItemValType(h))
			tt.check(t, h)
		})
	}
}

func TestItemFromChangeHash(t *testing.T) {
	var want am.ChangeHash
	want[0] = 0xab

	r := ItemFromChangeHash(ByteSpan{Src: want[:]})
	defer ResultFree(r)
	require.Equal(t, StatusOK, ResultStatus(r))
	assert.Equal(t, want[:], ItemToChangeHash(ResultItem(r)).Src)

	bad := ItemFromChangeHash(Str("short"))
	defer ResultFree(bad)
	assert.Equal(t, StatusError, ResultStatus(bad))
	assert.False(t, ResultError(bad).IsEmpty())
	assert.Nil(t, ResultItem(bad))
}

func TestItemResultSharesItem(t *testing.T) {
	r := ItemFromInt(1)
	h := ResultItem(r)

	alias := ItemResult(h)
	require.NotNil(t, alias)
	assert.Equal(t, 2, ItemRefCount(h))
	assert.True(t, ItemEqual(h, ResultItem(alias)))

	ResultFree(alias)
	assert.Equal(t, 1, ItemRefCount(h))

	ResultFree(r)
	ResultFree(r)
	assert.Equal(t, 0, ItemRefCount(h))
	assert.Equal(t, StatusInvalidResult, ResultStatus(r))
}

func TestMutationSentinelWhileAliased(t *testing.T) {
	chain := testutil.NewChangeChain(testutil.Actor(1))
	doc := testutil.Doc(t, testutil.Actor(1), chain.Next(t, "first"))
	h := item.NewHandle(item.FromValue(tagged.NewDoc(doc)))
	require.Same(t, doc, ItemToDoc(h))

	alias := ItemResult(h)
	assert.Nil(t, ItemToDoc(h))

	ResultFree(alias)
	assert.NotNil(t, ItemToDoc(h))
}

func TestItemToUnknown(t *testing.T) {
	h := item.NewHandle(item.FromValue(tagged.NewUnknown(42, []byte{9})))
	got := ItemToUnknown(h)
	assert.Equal(t, uint8(42), got.TypeCode)
	assert.Equal(t, []byte{9}, got.Bytes.Src)
}

func TestItemToActorIDIsMemoized(t *testing.T) {
	actor, err := am.ActorIDFromBytes([]byte{1, 2})
	require.NoError(t, err)
	h := item.NewHandle(item.FromValue(tagged.NewActorID(actor)))

	first := ItemToActorID(h)
	require.NotNil(t, first)
	assert.Same(t, first, ItemToActorID(h))
	assert.Equal(t, "0102", first.String())
}

func TestItemToChangeProjection(t *testing.T) {
	change := testutil.NewChangeChain(testutil.Actor(3)).Next(t, "hello")
	h := item.NewHandle(item.FromValue(tagged.NewChange(change)))

	view := ItemToChange(h)
	require.NotNil(t, view)
	assert.Same(t, view, ItemToChange(h))
	assert.Equal(t, "hello", string(view.Message()))
	hash := change.Hash()
	assert.Equal(t, hash[:], view.Hash())
	assert.Equal(t, testutil.Actor(3).String(), view.ActorID().String())
	assert.Equal(t, testutil.BaseTime, view.Time())

	// A change is not a change hash.
	assert.True(t, ItemToChangeHash(h).IsEmpty())
}

func TestNilPayloadItemsAreVoid(t *testing.T) {
	tests := []struct {
		name string
		v    tagged.Value
	}{
		{"change", tagged.NewChange(nil)},
		{"doc", tagged.NewDoc(nil)},
		{"sync message", tagged.NewSyncMessage(nil)},
		{"sync state", tagged.NewSyncState(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := item.NewHandle(item.FromValue(tt.v))
			assert.Equal(t, tagged.Void, ItemValType(h))
			assert.NotPanics(t, func() { assertAllSentinels(t, h) })
		})
	}
}

func TestItemToSyncHaveIsolatesAliases(t *testing.T) {
	h := item.NewHandle(item.FromValue(tagged.NewSyncHave(am.Have{Bloom: []byte{7}})))
	alias := h.Duplicate()
	require.Equal(t, 2, ItemRefCount(h))

	got := ItemToSyncHave(alias)
	require.NotNil(t, got)
	got.Bloom[0] = 0

	assert.Equal(t, []byte{7}, ItemToSyncHave(h).Bloom)
}
