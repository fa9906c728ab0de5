package harness

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/amitem/internal/abi"
	"github.com/roach88/amitem/internal/am"
	"github.com/roach88/amitem/internal/item"
	"github.com/roach88/amitem/internal/tagged"
)

func strPtr(s string) *string { return &s }
func posPtr(p uint64) *uint64 { return &p }

func TestBuildItem_Shapes(t *testing.T) {
	intValue := &ValueSpec{Type: "int", Value: "42"}

	tests := []struct {
		name    string
		spec    ItemSpec
		valType tagged.ValType
		idxType item.IdxType
		hasObj  bool
	}{
		{"indexed by key", ItemSpec{Key: strPtr("x"), Obj: "_root", Value: intValue}, tagged.Int, item.IdxKey, true},
		{"indexed by pos", ItemSpec{Pos: posPtr(2), Obj: "_root", Value: intValue}, tagged.Int, item.IdxPos, true},
		{"exact", ItemSpec{Obj: "_root", Value: intValue}, tagged.Int, item.IdxDefault, true},
		{"object only", ItemSpec{Obj: "3@0a"}, tagged.Void, item.IdxDefault, true},
		{"value only", ItemSpec{Value: intValue}, tagged.Int, item.IdxDefault, false},
		{"void", ItemSpec{}, tagged.Void, item.IdxDefault, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := BuildItem(&tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.valType, it.ValType())
			assert.Equal(t, tt.idxType, it.IdxType())
			_, ok := it.ObjID()
			assert.Equal(t, tt.hasObj, ok)
		})
	}
}

func TestBuildValue_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec ValueSpec
	}{
		{"unknown type", ValueSpec{Type: "decimal"}},
		{"bad int", ValueSpec{Type: "int", Value: "x"}},
		{"negative uint", ValueSpec{Type: "uint", Value: "-1"}},
		{"bad bytes", ValueSpec{Type: "bytes", Value: "zz"}},
		{"short hash", ValueSpec{Type: "change_hash", Value: "abcd"}},
		{"change without actor", ValueSpec{Type: "change", Seq: 1}},
		{"change without seq", ValueSpec{Type: "change", Actor: "01"}},
		{"void", ValueSpec{Type: "void"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildValue(&tt.spec)
			assert.Error(t, err)
		})
	}
}

func TestBuildValue_DocAppliesChanges(t *testing.T) {
	v, err := BuildValue(&ValueSpec{
		Type:  "doc",
		Actor: "0102",
		Changes: []ValueSpec{
			{Actor: "0102", Seq: 1, Message: "first"},
		},
	})
	require.NoError(t, err)

	d, err := tagged.ToDoc(v)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())
	assert.Len(t, d.Heads(), 1)
}

func TestBuild_ReleasesOnError(t *testing.T) {
	f := &Fixture{
		Name: "partial",
		Items: []ItemSpec{
			{Name: "ok", Value: &ValueSpec{Type: "int", Value: "1"}},
			{Name: "bad", Value: &ValueSpec{Type: "int", Value: "nope"}},
		},
	}
	_, err := Build(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `items[1] "bad"`)
}

func TestFilter_ByMask(t *testing.T) {
	f, err := LoadFixture("testdata/scalars.yaml")
	require.NoError(t, err)
	handles, err := Build(f)
	require.NoError(t, err)
	defer ReleaseAll(handles)

	ints := Filter(handles, tagged.Integers)
	require.Len(t, ints, 4)
	for _, h := range ints {
		assert.True(t, abi.ItemValType(h).Matches(tagged.Integers))
	}

	assert.Len(t, Filter(handles, tagged.Void), 2)
	assert.Empty(t, Filter(handles, tagged.Doc))
}

// captureDocs records every document built while the test runs.
func captureDocs(t *testing.T) *[]*am.Doc {
	t.Helper()
	var docs []*am.Doc
	orig := newDoc
	newDoc = func(actor am.ActorID) *am.Doc {
		d := orig(actor)
		docs = append(docs, d)
		return d
	}
	t.Cleanup(func() { newDoc = orig })
	return &docs
}

func TestBuildValue_DocClosedOnFailedChange(t *testing.T) {
	docs := captureDocs(t)
	missing := strings.Repeat("ab", 32)

	_, err := BuildValue(&ValueSpec{
		Type:  "doc",
		Actor: "0102",
		Changes: []ValueSpec{
			{Actor: "0102", Seq: 1, Message: "first"},
			{Actor: "0102", Seq: 2, Message: "orphan", Deps: []string{missing}},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changes[1]")
	require.Len(t, *docs, 1)
	assert.True(t, (*docs)[0].Closed())
}

func TestBuildItem_ReleasesValueOnObjError(t *testing.T) {
	docValue := &ValueSpec{Type: "doc", Actor: "0102"}

	tests := []struct {
		name string
		spec ItemSpec
	}{
		{"index without obj", ItemSpec{Key: strPtr("x"), Value: docValue}},
		{"unparsable obj", ItemSpec{Obj: "not-an-obj", Value: docValue}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := captureDocs(t)
			_, err := BuildItem(&tt.spec)
			require.Error(t, err)
			require.Len(t, *docs, 1)
			assert.True(t, (*docs)[0].Closed())
		})
	}
}

func TestReleaseAll_LogsRepeatRelease(t *testing.T) {
	var buf bytes.Buffer
	orig := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(orig) })

	h := item.NewHandle(item.FromValue(tagged.NewInt(1)))
	handles := []*item.Handle{h}

	ReleaseAll(handles)
	assert.NotContains(t, buf.String(), "op=ReleaseAll")

	assert.NotPanics(t, func() { ReleaseAll(handles) })
	assert.Contains(t, buf.String(), "op=ReleaseAll")
	assert.Contains(t, buf.String(), "HANDLE_RELEASED")
	assert.ErrorIs(t, h.Release(), tagged.ErrReleased)
}
