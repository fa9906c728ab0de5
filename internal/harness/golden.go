package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/amitem/internal/am"
	"github.com/roach88/amitem/internal/item"
	"github.com/roach88/amitem/internal/tagged"
)

// TagEntry is one row of the type code table.
type TagEntry struct {
	Kind string `json:"kind"` // "val_type" or "idx_type"
	Name string `json:"name"`
	Code uint32 `json:"code"`
}

// TagEntries lists every type code the boundary reports.
func TagEntries() []TagEntry {
	entries := []TagEntry{{Kind: "val_type", Name: tagged.Default.String(), Code: uint32(tagged.Default)}}
	for _, t := range tagged.ValTypes() {
		entries = append(entries, TagEntry{Kind: "val_type", Name: t.String(), Code: uint32(t)})
	}
	for _, t := range []item.IdxType{item.IdxDefault, item.IdxKey, item.IdxPos} {
		entries = append(entries, TagEntry{Kind: "idx_type", Name: t.String(), Code: uint32(t)})
	}
	return entries
}

// TagTable renders TagEntries as canonical JSON grouped by kind. The
// codes are a compatibility contract; its golden file must only ever grow.
func TagTable() ([]byte, error) {
	groups := map[string]any{"val_types": []any{}, "idx_types": []any{}}
	for _, e := range TagEntries() {
		key := e.Kind + "s"
		groups[key] = append(groups[key].([]any), map[string]any{
			"name": e.Name,
			"code": uint64(e.Code),
		})
	}
	return am.MarshalCanonical(groups)
}

// RunWithGolden loads the fixture at path, builds and renders it, and
// compares the rendering against testdata/golden/{fixture.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, path string) error {
	t.Helper()

	f, err := LoadFixture(path)
	if err != nil {
		return err
	}
	handles, err := Build(f)
	if err != nil {
		return err
	}
	defer ReleaseAll(handles)

	out, err := Render(f.Name, f.Names(), handles)
	if err != nil {
		return err
	}
	AssertGolden(t, f.Name, out)
	return nil
}

// AssertGolden compares data against testdata/golden/{name}.golden.
func AssertGolden(t *testing.T, name string, data []byte) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
