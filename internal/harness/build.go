package harness

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/roach88/amitem/internal/am"
	"github.com/roach88/amitem/internal/item"
	"github.com/roach88/amitem/internal/tagged"
)

// Build constructs a handle for every item of the fixture. On error the
// handles built so far are released.
func Build(f *Fixture) ([]*item.Handle, error) {
	handles := make([]*item.Handle, 0, len(f.Items))
	for i := range f.Items {
		it, err := BuildItem(&f.Items[i])
		if err != nil {
			ReleaseAll(handles)
			return nil, fmt.Errorf("items[%d] %q: %w", i, f.Items[i].Name, err)
		}
		handles = append(handles, item.NewHandle(it))
	}
	return handles, nil
}

// newDoc constructs the documents of doc fixtures.
var newDoc = am.NewDoc

// ReleaseAll releases every handle once. A handle that was already
// released is logged and skipped.
func ReleaseAll(handles []*item.Handle) {
	for i, h := range handles {
		if err := h.Release(); err != nil {
			if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
				slog.Debug("release skipped", "op", "ReleaseAll", "index", i, "error", err)
			}
		}
	}
}

// BuildItem selects the item constructor from the fields present in spec.
func BuildItem(spec *ItemSpec) (*item.Item, error) {
	var v tagged.Value
	if spec.Value != nil {
		var err error
		if v, err = BuildValue(spec.Value); err != nil {
			return nil, err
		}
	}

	if spec.Obj == "" {
		if spec.Key != nil || spec.Pos != nil {
			tagged.Release(v)
			return nil, fmt.Errorf("an index requires obj")
		}
		if v == nil {
			return item.Void(), nil
		}
		return item.FromValue(v), nil
	}

	obj, err := am.ParseObjID(spec.Obj)
	if err != nil {
		tagged.Release(v)
		return nil, err
	}
	switch {
	case spec.Key != nil:
		return item.Indexed(item.KeyIndex(*spec.Key), obj, v), nil
	case spec.Pos != nil:
		return item.Indexed(item.PosIndex(*spec.Pos), obj, v), nil
	case v != nil:
		return item.Exact(obj, v), nil
	}
	return item.FromObjID(obj), nil
}

// BuildValue constructs the tagged value spec describes.
func BuildValue(spec *ValueSpec) (tagged.Value, error) {
	t, err := tagged.ParseValType(spec.Type)
	if err != nil {
		return nil, err
	}

	switch t {
	case tagged.ActorID:
		id, err := am.ParseActorID(spec.Value)
		if err != nil {
			return nil, err
		}
		return tagged.NewActorID(id), nil
	case tagged.Bool:
		b, err := strconv.ParseBool(spec.Value)
		if err != nil {
			return nil, fmt.Errorf("bool: %w", err)
		}
		return tagged.NewBool(b), nil
	case tagged.Bytes:
		b, err := hex.DecodeString(spec.Value)
		if err != nil {
			return nil, fmt.Errorf("bytes: %w", err)
		}
		return tagged.NewBytes(b), nil
	case tagged.Change:
		c, err := buildChange(spec)
		if err != nil {
			return nil, err
		}
		return tagged.NewChange(c), nil
	case tagged.ChangeHash:
		h, err := am.ParseChangeHash(spec.Value)
		if err != nil {
			return nil, err
		}
		return tagged.NewChangeHash(h), nil
	case tagged.Counter:
		n, err := strconv.ParseInt(spec.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("counter: %w", err)
		}
		return tagged.NewCounter(n), nil
	case tagged.Doc:
		d, err := buildDoc(spec)
		if err != nil {
			return nil, err
		}
		return tagged.NewDoc(d), nil
	case tagged.F64:
		f, err := strconv.ParseFloat(spec.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("f64: %w", err)
		}
		return tagged.NewF64(f), nil
	case tagged.Int:
		n, err := strconv.ParseInt(spec.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("int: %w", err)
		}
		return tagged.NewInt(n), nil
	case tagged.Null:
		return tagged.NewNull(), nil
	case tagged.ObjType:
		ot, err := am.ParseObjType(spec.Value)
		if err != nil {
			return nil, err
		}
		return tagged.NewObject(ot), nil
	case tagged.Str:
		return tagged.NewString(spec.Value), nil
	case tagged.SyncHave:
		heads, err := parseHashes(spec.Heads)
		if err != nil {
			return nil, err
		}
		bloom, err := hex.DecodeString(spec.Value)
		if err != nil {
			return nil, fmt.Errorf("bloom: %w", err)
		}
		return tagged.NewSyncHave(am.Have{LastSync: heads, Bloom: bloom}), nil
	case tagged.SyncMessage:
		m, err := buildMessage(spec)
		if err != nil {
			return nil, err
		}
		return tagged.NewSyncMessage(m), nil
	case tagged.SyncState:
		s := am.NewSyncState()
		heads, err := parseHashes(spec.Heads)
		if err != nil {
			return nil, err
		}
		s.SetSharedHeads(heads)
		return tagged.NewSyncState(s), nil
	case tagged.Timestamp:
		ms, err := strconv.ParseInt(spec.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("timestamp: %w", err)
		}
		return tagged.NewTimestamp(ms), nil
	case tagged.Uint:
		n, err := strconv.ParseUint(spec.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("uint: %w", err)
		}
		return tagged.NewUint(n), nil
	case tagged.Unknown:
		b, err := hex.DecodeString(spec.Value)
		if err != nil {
			return nil, fmt.Errorf("unknown: %w", err)
		}
		return tagged.NewUnknown(spec.TypeCode, b), nil
	}
	return nil, fmt.Errorf("value type %s cannot be built from a fixture", t)
}

func buildChange(spec *ValueSpec) (*am.Change, error) {
	actor, err := am.ParseActorID(spec.Actor)
	if err != nil {
		return nil, fmt.Errorf("change actor: %w", err)
	}
	deps, err := parseHashes(spec.Deps)
	if err != nil {
		return nil, err
	}
	return am.NewChange(am.ChangeParams{
		Actor:   actor,
		Seq:     spec.Seq,
		StartOp: spec.StartOp,
		Time:    spec.Time,
		Message: spec.Message,
		Deps:    deps,
	})
}

func buildDoc(spec *ValueSpec) (*am.Doc, error) {
	actor, err := am.ParseActorID(spec.Actor)
	if err != nil {
		return nil, fmt.Errorf("doc actor: %w", err)
	}
	doc := newDoc(actor)
	for i := range spec.Changes {
		c, err := buildChange(&spec.Changes[i])
		if err == nil {
			err = doc.ApplyChange(c)
		}
		if err != nil {
			doc.Close()
			return nil, fmt.Errorf("changes[%d]: %w", i, err)
		}
	}
	return doc, nil
}

func buildMessage(spec *ValueSpec) (*am.Message, error) {
	heads, err := parseHashes(spec.Heads)
	if err != nil {
		return nil, err
	}
	need, err := parseHashes(spec.Need)
	if err != nil {
		return nil, err
	}
	m := &am.Message{Heads: heads, Need: need}
	for i := range spec.Changes {
		c, err := buildChange(&spec.Changes[i])
		if err != nil {
			return nil, fmt.Errorf("changes[%d]: %w", i, err)
		}
		m.Changes = append(m.Changes, c)
	}
	return m, nil
}

func parseHashes(in []string) ([]am.ChangeHash, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]am.ChangeHash, len(in))
	for i, s := range in {
		h, err := am.ParseChangeHash(s)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}
