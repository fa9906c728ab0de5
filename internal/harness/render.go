package harness

import (
	"encoding/hex"
	"strconv"

	"github.com/roach88/amitem/internal/abi"
	"github.com/roach88/amitem/internal/am"
	"github.com/roach88/amitem/internal/item"
	"github.com/roach88/amitem/internal/tagged"
)

// Filter returns the handles whose value type matches mask.
func Filter(handles []*item.Handle, mask tagged.ValType) []*item.Handle {
	var out []*item.Handle
	for _, h := range handles {
		if abi.ItemValType(h).Matches(mask) {
			out = append(out, h)
		}
	}
	return out
}

// Describe renders one handle as a canonical-JSON-ready map. Every field
// is read through the boundary functions, so a failed extraction shows up
// as the sentinel a foreign caller would see.
func Describe(h *item.Handle) map[string]any {
	t := abi.ItemValType(h)
	m := map[string]any{
		"val_type":  t.String(),
		"idx_type":  abi.ItemIdxType(h).String(),
		"ref_count": int64(abi.ItemRefCount(h)),
	}
	switch abi.ItemIdxType(h) {
	case item.IdxKey:
		m["key"] = abi.ItemKey(h).String()
	case item.IdxPos:
		m["pos"] = abi.ItemPos(h)
	}
	if id := abi.ItemObjID(h); id != nil {
		m["obj"] = id.String()
	}
	if v, ok := describeValue(h, t); ok {
		m["value"] = v
	}
	return m
}

func describeValue(h *item.Handle, t tagged.ValType) (any, bool) {
	switch t {
	case tagged.ActorID:
		if v := abi.ItemToActorID(h); v != nil {
			return v.String(), true
		}
	case tagged.Bool:
		return abi.ItemToBool(h), true
	case tagged.Bytes:
		return hex.EncodeToString(abi.ItemToBytes(h).Src), true
	case tagged.Change:
		if v := abi.ItemToChange(h); v != nil {
			return describeChange(v), true
		}
	case tagged.ChangeHash:
		return hex.EncodeToString(abi.ItemToChangeHash(h).Src), true
	case tagged.Counter:
		return abi.ItemToCounter(h), true
	case tagged.Doc:
		if d := abi.ItemToDoc(h); d != nil {
			return map[string]any{
				"actor":   d.ActorID().String(),
				"heads":   hashList(d.Heads()),
				"changes": int64(d.Len()),
			}, true
		}
	case tagged.F64:
		// Canonical JSON has no floats.
		return strconv.FormatFloat(abi.ItemToF64(h), 'g', -1, 64), true
	case tagged.Int:
		return abi.ItemToInt(h), true
	case tagged.Null:
		return "null", true
	case tagged.ObjType:
		if ot, err := h.ToObjType(); err == nil {
			return ot.String(), true
		}
	case tagged.Str:
		return abi.ItemToStr(h).String(), true
	case tagged.SyncHave:
		if hv := abi.ItemToSyncHave(h); hv != nil {
			return map[string]any{
				"last_sync": hashList(hv.LastSync),
				"bloom":     hex.EncodeToString(hv.Bloom),
			}, true
		}
	case tagged.SyncMessage:
		if msg := abi.ItemToSyncMessage(h); msg != nil {
			changes := make([]any, len(msg.Changes))
			for i, c := range msg.Changes {
				changes[i] = c.Hash().String()
			}
			return map[string]any{
				"heads":   hashList(msg.Heads),
				"need":    hashList(msg.Need),
				"changes": changes,
			}, true
		}
	case tagged.SyncState:
		if s := abi.ItemToSyncState(h); s != nil {
			return map[string]any{
				"shared_heads": hashList(s.SharedHeads()),
			}, true
		}
	case tagged.Timestamp:
		return abi.ItemToTimestamp(h), true
	case tagged.Uint:
		return abi.ItemToUint(h), true
	case tagged.Unknown:
		u := abi.ItemToUnknown(h)
		return map[string]any{
			"type_code": int64(u.TypeCode),
			"bytes":     hex.EncodeToString(u.Bytes.Src),
		}, true
	}
	return nil, false
}

func describeChange(v *tagged.ChangeView) map[string]any {
	return map[string]any{
		"hash":     hex.EncodeToString(v.Hash()),
		"actor":    v.ActorID().String(),
		"seq":      v.Seq(),
		"start_op": v.StartOp(),
		"max_op":   v.MaxOp(),
		"time":     v.Time(),
		"message":  string(v.Message()),
		"deps":     hashList(v.Deps()),
		"size":     int64(v.Size()),
	}
}

func hashList(hs []am.ChangeHash) []any {
	out := make([]any, len(hs))
	for i, h := range hs {
		out[i] = h.String()
	}
	return out
}

// Render encodes the described handles of a fixture as canonical JSON.
func Render(name string, names []string, handles []*item.Handle) ([]byte, error) {
	items := make([]any, len(handles))
	for i, h := range handles {
		d := Describe(h)
		if i < len(names) {
			d["name"] = names[i]
		}
		items[i] = d
	}
	return am.MarshalCanonical(map[string]any{
		"name":  name,
		"items": items,
	})
}

// Names returns the item names of f in order.
func (f *Fixture) Names() []string {
	names := make([]string, len(f.Items))
	for i, it := range f.Items {
		names[i] = it.Name
	}
	return names
}
