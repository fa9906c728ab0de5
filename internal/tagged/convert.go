package tagged

import (
	"github.com/roach88/amitem/internal/am"
)

// Unknown is the payload of a scalar whose type code the engine does not
// recognize.
type Unknown struct {
	TypeCode uint8
	Bytes    []byte
}

// scalarOf returns the scalar payload when v is a generic scalar value.
func scalarOf(v Value) (am.ScalarValue, bool) {
	if ev, ok := v.(*engineValue); ok {
		return ev.v.Scalar()
	}
	return am.ScalarValue{}, false
}

// ToActorID returns the memoized projection of an actor id value,
// building it on first use. Not safe for concurrent first use.
func ToActorID(v Value) (*ActorIDView, error) {
	if av, ok := v.(*actorIDValue); ok {
		if av.view == nil {
			av.view = newActorIDView(av.id)
		}
		return av.view, nil
	}
	return nil, mismatch(targetActorID, v)
}

// ToBool returns the payload of a boolean scalar.
func ToBool(v Value) (bool, error) {
	if s, ok := scalarOf(v); ok {
		if b, ok := s.AsBool(); ok {
			return b, nil
		}
	}
	return false, mismatch(targetBool, v)
}

// ToBytes returns the bytes of a bytes scalar. The slice aliases the value.
func ToBytes(v Value) ([]byte, error) {
	if s, ok := scalarOf(v); ok {
		if b, ok := s.AsBytes(); ok {
			return b, nil
		}
	}
	return nil, mismatch(targetBytes, v)
}

// ToChange returns the engine change for read-only use.
func ToChange(v Value) (*am.Change, error) {
	if cv, ok := v.(*changeValue); ok {
		return cv.change, nil
	}
	return nil, mismatch(targetChange, v)
}

// ToChangeView returns the memoized projection of a change value,
// building it on first use. Not safe for concurrent first use.
func ToChangeView(v Value) (*ChangeView, error) {
	if cv, ok := v.(*changeValue); ok {
		if cv.view == nil {
			cv.view = newChangeView(cv.change)
		}
		return cv.view, nil
	}
	return nil, mismatch(targetChangeView, v)
}

// ToChangeHash returns the hash held by a change hash value.
func ToChangeHash(v Value) (am.ChangeHash, error) {
	if hv, ok := v.(*changeHashValue); ok {
		return hv.hash, nil
	}
	return am.ChangeHash{}, mismatch(targetChangeHash, v)
}

// ToCounter returns the current count of a counter scalar.
func ToCounter(v Value) (int64, error) {
	if s, ok := scalarOf(v); ok {
		if n, ok := s.AsCounter(); ok {
			return n, nil
		}
	}
	return 0, mismatch(targetCounter, v)
}

// ToDoc returns the owned document. Callers mutating it must hold the
// only reference to v.
func ToDoc(v Value) (*am.Doc, error) {
	if dv, ok := v.(*docValue); ok {
		return dv.doc, nil
	}
	return nil, mismatch(targetDoc, v)
}

// ToF64 returns the payload of a 64-bit float scalar.
func ToF64(v Value) (float64, error) {
	if s, ok := scalarOf(v); ok {
		if f, ok := s.AsF64(); ok {
			return f, nil
		}
	}
	return 0, mismatch(targetF64, v)
}

// ToInt returns the payload of a signed integer scalar.
func ToInt(v Value) (int64, error) {
	if s, ok := scalarOf(v); ok {
		if n, ok := s.AsInt(); ok {
			return n, nil
		}
	}
	return 0, mismatch(targetInt, v)
}

// ToObjType returns the container type of an object-reference value.
func ToObjType(v Value) (am.ObjType, error) {
	if ev, ok := v.(*engineValue); ok {
		if t, ok := ev.v.ObjType(); ok {
			return t, nil
		}
	}
	return 0, mismatch(targetObjType, v)
}

// ToScalar returns the scalar of a generic value of any scalar kind.
func ToScalar(v Value) (am.ScalarValue, error) {
	if s, ok := scalarOf(v); ok {
		return s, nil
	}
	return am.ScalarValue{}, mismatch(targetScalar, v)
}

// ToStr returns the payload of a string scalar.
func ToStr(v Value) (string, error) {
	if s, ok := scalarOf(v); ok {
		if str, ok := s.AsStr(); ok {
			return str, nil
		}
	}
	return "", mismatch(targetStr, v)
}

// ToSyncHave returns a copy of the have held by v. Changes to the copy
// do not reach v.
func ToSyncHave(v Value) (*am.Have, error) {
	if hv, ok := v.(*syncHaveValue); ok {
		h := hv.have.Clone()
		return &h, nil
	}
	return nil, mismatch(targetSyncHave, v)
}

// ToSyncMessage returns the sync message for read-only use. Callers
// mutating it must hold the only reference to v.
func ToSyncMessage(v Value) (*am.Message, error) {
	if mv, ok := v.(*syncMessageValue); ok {
		return mv.msg, nil
	}
	return nil, mismatch(targetSyncMessage, v)
}

// ToSyncState returns the owned sync state. Callers mutating it must hold
// the only reference to v.
func ToSyncState(v Value) (*am.SyncState, error) {
	if sv, ok := v.(*syncStateValue); ok {
		return sv.state, nil
	}
	return nil, mismatch(targetSyncState, v)
}

// ToTimestamp returns a timestamp scalar in milliseconds since the epoch.
func ToTimestamp(v Value) (int64, error) {
	if s, ok := scalarOf(v); ok {
		if ms, ok := s.AsTimestamp(); ok {
			return ms, nil
		}
	}
	return 0, mismatch(targetTimestamp, v)
}

// ToUint returns the payload of an unsigned integer scalar.
func ToUint(v Value) (uint64, error) {
	if s, ok := scalarOf(v); ok {
		if n, ok := s.AsUint(); ok {
			return n, nil
		}
	}
	return 0, mismatch(targetUint, v)
}

// ToUnknown returns the type code and bytes of an unknown scalar. The
// bytes alias the value.
func ToUnknown(v Value) (Unknown, error) {
	if s, ok := scalarOf(v); ok {
		if code, b, ok := s.AsUnknown(); ok {
			return Unknown{TypeCode: code, Bytes: b}, nil
		}
	}
	return Unknown{}, mismatch(targetUnknown, v)
}

// ToValue returns the generic engine value, scalar or object reference.
func ToValue(v Value) (am.Value, error) {
	if ev, ok := v.(*engineValue); ok {
		return ev.v, nil
	}
	return am.Value{}, mismatch(targetValue, v)
}

// ToValueObjID pairs the generic value with its owning object. The caller
// supplies the object id; a nil objID fails with ErrInvalidObjID before
// the value is inspected.
func ToValueObjID(v Value, objID *am.ObjID) (am.Value, am.ObjID, error) {
	if objID == nil {
		return am.Value{}, am.ObjID{}, ErrInvalidObjID
	}
	if ev, ok := v.(*engineValue); ok {
		return ev.v, *objID, nil
	}
	return am.Value{}, am.ObjID{}, mismatch(targetValueObjID, v)
}
