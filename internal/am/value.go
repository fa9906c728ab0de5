package am

import (
	"bytes"
	"fmt"
)

// ScalarKind enumerates the scalar types the engine stores.
type ScalarKind uint8

const (
	KindNull ScalarKind = iota
	KindBoolean
	KindBytes
	KindCounter
	KindF64
	KindInt
	KindStr
	KindTimestamp
	KindUint
	KindUnknown
)

var scalarKindNames = [...]string{
	KindNull:      "null",
	KindBoolean:   "boolean",
	KindBytes:     "bytes",
	KindCounter:   "counter",
	KindF64:       "f64",
	KindInt:       "int",
	KindStr:       "str",
	KindTimestamp: "timestamp",
	KindUint:      "uint",
	KindUnknown:   "unknown",
}

func (k ScalarKind) String() string {
	if int(k) < len(scalarKindNames) {
		return scalarKindNames[k]
	}
	return fmt.Sprintf("ScalarKind(%d)", uint8(k))
}

// ScalarValue is a single engine scalar. The zero value is null.
type ScalarValue struct {
	kind     ScalarKind
	boolean  bool
	integer  int64
	unsigned uint64
	float    float64
	str      string
	bytes    []byte
	typeCode uint8
}

func Null() ScalarValue              { return ScalarValue{kind: KindNull} }
func Boolean(b bool) ScalarValue     { return ScalarValue{kind: KindBoolean, boolean: b} }
func Counter(n int64) ScalarValue    { return ScalarValue{kind: KindCounter, integer: n} }
func F64(f float64) ScalarValue      { return ScalarValue{kind: KindF64, float: f} }
func Int(n int64) ScalarValue        { return ScalarValue{kind: KindInt, integer: n} }
func Str(s string) ScalarValue       { return ScalarValue{kind: KindStr, str: s} }
func Timestamp(ms int64) ScalarValue { return ScalarValue{kind: KindTimestamp, integer: ms} }
func Uint(n uint64) ScalarValue      { return ScalarValue{kind: KindUint, unsigned: n} }

// Bytes takes ownership of b.
func Bytes(b []byte) ScalarValue {
	return ScalarValue{kind: KindBytes, bytes: b}
}

// Unknown is a value whose type code this engine version does not recognize.
// Takes ownership of b.
func Unknown(typeCode uint8, b []byte) ScalarValue {
	return ScalarValue{kind: KindUnknown, typeCode: typeCode, bytes: b}
}

// Kind returns the scalar's kind.
func (s ScalarValue) Kind() ScalarKind { return s.kind }

func (s ScalarValue) AsBool() (bool, bool) { return s.boolean, s.kind == KindBoolean }

// AsBytes returns the payload of a bytes scalar without copying.
func (s ScalarValue) AsBytes() ([]byte, bool) { return s.bytes, s.kind == KindBytes }

func (s ScalarValue) AsCounter() (int64, bool)   { return s.integer, s.kind == KindCounter }
func (s ScalarValue) AsF64() (float64, bool)     { return s.float, s.kind == KindF64 }
func (s ScalarValue) AsInt() (int64, bool)       { return s.integer, s.kind == KindInt }
func (s ScalarValue) AsStr() (string, bool)      { return s.str, s.kind == KindStr }
func (s ScalarValue) AsTimestamp() (int64, bool) { return s.integer, s.kind == KindTimestamp }
func (s ScalarValue) AsUint() (uint64, bool)     { return s.unsigned, s.kind == KindUint }

// AsUnknown returns the type code and raw bytes of an unknown scalar.
func (s ScalarValue) AsUnknown() (uint8, []byte, bool) {
	return s.typeCode, s.bytes, s.kind == KindUnknown
}

// Equal compares kind and payload. F64 uses ==, so NaN is never equal.
func (s ScalarValue) Equal(other ScalarValue) bool {
	if s.kind != other.kind {
		return false
	}
	switch s.kind {
	case KindNull:
		return true
	case KindBoolean:
		return s.boolean == other.boolean
	case KindBytes:
		return bytes.Equal(s.bytes, other.bytes)
	case KindCounter, KindInt, KindTimestamp:
		return s.integer == other.integer
	case KindF64:
		return s.float == other.float
	case KindStr:
		return s.str == other.str
	case KindUint:
		return s.unsigned == other.unsigned
	case KindUnknown:
		return s.typeCode == other.typeCode && bytes.Equal(s.bytes, other.bytes)
	}
	return false
}

func (s ScalarValue) String() string {
	switch s.kind {
	case KindNull:
		return "null"
	case KindBoolean:
		return fmt.Sprintf("%t", s.boolean)
	case KindBytes:
		return fmt.Sprintf("bytes(%x)", s.bytes)
	case KindCounter:
		return fmt.Sprintf("counter(%d)", s.integer)
	case KindF64:
		return fmt.Sprintf("%g", s.float)
	case KindInt:
		return fmt.Sprintf("%d", s.integer)
	case KindStr:
		return fmt.Sprintf("%q", s.str)
	case KindTimestamp:
		return fmt.Sprintf("timestamp(%d)", s.integer)
	case KindUint:
		return fmt.Sprintf("uint(%d)", s.unsigned)
	case KindUnknown:
		return fmt.Sprintf("unknown(%d, %x)", s.typeCode, s.bytes)
	}
	return s.kind.String()
}

// ObjType is the type of a container object.
type ObjType uint8

const (
	ObjMap ObjType = iota
	ObjList
	ObjText
	ObjTable
)

var objTypeNames = [...]string{
	ObjMap:   "map",
	ObjList:  "list",
	ObjText:  "text",
	ObjTable: "table",
}

func (t ObjType) String() string {
	if int(t) < len(objTypeNames) {
		return objTypeNames[t]
	}
	return fmt.Sprintf("ObjType(%d)", uint8(t))
}

// ParseObjType maps "map", "list", "text" or "table" to an ObjType.
func ParseObjType(s string) (ObjType, error) {
	for i, name := range objTypeNames {
		if name == s {
			return ObjType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown object type %q", s)
}

// Value is what a document query returns: a scalar, or a reference to a
// container object of some ObjType.
type Value struct {
	object  bool
	objType ObjType
	scalar  ScalarValue
}

// Scalar wraps s as a Value.
func Scalar(s ScalarValue) Value {
	return Value{scalar: s}
}

// Object returns a Value referencing a container of type t.
func Object(t ObjType) Value {
	return Value{object: true, objType: t}
}

// IsObject reports whether v references a container.
func (v Value) IsObject() bool { return v.object }

// ObjType returns the container type of an object value.
func (v Value) ObjType() (ObjType, bool) { return v.objType, v.object }

// Scalar returns the scalar payload of a scalar value.
func (v Value) Scalar() (ScalarValue, bool) { return v.scalar, !v.object }

// Equal compares two values structurally.
func (v Value) Equal(other Value) bool {
	if v.object != other.object {
		return false
	}
	if v.object {
		return v.objType == other.objType
	}
	return v.scalar.Equal(other.scalar)
}

func (v Value) String() string {
	if v.object {
		return "object(" + v.objType.String() + ")"
	}
	return v.scalar.String()
}
