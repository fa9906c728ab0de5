package abi

import (
	"bytes"
	"math"
)

// Failure sentinels.
const (
	IntSentinel  int64   = math.MaxInt64
	UintSentinel uint64  = math.MaxUint64
	F64Sentinel  float64 = math.MaxFloat64
	PosNotFound  uint64  = math.MaxUint64
)

// ByteSpan is a borrowed view of bytes. The zero value is the empty span.
type ByteSpan struct {
	Src []byte
}

// Str returns a span over the bytes of s.
func Str(s string) ByteSpan {
	if s == "" {
		return ByteSpan{}
	}
	return ByteSpan{Src: []byte(s)}
}

func (s ByteSpan) Count() int            { return len(s.Src) }
func (s ByteSpan) IsEmpty() bool         { return len(s.Src) == 0 }
func (s ByteSpan) String() string        { return string(s.Src) }
func (s ByteSpan) Equal(o ByteSpan) bool { return bytes.Equal(s.Src, o.Src) }

// UnknownValue is a scalar the engine carries without interpreting.
type UnknownValue struct {
	Bytes    ByteSpan
	TypeCode uint8
}

// IsZero reports whether u is the failure sentinel.
func (u UnknownValue) IsZero() bool {
	return u.Bytes.IsEmpty() && u.TypeCode == 0
}
