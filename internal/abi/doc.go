// Package abi is the foreign-call surface over items and handles.
//
// Every function here is total: it accepts nil handles, never returns an
// error, and reports failure with the sentinel for its return type.
//
//	pointer         nil
//	int64           IntSentinel (math.MaxInt64)
//	uint64          UintSentinel (math.MaxUint64)
//	float64         F64Sentinel (math.MaxFloat64)
//	bool            false
//	ByteSpan        the empty span
//	UnknownValue    the zero struct
//	position        PosNotFound (math.MaxUint64)
//	reference count 0
//
// Callers that need the reason for a failure use the item package.
package abi
