package tagged

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes conversion and access errors.
type ErrorCode string

const (
	// ErrCodeInvalidValueType indicates a conversion to a type other than
	// the active variant.
	ErrCodeInvalidValueType ErrorCode = "INVALID_VALUE_TYPE"

	// ErrCodeInvalidObjID indicates a required owning-object id was absent.
	ErrCodeInvalidObjID ErrorCode = "INVALID_OBJ_ID"

	// ErrCodeExclusiveAccess indicates a mutation on an aliased handle.
	ErrCodeExclusiveAccess ErrorCode = "EXCLUSIVE_ACCESS_UNAVAILABLE"

	// ErrCodeReleased indicates use of a handle after its release.
	ErrCodeReleased ErrorCode = "HANDLE_RELEASED"
)

// Error is the error type for every failure in the value layer.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Expected names the requested type (InvalidValueType only).
	Expected string

	// Unexpected names the tag actually present (InvalidValueType only).
	Unexpected string

	got ValType
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeInvalidValueType:
		return fmt.Sprintf("%s: expected %s, got %s", e.Code, e.Expected, e.Unexpected)
	case ErrCodeInvalidObjID:
		return fmt.Sprintf("%s: owning object id is absent", e.Code)
	case ErrCodeExclusiveAccess:
		return fmt.Sprintf("%s: handle has other live aliases", e.Code)
	case ErrCodeReleased:
		return fmt.Sprintf("%s: handle already released", e.Code)
	}
	return string(e.Code)
}

// Sentinel errors without type details.
var (
	ErrInvalidObjID    = &Error{Code: ErrCodeInvalidObjID}
	ErrExclusiveAccess = &Error{Code: ErrCodeExclusiveAccess}
	ErrReleased        = &Error{Code: ErrCodeReleased}
)

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsInvalidValueType reports whether err is a type mismatch, including
// the no-value case. Uses errors.As to handle wrapped errors.
func IsInvalidValueType(err error) bool { return hasCode(err, ErrCodeInvalidValueType) }

// IsInvalidObjID reports whether err is a missing owning-object id.
func IsInvalidObjID(err error) bool { return hasCode(err, ErrCodeInvalidObjID) }

// IsExclusiveAccess reports whether err is a denied mutation on an aliased handle.
func IsExclusiveAccess(err error) bool { return hasCode(err, ErrCodeExclusiveAccess) }

// IsReleased reports whether err is a use-after-release.
func IsReleased(err error) bool { return hasCode(err, ErrCodeReleased) }

// IsNoValue reports whether err is a conversion attempted where no value
// was present at all.
func IsNoValue(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrCodeInvalidValueType && e.got == Void
	}
	return false
}

// target enumerates the types a conversion can produce.
type target uint8

const (
	targetActorID target = iota
	targetBool
	targetBytes
	targetChange
	targetChangeView
	targetChangeHash
	targetCounter
	targetDoc
	targetF64
	targetInt
	targetObjType
	targetScalar
	targetStr
	targetSyncHave
	targetSyncMessage
	targetSyncState
	targetTimestamp
	targetUint
	targetUnknown
	targetValue
	targetValueObjID
	numTargets
)

var targetNames = [numTargets]string{
	targetActorID:     "*tagged.ActorIDView",
	targetBool:        "bool",
	targetBytes:       "[]byte",
	targetChange:      "*am.Change",
	targetChangeView:  "*tagged.ChangeView",
	targetChangeHash:  "am.ChangeHash",
	targetCounter:     "counter int64",
	targetDoc:         "*am.Doc",
	targetF64:         "float64",
	targetInt:         "int64",
	targetObjType:     "am.ObjType",
	targetScalar:      "am.ScalarValue",
	targetStr:         "string",
	targetSyncHave:    "*am.Have",
	targetSyncMessage: "*am.Message",
	targetSyncState:   "*am.SyncState",
	targetTimestamp:   "timestamp int64",
	targetUint:        "uint64",
	targetUnknown:     "tagged.Unknown",
	targetValue:       "am.Value",
	targetValueObjID:  "(am.Value, am.ObjID)",
}

// mismatches holds one preallocated error per (target, tag) pair so the
// failure path of a conversion never allocates.
var mismatches = func() (table [numTargets][numValTypeBits + 1]*Error) {
	for tg := range numTargets {
		for s := range numValTypeBits + 1 {
			got := Default
			if s < numValTypeBits {
				got = 1 << s
			}
			table[tg][s] = &Error{
				Code:       ErrCodeInvalidValueType,
				Expected:   targetNames[tg],
				Unexpected: got.String(),
				got:        got,
			}
		}
	}
	return table
}()

// mismatch returns the preallocated error for converting v to tg.
func mismatch(tg target, v Value) error {
	return mismatches[tg][slot(TypeOf(v))]
}
