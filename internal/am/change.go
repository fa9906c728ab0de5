package am

import (
	"fmt"
	"math"
	"slices"
)

// OpAction is the kind of mutation an Op performs.
type OpAction uint8

const (
	OpPut OpAction = iota
	OpInsert
	OpDelete
	OpIncrement
	OpMakeObject
)

var opActionNames = [...]string{
	OpPut:        "put",
	OpInsert:     "insert",
	OpDelete:     "delete",
	OpIncrement:  "increment",
	OpMakeObject: "make_object",
}

func (a OpAction) String() string {
	if int(a) < len(opActionNames) {
		return opActionNames[a]
	}
	return fmt.Sprintf("OpAction(%d)", uint8(a))
}

// Op is one operation within a change. Key addresses map entries, Pos
// addresses sequence elements; which one applies depends on Obj's type.
type Op struct {
	Action OpAction
	Obj    ObjID
	Key    string
	Pos    uint64
	Value  Value
}

// ChangeParams describes a change before it is sealed and hashed.
type ChangeParams struct {
	Actor   ActorID
	Seq     uint64
	StartOp uint64
	Time    int64
	Message string
	Deps    []ChangeHash
	Ops     []Op
}

// Change is an immutable, content-addressed set of operations by one actor.
type Change struct {
	actor   ActorID
	seq     uint64
	startOp uint64
	time    int64
	message string
	deps    []ChangeHash
	ops     []Op
	encoded []byte
	hash    ChangeHash
}

// NewChange seals p into a Change. Deps are sorted; the hash covers every field.
func NewChange(p ChangeParams) (*Change, error) {
	if p.Actor.IsZero() {
		return nil, fmt.Errorf("new change: actor is required")
	}
	if p.Seq == 0 {
		return nil, fmt.Errorf("new change: seq must be >= 1")
	}
	deps := slices.Clone(p.Deps)
	slices.SortFunc(deps, ChangeHash.Compare)
	deps = slices.Compact(deps)

	c := &Change{
		actor:   p.Actor,
		seq:     p.Seq,
		startOp: p.StartOp,
		time:    p.Time,
		message: p.Message,
		deps:    deps,
		ops:     slices.Clone(p.Ops),
	}
	encoded, err := MarshalCanonical(c.canonical())
	if err != nil {
		return nil, fmt.Errorf("new change: %w", err)
	}
	c.encoded = encoded
	c.hash = hashWithDomain(DomainChange, encoded)
	return c, nil
}

func (c *Change) canonical() map[string]any {
	deps := make([]any, len(c.deps))
	for i, d := range c.deps {
		deps[i] = d.String()
	}
	ops := make([]any, len(c.ops))
	for i, op := range c.ops {
		ops[i] = map[string]any{
			"action": op.Action.String(),
			"obj":    op.Obj.String(),
			"key":    op.Key,
			"pos":    op.Pos,
			"value":  canonicalValue(op.Value),
		}
	}
	return map[string]any{
		"actor":    c.actor.String(),
		"seq":      c.seq,
		"start_op": c.startOp,
		"time":     c.time,
		"message":  c.message,
		"deps":     deps,
		"ops":      ops,
	}
}

// canonicalValue encodes v without floats or nulls. F64 payloads are
// carried as their IEEE-754 bit pattern.
func canonicalValue(v Value) map[string]any {
	if t, ok := v.ObjType(); ok {
		return map[string]any{"kind": "object", "obj_type": t.String()}
	}
	s, _ := v.Scalar()
	out := map[string]any{"kind": s.Kind().String()}
	switch s.Kind() {
	case KindBoolean:
		out["value"] = s.boolean
	case KindBytes:
		out["value"] = fmt.Sprintf("%x", s.bytes)
	case KindCounter, KindInt, KindTimestamp:
		out["value"] = s.integer
	case KindF64:
		out["value"] = math.Float64bits(s.float)
	case KindStr:
		out["value"] = s.str
	case KindUint:
		out["value"] = s.unsigned
	case KindUnknown:
		out["type_code"] = int(s.typeCode)
		out["value"] = fmt.Sprintf("%x", s.bytes)
	}
	return out
}

func (c *Change) Actor() ActorID   { return c.actor }
func (c *Change) Seq() uint64      { return c.seq }
func (c *Change) StartOp() uint64  { return c.startOp }
func (c *Change) Time() int64      { return c.time }
func (c *Change) Message() string  { return c.message }
func (c *Change) Hash() ChangeHash { return c.hash }

// MaxOp returns the counter of the change's last op, or StartOp when empty.
func (c *Change) MaxOp() uint64 {
	if len(c.ops) == 0 {
		return c.startOp
	}
	return c.startOp + uint64(len(c.ops)) - 1
}

// Len returns the number of ops.
func (c *Change) Len() int { return len(c.ops) }

// Deps returns a copy of the sorted dependency hashes.
func (c *Change) Deps() []ChangeHash { return slices.Clone(c.deps) }

// Ops returns a copy of the change's operations.
func (c *Change) Ops() []Op { return slices.Clone(c.ops) }

// Encoded returns the canonical bytes the hash was computed over.
func (c *Change) Encoded() []byte { return slices.Clone(c.encoded) }

// Equal compares changes by hash.
func (c *Change) Equal(other *Change) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.hash == other.hash
}
