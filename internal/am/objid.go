package am

import (
	"fmt"
	"strconv"
	"strings"
)

// ObjID identifies a container object within a document.
// The zero value is the document root.
type ObjID struct {
	counter uint64
	actor   ActorID
}

// Root is the document's root map.
var Root = ObjID{}

// NewObjID returns the id of the object created by op counter on actor.
func NewObjID(counter uint64, actor ActorID) ObjID {
	return ObjID{counter: counter, actor: actor}
}

// ParseObjID parses "_root" or "counter@actorhex".
func ParseObjID(s string) (ObjID, error) {
	if s == "_root" {
		return Root, nil
	}
	counterPart, actorPart, ok := strings.Cut(s, "@")
	if !ok {
		return ObjID{}, fmt.Errorf("parse object id %q: missing @", s)
	}
	counter, err := strconv.ParseUint(counterPart, 10, 64)
	if err != nil {
		return ObjID{}, fmt.Errorf("parse object id %q: %w", s, err)
	}
	actor, err := ParseActorID(actorPart)
	if err != nil {
		return ObjID{}, fmt.Errorf("parse object id %q: %w", s, err)
	}
	return NewObjID(counter, actor), nil
}

// IsRoot reports whether id is the document root.
func (id ObjID) IsRoot() bool {
	return id.counter == 0 && id.actor.IsZero()
}

// Counter returns the op counter that created the object; 0 for root.
func (id ObjID) Counter() uint64 { return id.counter }

// Actor returns the actor that created the object; zero for root.
func (id ObjID) Actor() ActorID { return id.actor }

func (id ObjID) String() string {
	if id.IsRoot() {
		return "_root"
	}
	return strconv.FormatUint(id.counter, 10) + "@" + id.actor.String()
}
