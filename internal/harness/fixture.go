package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Fixture is a named list of items to build.
type Fixture struct {
	// Name uniquely identifies this fixture and names its golden file.
	Name string `yaml:"name" json:"name"`

	// Description explains what this fixture exercises.
	Description string `yaml:"description" json:"description"`

	// Items are built in order.
	Items []ItemSpec `yaml:"items" json:"items"`
}

// ItemSpec describes one item. See the package documentation for which
// field combinations are valid.
type ItemSpec struct {
	Name  string     `yaml:"name" json:"name"`
	Key   *string    `yaml:"key,omitempty" json:"key,omitempty"`
	Pos   *uint64    `yaml:"pos,omitempty" json:"pos,omitempty"`
	Obj   string     `yaml:"obj,omitempty" json:"obj,omitempty"`
	Value *ValueSpec `yaml:"value,omitempty" json:"value,omitempty"`
}

// ValueSpec describes one tagged value. Type is a value type name such as
// "int" or "sync_state"; the remaining fields apply to particular types.
type ValueSpec struct {
	Type string `yaml:"type" json:"type"`

	// Value is the scalar payload, or the hex of an actor id or change hash.
	Value string `yaml:"value,omitempty" json:"value,omitempty"`

	// TypeCode is the type code of an unknown scalar.
	TypeCode uint8 `yaml:"type_code,omitempty" json:"type_code,omitempty"`

	// Change fields; Actor is also the actor of a doc.
	Actor   string   `yaml:"actor,omitempty" json:"actor,omitempty"`
	Seq     uint64   `yaml:"seq,omitempty" json:"seq,omitempty"`
	StartOp uint64   `yaml:"start_op,omitempty" json:"start_op,omitempty"`
	Time    int64    `yaml:"time,omitempty" json:"time,omitempty"`
	Message string   `yaml:"message,omitempty" json:"message,omitempty"`
	Deps    []string `yaml:"deps,omitempty" json:"deps,omitempty"`

	// Changes are applied to a doc or carried by a sync message.
	Changes []ValueSpec `yaml:"changes,omitempty" json:"changes,omitempty"`

	// Heads and Need are hex change hashes of sync artifacts.
	Heads []string `yaml:"heads,omitempty" json:"heads,omitempty"`
	Need  []string `yaml:"need,omitempty" json:"need,omitempty"`
}

// LoadFixture reads a fixture from a .yaml, .yml or .cue file.
// Unknown YAML fields are rejected.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var f *Fixture
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		f, err = parseYAML(data)
	case ".cue":
		f, err = parseCUE(data, path)
	default:
		return nil, fmt.Errorf("unsupported fixture extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	if err := validateFixture(f); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}
	return f, nil
}

func parseYAML(data []byte) (*Fixture, error) {
	var f Fixture
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &f, nil
}

// parseCUE evaluates a CUE file whose top level is a fixture. Concrete
// values are required; constraints are resolved before decoding.
func parseCUE(data []byte, filename string) (*Fixture, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile CUE: %w", err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("CUE fixture is not concrete: %w", err)
	}

	var f Fixture
	if err := v.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode CUE: %w", err)
	}
	return &f, nil
}

func validateFixture(f *Fixture) error {
	if f.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(f.Items) == 0 {
		return fmt.Errorf("items list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(f.Items))
	for i, it := range f.Items {
		if it.Name == "" {
			return fmt.Errorf("items[%d]: name is required", i)
		}
		if seen[it.Name] {
			return fmt.Errorf("items[%d]: duplicate name %q", i, it.Name)
		}
		seen[it.Name] = true

		if it.Key != nil && it.Pos != nil {
			return fmt.Errorf("items[%d]: key and pos are mutually exclusive", i)
		}
		if (it.Key != nil || it.Pos != nil) && it.Obj == "" {
			return fmt.Errorf("items[%d]: an index requires obj", i)
		}
		if it.Value != nil && it.Value.Type == "" {
			return fmt.Errorf("items[%d].value: type is required", i)
		}
	}
	return nil
}
