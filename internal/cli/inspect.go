package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/amitem/internal/harness"
	"github.com/roach88/amitem/internal/item"
	"github.com/roach88/amitem/internal/tagged"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Mask      string
	Canonical bool
}

// InspectResult is the JSON payload of the inspect command.
type InspectResult struct {
	Fixture string           `json:"fixture"`
	Mask    string           `json:"mask,omitempty"`
	Items   []map[string]any `json:"items"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect <fixture>",
		Short: "Build a fixture's items and describe them",
		Long: `Load a YAML or CUE fixture, build each item into a handle, and describe
it through the boundary functions: type tag, index, owning object and
extracted value.

Example:
  amitem inspect ./testdata/scalars.yaml
  amitem inspect --mask "int|uint" ./testdata/scalars.yaml
  amitem inspect --canonical ./testdata/sync.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Mask, "mask", "", "only show items whose value type matches this mask")
	cmd.Flags().BoolVar(&opts.Canonical, "canonical", false, "print the canonical JSON rendering used by golden files")

	return cmd
}

func runInspect(opts *InspectOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	mask := tagged.Default
	if opts.Mask != "" {
		var err error
		if mask, err = tagged.ParseMask(opts.Mask); err != nil {
			return outputInspectError(formatter, ErrCodeInvalidMask, err)
		}
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return outputInspectError(formatter, ErrCodeNotFound, fmt.Errorf("fixture not found: %s", path))
	}

	f, err := harness.LoadFixture(path)
	if err != nil {
		return outputInspectError(formatter, ErrCodeFixture, err)
	}
	slog.Debug("fixture loaded", "name", f.Name, "items", len(f.Items))

	handles, err := harness.Build(f)
	if err != nil {
		_ = formatter.Error(ErrCodeBuildFailed, err.Error(), nil)
		return WrapExitError(ExitFailure, ErrCodeBuildFailed, err)
	}
	defer harness.ReleaseAll(handles)

	names := f.Names()
	var keptNames []string
	var kept []*item.Handle
	for i, h := range handles {
		if mask == tagged.Default || h.ValType().Matches(mask) {
			keptNames = append(keptNames, names[i])
			kept = append(kept, h)
		}
	}
	formatter.VerboseLog("%d of %d item(s) selected", len(kept), len(handles))

	if opts.Canonical {
		out, err := harness.Render(f.Name, keptNames, kept)
		if err != nil {
			return outputInspectError(formatter, ErrCodeRenderFailed, err)
		}
		return formatter.Success(string(out))
	}

	result := InspectResult{Fixture: f.Name, Items: make([]map[string]any, len(kept))}
	if mask != tagged.Default {
		result.Mask = mask.String()
	}
	for i, h := range kept {
		d := harness.Describe(h)
		d["name"] = keptNames[i]
		result.Items[i] = d
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	rows := [][]string{{"NAME", "VAL_TYPE", "INDEX", "OBJ", "VALUE"}}
	for _, d := range result.Items {
		rows = append(rows, []string{
			fmt.Sprint(d["name"]),
			fmt.Sprint(d["val_type"]),
			indexCell(d),
			cell(d, "obj"),
			cell(d, "value"),
		})
	}
	return formatter.Success(rows)
}

func indexCell(d map[string]any) string {
	if k, ok := d["key"]; ok {
		return fmt.Sprintf("key %q", k)
	}
	if p, ok := d["pos"]; ok {
		return fmt.Sprintf("pos %v", p)
	}
	return "-"
}

func cell(d map[string]any, key string) string {
	if v, ok := d[key]; ok {
		return fmt.Sprint(v)
	}
	return "-"
}

// outputInspectError reports a command-level error (exit code 2).
func outputInspectError(formatter *OutputFormatter, code string, err error) error {
	_ = formatter.Error(code, err.Error(), nil)
	return WrapExitError(ExitCommandError, code, err)
}
