package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/amitem/internal/harness"
)

// NewTagsCommand creates the tags command.
func NewTagsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Print the numeric value and index type codes",
		Long: `Print every value type and index type with its numeric code.

The codes are stable across versions; foreign callers may hard-code them.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTags(rootOpts, cmd)
		},
	}
	return cmd
}

func runTags(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	entries := harness.TagEntries()

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}

	rows := [][]string{{"KIND", "NAME", "CODE", "HEX"}}
	for _, e := range entries {
		rows = append(rows, []string{e.Kind, e.Name, fmt.Sprint(e.Code), fmt.Sprintf("0x%05x", e.Code)})
	}
	return formatter.Success(rows)
}
