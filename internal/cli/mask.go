package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/amitem/internal/tagged"
)

// MaskResult is the output of the mask command.
type MaskResult struct {
	Mask  uint32   `json:"mask"`
	Hex   string   `json:"hex"`
	Names []string `json:"names"`
}

// NewMaskCommand creates the mask command.
func NewMaskCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mask <name>...",
		Short: "Combine value type names into a multi-select mask",
		Long: `Combine value type names into the numeric mask a foreign caller tests
with tag & mask != 0.

Names may be given as separate arguments or joined with "|" or ",".

Example:
  amitem mask int uint counter timestamp
  amitem mask "sync_have|sync_message|sync_state"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMask(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runMask(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	mask, err := tagged.ParseMask(strings.Join(args, "|"))
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidMask, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeInvalidMask, err)
	}

	result := MaskResult{
		Mask:  uint32(mask),
		Hex:   fmt.Sprintf("0x%05x", uint32(mask)),
		Names: strings.Split(mask.String(), "|"),
	}
	formatter.VerboseLog("parsed %d name(s) into %s", len(args), result.Hex)

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf("%d (%s) %s", result.Mask, result.Hex, mask))
}
