package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atarifoundry/spartatr/atr"
	"github.com/atarifoundry/spartatr/cliutil"
)

var (
	resizeReencode bool
	resizeSevenBit bool
)

// resizeCmd represents the resize command, used to grow an image to a
// larger sector count.
var resizeCmd = &cobra.Command{
	Use:   "resize <image.atr> <new-sector-count>",
	Short: "grow an image to a larger sector count",
	Long: `Grow an existing image to a new sector count, zero-filling the
added space. Images cannot be shrunk: there is no way to know which
now-excluded sectors hold live data without walking the filesystem, and
silently truncating would risk discarding it.

Without --reencode this is a byte-faithful repack: existing sector content
is untouched. With --reencode, every file is extracted, round-tripped
through ATASCII<->UTF-8, and the filesystem is rebuilt from scratch at the
new size.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runResize(args[0], args[1]); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(resizeCmd)
	resizeCmd.Flags().BoolVar(&resizeReencode, "reencode", false, "round-trip file content through UTF-8 while rebuilding, instead of a byte-faithful repack")
	resizeCmd.Flags().BoolVar(&resizeSevenBit, "seven-bit", false, "with --reencode, strip the high bit instead of round-tripping it")
}

// runResize performs the actual resize logic.
func runResize(imagePath, countArg string) error {
	newCount, err := parseSectorCount(countArg)
	if err != nil {
		return err
	}

	img, err := atr.Load(imagePath)
	if err != nil {
		return err
	}

	grown, err := img.Resize(newCount)
	if err != nil {
		return err
	}
	if !resizeReencode {
		return cliutil.ReplaceWithBackup(imagePath, grown.Encode())
	}

	rebuilt, err := rebuildWithTranscode(img, img.SectorSize, newCount, true, resizeSevenBit)
	if err != nil {
		return err
	}
	return cliutil.ReplaceWithBackup(imagePath, rebuilt.Encode())
}
