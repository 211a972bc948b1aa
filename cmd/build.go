package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atarifoundry/spartatr/cliutil"
	"github.com/atarifoundry/spartatr/hostfs"
	"github.com/atarifoundry/spartatr/spartafs"
)

var (
	buildSectorSize  int
	buildSectorCount int
	buildBootAddr    uint16
	buildToATASCII   bool
	buildForce       bool
)

// buildCmd represents the build command, used to pack a host directory
// tree into a brand-new SpartaDOS/BW-DOS image.
var buildCmd = &cobra.Command{
	Use:   "build <output.atr> <host-dir>",
	Short: "build a fresh SpartaDOS/BW-DOS image from a host directory tree",
	Long: `Build a brand-new SpartaDOS/BW-DOS image from a host directory
tree: subdirectories and files are walked depth-first, directories before
their own contents, and packed into a fresh image of the given sector size
and count.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBuild(args[0], args[1]); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(buildCmd)
	buildCmd.Flags().IntVar(&buildSectorSize, "sector-size", 256, "sector size in bytes (128 or 256)")
	buildCmd.Flags().IntVar(&buildSectorCount, "sector-count", 720, "total sector count")
	buildCmd.Flags().Uint16Var(&buildBootAddr, "boot-addr", 0x2000, "boot load address stamped into the boot record")
	buildCmd.Flags().BoolVar(&buildToATASCII, "to-atascii", false, "transcode host file content from UTF-8 to ATASCII while ingesting")
	buildCmd.Flags().BoolVarP(&buildForce, "force", "f", false, "overwrite an existing output file")
}

// runBuild performs the actual build logic.
func runBuild(outPath, hostDir string) error {
	files, err := hostfs.WalkDir(hostDir)
	if err != nil {
		return err
	}
	if buildToATASCII {
		if err := transcodeFileListToATASCII(files); err != nil {
			return err
		}
	}
	if globals.Verbose {
		fmt.Fprintf(os.Stderr, "packing %d entries from %s\n", len(files), hostDir)
	}

	img, err := spartafs.Build(buildSectorSize, buildSectorCount, buildBootAddr, files)
	if err != nil {
		return err
	}
	return cliutil.WriteOutput(outPath, img.Encode(), buildForce)
}
