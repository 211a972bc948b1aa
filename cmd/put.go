package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/atarifoundry/spartatr/atr"
	"github.com/atarifoundry/spartatr/cliutil"
	"github.com/atarifoundry/spartatr/hostfs"
	"github.com/atarifoundry/spartatr/spartafs"
)

var putToATASCII bool

// putCmd represents the put command, used to add a host file or directory
// into an existing image: load, extract every existing file back out,
// append the new entries, and rebuild.
var putCmd = &cobra.Command{
	Use:   "put <image.atr> <host-path> [atari-dest]",
	Short: "add a host file or directory into an existing image",
	Long: `Add a file or directory tree from the host filesystem into an
existing image. The image is loaded, every existing file is walked back out
through the directory and map-chain reader, the new entries are appended,
and the whole filesystem is rebuilt at the same sector size and count. The
previous image is kept alongside the new one as a ".bak" file.

If atari-dest is omitted, the host path's base name is used, placed at the
volume root.`,
	Args: cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPut(args); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(putCmd)
	putCmd.Flags().BoolVar(&putToATASCII, "to-atascii", false, "transcode the added content from UTF-8 to ATASCII")
}

// runPut performs the actual put logic.
func runPut(args []string) error {
	imagePath, hostPath := args[0], args[1]
	atariDest := filepath.Base(hostPath)
	if len(args) == 3 {
		atariDest = args[2]
	}

	img, err := atr.Load(imagePath)
	if err != nil {
		return err
	}
	root, err := spartafs.RootMap(img)
	if err != nil {
		return err
	}
	bootAddr, err := spartafs.BootAddr(img)
	if err != nil {
		return err
	}

	files, err := hostfs.ImageToFileList(img, root, hostfs.RebuildOptions{})
	if err != nil {
		return err
	}

	added, err := hostfs.AddPath(hostPath, atariDest)
	if err != nil {
		return err
	}
	if putToATASCII {
		if err := transcodeFileListToATASCII(added); err != nil {
			return err
		}
	}
	files = append(files, added...)

	if globals.Verbose {
		fmt.Fprintf(os.Stderr, "adding %s as %s (%d total entries)\n", hostPath, atariDest, len(files))
	}

	rebuilt, err := spartafs.Build(img.SectorSize, img.SectorCount, bootAddr, files)
	if err != nil {
		return err
	}
	return cliutil.ReplaceWithBackup(imagePath, rebuilt.Encode())
}
