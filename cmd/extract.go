package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atarifoundry/spartatr/atascii"
	"github.com/atarifoundry/spartatr/atr"
	"github.com/atarifoundry/spartatr/hostfs"
	"github.com/atarifoundry/spartatr/spartafs"
)

var (
	extractToUTF8   bool
	extractSevenBit bool
)

// extractCmd represents the extract command, used to pull a file or an
// entire directory tree out of an image and onto the host filesystem.
var extractCmd = &cobra.Command{
	Use:     "extract <image.atr> <atari-path> <host-out>",
	Aliases: []string{"x"},
	Short:   "extract a file or directory tree from an image",
	Long: `Extract a single file, or an entire directory tree, from a
SpartaDOS/BW-DOS image onto the host filesystem.

Pass "/" as <atari-path> to extract the whole volume.`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runExtract(args[0], args[1], args[2]); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(extractCmd)
	extractCmd.Flags().BoolVar(&extractToUTF8, "to-utf8", false, "transcode ATASCII file content to UTF-8 while extracting")
	extractCmd.Flags().BoolVar(&extractSevenBit, "seven-bit", false, "with --to-utf8, strip the high bit instead of encoding it")
}

// runExtract performs the actual extract logic.
func runExtract(imagePath, atariPath, hostOut string) error {
	img, err := atr.Load(imagePath)
	if err != nil {
		return err
	}
	root, err := spartafs.RootMap(img)
	if err != nil {
		return err
	}
	opts := hostfs.ExtractOptions{ToUTF8: extractToUTF8, SevenBit: extractSevenBit}

	firstMap, size, isDir := root, -1, true
	if atariPath != "/" && atariPath != "" {
		entry, err := spartafs.Resolve(img, root, atariPath)
		if err != nil {
			return err
		}
		firstMap, size, isDir = entry.FirstMap, entry.Size, entry.IsDir
	}

	if isDir {
		if err := os.MkdirAll(hostOut, 0777); err != nil {
			return fmt.Errorf("creating %s: %w", hostOut, err)
		}
		if globals.Verbose {
			fmt.Fprintf(os.Stderr, "extracting %s to %s\n", imagePath, hostOut)
		}
		return hostfs.ExtractTree(img, firstMap, hostOut, opts)
	}

	data, _ := spartafs.ReadChain(img, firstMap, size)
	if opts.ToUTF8 {
		data, err = atascii.DecodeATASCIIToUTF8(data, opts.SevenBit)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(hostOut, data, 0666)
}
