package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atarifoundry/spartatr/atascii"
	"github.com/atarifoundry/spartatr/cliutil"
)

var (
	convertToUTF8    bool
	convertToATASCII bool
	convertSevenBit  bool
	convertForce     bool
)

// convertCmd represents the convert command: a standalone ATASCII<->UTF-8
// transcoder over host files, independent of any image. This is the
// text-transcoder component (C6) exposed directly, for callers who already
// have a file on the host and don't need an image in the loop.
var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "transcode a file between ATASCII and UTF-8",
	Long: `Convert a file's content between ATASCII and UTF-8. Pass "-" for
<input> to read from stdin, or "-" for <output> to write to stdout.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runConvert(args[0], args[1]); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(convertCmd)
	convertCmd.Flags().BoolVar(&convertToUTF8, "to-utf8", false, "convert ATASCII input to UTF-8")
	convertCmd.Flags().BoolVar(&convertToATASCII, "to-atascii", false, "convert UTF-8 input to ATASCII")
	convertCmd.Flags().BoolVar(&convertSevenBit, "seven-bit", false, "with --to-utf8, strip the high bit instead of encoding it")
	convertCmd.Flags().BoolVarP(&convertForce, "force", "f", false, "overwrite an existing output file")
}

// runConvert performs the actual convert logic.
func runConvert(inPath, outPath string) error {
	if convertToUTF8 == convertToATASCII {
		return fmt.Errorf("exactly one of --to-utf8 or --to-atascii is required")
	}

	in, err := cliutil.FileContentsOrStdIn(inPath)
	if err != nil {
		return err
	}

	var out []byte
	if convertToUTF8 {
		out, err = atascii.DecodeATASCIIToUTF8(in, convertSevenBit)
	} else {
		out, err = atascii.EncodeUTF8ToATASCII(in)
	}
	if err != nil {
		return err
	}
	return cliutil.WriteOutput(outPath, out, convertForce)
}
