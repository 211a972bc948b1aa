// Package cmd implements the spartatr command-line tool: a Cobra command
// tree over the atr/spartafs/atascii/hostfs core. Every command delegates
// to a package-level runXxx(args...) error function, prints the error to
// stderr, and exits non-zero, following the teacher's cmd/catalog.go shape.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atarifoundry/spartatr/cliutil"
)

// globals holds process-wide CLI settings threaded through commands, in
// place of reading them back out of the environment (spec.md §5: the core
// reads no environment variables).
var globals cliutil.Globals

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "spartatr",
	Short: "Read, build, and convert SpartaDOS/BW-DOS Atari 8-bit disk images",
	Long: `spartatr works with ATR disk image files containing a
SpartaDOS/BW-DOS filesystem: extracting files, building a fresh image from
a host directory tree, adding files to an existing image, resizing images,
converting sector size, and transcoding file content between ATASCII and
UTF-8.`,
}

// Execute adds all child commands to the root command and runs it. This is
// called by main.main(); it only needs to happen once.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&globals.Verbose, "verbose", "v", false, "print progress information for multi-file operations")
}
