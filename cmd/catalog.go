package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atarifoundry/spartatr/atr"
	"github.com/atarifoundry/spartatr/spartafs"
)

// catalogCmd represents the catalog command, used to list the contents of
// a directory inside an image.
var catalogCmd = &cobra.Command{
	Use:     "catalog <image.atr> [atari-dir]",
	Aliases: []string{"cat", "ls"},
	Short:   "print a list of files",
	Long:    `Catalog an image's root directory, or a named subdirectory.`,
	Args:    cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCatalog(args); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(catalogCmd)
}

// runCatalog performs the actual catalog logic.
func runCatalog(args []string) error {
	img, err := atr.Load(args[0])
	if err != nil {
		return err
	}
	dirMap, err := spartafs.RootMap(img)
	if err != nil {
		return err
	}
	if len(args) == 2 {
		entry, err := spartafs.Resolve(img, dirMap, args[1])
		if err != nil {
			return err
		}
		if !entry.IsDir {
			return fmt.Errorf("%q is not a directory", args[1])
		}
		dirMap = entry.FirstMap
	}

	entries, _ := spartafs.ReadDir(img, dirMap)
	for _, e := range entries {
		kind := byte(' ')
		if e.IsDir {
			kind = 'D'
		}
		fmt.Printf("%c %7d  %s\n", kind, e.Size, e.Name)
	}
	return nil
}
