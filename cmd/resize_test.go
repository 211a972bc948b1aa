package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atarifoundry/spartatr/atr"
	"github.com/atarifoundry/spartatr/spartafs"
)

func TestResizeGrowsAndPreservesContent(t *testing.T) {
	hostRoot := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(hostRoot, "A.TXT"), []byte("hello"), 0666))

	imagePath := filepath.Join(t.TempDir(), "disk.atr")
	buildSectorSize, buildSectorCount, buildBootAddr, buildToATASCII, buildForce = 128, 720, 0x2000, false, true
	require.NoError(t, runBuild(imagePath, hostRoot))

	resizeReencode, resizeSevenBit = false, false
	require.NoError(t, runResize(imagePath, "1040"))
	require.FileExists(t, imagePath+".bak")

	img, err := atr.Load(imagePath)
	require.NoError(t, err)
	require.Equal(t, 1040, img.SectorCount)

	root, err := spartafs.RootMap(img)
	require.NoError(t, err)
	entry, err := spartafs.Resolve(img, root, "A.TXT")
	require.NoError(t, err)
	data, err := spartafs.ReadChain(img, entry.FirstMap, entry.Size)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))
}

func TestResizeRejectsShrink(t *testing.T) {
	hostRoot := t.TempDir()
	imagePath := filepath.Join(t.TempDir(), "disk.atr")
	buildSectorSize, buildSectorCount, buildBootAddr, buildToATASCII, buildForce = 128, 720, 0x2000, false, true
	require.NoError(t, runBuild(imagePath, hostRoot))

	resizeReencode = false
	require.Error(t, runResize(imagePath, "10"))
}
