package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atarifoundry/spartatr/atr"
	"github.com/atarifoundry/spartatr/spartafs"
)

func TestSectorSizeConvertsAndPreservesContent(t *testing.T) {
	hostRoot := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(hostRoot, "A.TXT"), []byte("hello"), 0666))

	imagePath := filepath.Join(t.TempDir(), "disk.atr")
	buildSectorSize, buildSectorCount, buildBootAddr, buildToATASCII, buildForce = 128, 720, 0x2000, false, true
	require.NoError(t, runBuild(imagePath, hostRoot))

	sectorSizeReencode, sectorSizeSevenBit = false, false
	require.NoError(t, runSectorSize(imagePath, "256"))

	img, err := atr.Load(imagePath)
	require.NoError(t, err)
	require.Equal(t, 256, img.SectorSize)

	root, err := spartafs.RootMap(img)
	require.NoError(t, err)
	entry, err := spartafs.Resolve(img, root, "A.TXT")
	require.NoError(t, err)
	data, err := spartafs.ReadChain(img, entry.FirstMap, entry.Size)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))
}

func TestSectorSizeRejectsInvalidSize(t *testing.T) {
	_, err := parseSectorSize("100")
	require.Error(t, err)
}
