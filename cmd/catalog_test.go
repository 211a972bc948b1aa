package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogListsRootEntries(t *testing.T) {
	hostRoot := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(hostRoot, "A.TXT"), []byte("a"), 0666))
	require.NoError(t, os.Mkdir(filepath.Join(hostRoot, "SUB"), 0777))

	imagePath := filepath.Join(t.TempDir(), "disk.atr")
	buildSectorSize, buildSectorCount, buildBootAddr, buildToATASCII, buildForce = 256, 720, 0x2000, false, true
	require.NoError(t, runBuild(imagePath, hostRoot))

	require.NoError(t, runCatalog([]string{imagePath}))
	require.NoError(t, runCatalog([]string{imagePath, "SUB"}))
	require.Error(t, runCatalog([]string{imagePath, "A.TXT"}))
}
