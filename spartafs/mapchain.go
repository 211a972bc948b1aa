package spartafs

import (
	"log"
	"os"

	"github.com/atarifoundry/spartatr/atr"
	"github.com/atarifoundry/spartatr/ferrors"
)

// Logger receives warnings for non-fatal read-path anomalies: an unreadable
// map sector, a chain aborted at the traversal bound, and (from
// hostfs.ExtractTree) a file that reads back shorter than its directory
// size. Set to nil to silence warnings.
var Logger = log.New(os.Stderr, "", 0)

func warnf(format string, a ...interface{}) error {
	err := ferrors.Corruptionf(format, a...)
	if Logger != nil {
		Logger.Printf("warning: %v", err)
	}
	return err
}

// mapHeaderBytes is the size of a map sector's own header: next-map and
// prev-map pointers, 16 bits little-endian each.
const mapHeaderBytes = 4

// ReadChain follows the map-sector chain starting at firstMap, copying up
// to maxBytes of data-sector content into the returned slice. Traversal is
// bounded by the image's total sector count, so a cyclic or corrupt chain
// terminates instead of looping forever; when the bound is hit before the
// chain reaches a natural end (a zero or out-of-range next-map pointer),
// the partial data is returned alongside a non-fatal Corruption warning.
// Running out of maxBytes or reaching a natural chain end are both
// expected outcomes, not warnings: callers routinely pass a generous upper
// bound rather than an exact size (directory reads, for instance, don't
// know the stream length in advance).
func ReadChain(img *atr.Image, firstMap, maxBytes int) ([]byte, error) {
	data := make([]byte, 0, maxBytes)
	if firstMap == 0 {
		return data, nil
	}

	mapSector := firstMap
	visited := 0
	maxVisited := img.SectorCount

	for mapSector != 0 && len(data) < maxBytes && visited < maxVisited {
		visited++

		m, err := img.Sector(mapSector)
		if err != nil {
			return data, warnf("map sector %d: %v", mapSector, err)
		}

		for s := mapHeaderBytes; s < len(m) && len(data) < maxBytes; s += 2 {
			sec := int(m[s]) | int(m[s+1])<<8
			if sec == 0 || sec < 2 || sec > img.SectorCount {
				continue
			}
			secData, err := img.Sector(sec)
			if err != nil {
				continue
			}
			rem := maxBytes - len(data)
			if rem > len(secData) {
				rem = len(secData)
			}
			data = append(data, secData[:rem]...)
		}

		next := int(m[0]) | int(m[1])<<8
		if next == 0 || next < 2 || next > img.SectorCount {
			mapSector = 0
			break
		}
		mapSector = next
	}

	if mapSector != 0 && visited >= maxVisited {
		return data, warnf("map chain from sector %d aborted after visiting bound of %d sectors", firstMap, maxVisited)
	}
	return data, nil
}
