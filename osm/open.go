package osm

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Open loads the file at path, choosing the PBF decoder for ".pbf" files and
// the XML parser for anything else.
func Open(path string, logger *zap.Logger) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: KindIO, Err: err}
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".pbf") {
		return LoadPBF(f, logger)
	}
	return ParseXML(f, logger)
}
