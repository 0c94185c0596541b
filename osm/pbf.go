package osm

import (
	"fmt"
	"io"
	"runtime"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/qedus/osmpbf"
	"go.uber.org/zap"
)

// LoadPBF decodes an OSM PBF stream into a Store. Relations are ignored,
// just as in the XML parser.
func LoadPBF(r io.Reader, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	src := &trackingReader{r: r}
	d := osmpbf.NewDecoder(src)

	// use more memory from the start, it is faster
	d.SetBufferSize(osmpbf.MaxBlobSize)

	// start decoding with several goroutines, it is faster
	if err := d.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return nil, pbfError(src, err)
	}

	var nc, wc, rc uint64
	store := newStore()

	for {
		v, err := d.Decode()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pbfError(src, err)
		}
		switch v := v.(type) {
		case *osmpbf.Node:
			if err := checkNode(v); err != nil {
				return nil, err
			}
			store.points[NodeID(v.ID)] = &Point{
				ID:    NodeID(v.ID),
				Coord: orb.Point{v.Lon, v.Lat},
				Tags:  copyTags(v.Tags),
			}
			nc++
		case *osmpbf.Way:
			nodeIDs := make([]NodeID, len(v.NodeIDs))
			for i, id := range v.NodeIDs {
				nodeIDs[i] = NodeID(id)
			}
			store.paths[WayID(v.ID)] = &Path{
				ID:     WayID(v.ID),
				Points: nodeIDs,
				Tags:   copyTags(v.Tags),
			}
			wc++
		case *osmpbf.Relation:
			// we ignore relations
			rc++
		default:
			return nil, &Error{Kind: KindStructural, Element: fmt.Sprintf("%T", v)}
		}
	}

	logger.Sugar().Infof("decoded openstreetmap pbf: %d nodes, %d ways, %d relations ignored", nc, wc, rc)
	return store, nil
}

func pbfError(src *trackingReader, err error) error {
	if src.err != nil {
		return &Error{Kind: KindIO, Err: errors.Wrap(err, "reading pbf")}
	}
	return &Error{Kind: KindSyntax, Err: errors.Wrap(err, "decoding pbf")}
}

func checkNode(n *osmpbf.Node) error {
	if err := checkCoord(n.Lat, maxLat); err != nil {
		return &Error{Kind: KindAttribute, Element: elemNode, Attr: "lat", Err: errors.Wrapf(err, "node %d", n.ID)}
	}
	if err := checkCoord(n.Lon, maxLon); err != nil {
		return &Error{Kind: KindAttribute, Element: elemNode, Attr: "lon", Err: errors.Wrapf(err, "node %d", n.ID)}
	}
	return nil
}

func copyTags(in map[string]string) Tags {
	out := make(Tags, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
