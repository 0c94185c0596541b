package osm

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/paulmach/orb"
	pmosm "github.com/paulmach/osm"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Element names of the OSM XML vocabulary, matched case-sensitively.
const (
	elemRoot     = "osm"
	elemNode     = string(pmosm.TypeNode)
	elemWay      = string(pmosm.TypeWay)
	elemRelation = string(pmosm.TypeRelation)
	elemNd       = "nd"
	elemTag      = "tag"
	elemMember   = "member"
)

// frame is one entry of the open-element stack.
type frame interface {
	frame()
}

type (
	rootFrame  struct{}
	pointFrame struct{ point *Point }
	pathFrame  struct{ path *Path }
	// ignoredFrame marks an open relation; its children are dropped.
	ignoredFrame struct{}
	// leafFrame is an open tag, nd or member element. Nothing nests in it.
	leafFrame struct{}
)

func (rootFrame) frame()    {}
func (*pointFrame) frame()  {}
func (*pathFrame) frame()   {}
func (ignoredFrame) frame() {}
func (leafFrame) frame()    {}

type xmlParser struct {
	dec   *xml.Decoder
	src   *trackingReader
	stack []frame
	store *Store

	seenRoot  bool
	relations int
}

// trackingReader remembers the last read failure so decoder errors caused by
// the stream can be told apart from malformed markup.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		t.err = err
	}
	return n, err
}

// ParseXML reads an OSM XML document and returns the points and paths it
// defines. Relations are recognized and skipped. On any failure no store is
// returned and the error is an *Error.
func ParseXML(r io.Reader, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	src := &trackingReader{r: r}
	p := &xmlParser{
		dec:   xml.NewDecoder(src),
		src:   src,
		store: newStore(),
	}

	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, p.tokenError(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := p.start(t); err != nil {
				return nil, err
			}
		case xml.EndElement:
			p.end()
		}
	}
	if !p.seenRoot {
		return nil, &Error{Kind: KindSyntax, Err: errors.New("document has no root element")}
	}

	logger.Sugar().Infof("parsed openstreetmap xml: %d nodes, %d ways, %d relations ignored",
		p.store.NumPoints(), p.store.NumPaths(), p.relations)
	return p.store, nil
}

func (p *xmlParser) start(el xml.StartElement) error {
	name := el.Name.Local

	if len(p.stack) == 0 {
		if name != elemRoot || p.seenRoot {
			return p.structural(name)
		}
		p.seenRoot = true
		p.push(rootFrame{})
		return nil
	}

	switch top := p.stack[len(p.stack)-1].(type) {
	case rootFrame:
		switch name {
		case elemNode:
			return p.startNode(el)
		case elemWay:
			id, err := p.intAttr(el, "id")
			if err != nil {
				return err
			}
			p.push(&pathFrame{path: &Path{ID: WayID(id), Points: []NodeID{}, Tags: Tags{}}})
			return nil
		case elemRelation:
			p.relations++
			p.push(ignoredFrame{})
			return nil
		}

	case *pointFrame:
		switch name {
		case elemTag:
			return p.startTag(el, top.point.Tags)
		}

	case *pathFrame:
		switch name {
		case elemNd:
			ref, err := p.intAttr(el, "ref")
			if err != nil {
				return err
			}
			top.path.Points = append(top.path.Points, NodeID(ref))
			p.push(leafFrame{})
			return nil
		case elemTag:
			return p.startTag(el, top.path.Tags)
		}

	case ignoredFrame:
		switch name {
		case elemTag, elemNd, elemMember:
			p.push(leafFrame{})
			return nil
		}
	}

	return p.structural(name)
}

func (p *xmlParser) startNode(el xml.StartElement) error {
	id, err := p.intAttr(el, "id")
	if err != nil {
		return err
	}
	lat, err := p.coordAttr(el, "lat", maxLat)
	if err != nil {
		return err
	}
	lon, err := p.coordAttr(el, "lon", maxLon)
	if err != nil {
		return err
	}
	p.push(&pointFrame{point: &Point{
		ID:    NodeID(id),
		Coord: orb.Point{lon, lat},
		Tags:  Tags{},
	}})
	return nil
}

func (p *xmlParser) startTag(el xml.StartElement, tags Tags) error {
	k, err := p.attr(el, "k")
	if err != nil {
		return err
	}
	v, err := p.attr(el, "v")
	if err != nil {
		return err
	}
	tags[k] = v
	p.push(leafFrame{})
	return nil
}

// end pops the innermost frame and commits finished entities. The decoder
// runs in strict mode, so end elements always match the frame on top.
func (p *xmlParser) end() {
	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]

	switch f := top.(type) {
	case *pointFrame:
		p.store.points[f.point.ID] = f.point
	case *pathFrame:
		p.store.paths[f.path.ID] = f.path
	}
}

func (p *xmlParser) push(f frame) {
	p.stack = append(p.stack, f)
}

func (p *xmlParser) attr(el xml.StartElement, name string) (string, error) {
	for _, a := range el.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, nil
		}
	}
	return "", p.attrError(el, name, errors.New("missing"))
}

func (p *xmlParser) intAttr(el xml.StartElement, name string) (int64, error) {
	s, err := p.attr(el, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, p.attrError(el, name, errors.Wrapf(err, "invalid value %q", s))
	}
	return v, nil
}

// coordAttr parses a finite coordinate no larger than limit in magnitude.
func (p *xmlParser) coordAttr(el xml.StartElement, name string, limit float64) (float64, error) {
	s, err := p.attr(el, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, p.attrError(el, name, errors.Wrapf(err, "invalid value %q", s))
	}
	if err := checkCoord(v, limit); err != nil {
		return 0, p.attrError(el, name, err)
	}
	return v, nil
}

func (p *xmlParser) attrError(el xml.StartElement, name string, cause error) error {
	line, col := p.dec.InputPos()
	return &Error{
		Kind:    KindAttribute,
		Element: el.Name.Local,
		Attr:    name,
		Line:    line,
		Column:  col,
		Err:     cause,
	}
}

func (p *xmlParser) structural(name string) error {
	line, col := p.dec.InputPos()
	return &Error{Kind: KindStructural, Element: name, Line: line, Column: col}
}

func (p *xmlParser) tokenError(err error) error {
	if p.src.err != nil && errors.Is(err, p.src.err) {
		return &Error{Kind: KindIO, Err: err}
	}
	line, col := p.dec.InputPos()
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		line = syn.Line
	}
	return &Error{Kind: KindSyntax, Line: line, Column: col, Err: err}
}
