package codec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/milk9111/marblebounce/common"
	"github.com/milk9111/marblebounce/level"
	"github.com/milk9111/marblebounce/thing"
)

// RootTag is the tag of the document element.
const RootTag = "level"

// Encode serializes the live things of l. Numbers are rounded to three decimals.
func Encode(l *level.Level) string {
	var buf bytes.Buffer
	if err := Write(&buf, l); err != nil {
		// only reachable with a broken writer; bytes.Buffer never fails
		panic(err)
	}
	return buf.String()
}

// Write encodes l to w.
func Write(w io.Writer, l *level.Level) error {
	b := l.Bounds()
	root := thing.Node{
		Tag: RootTag,
		Attrs: []thing.Attr{
			{Name: "width", Value: b.Width},
			{Name: "height", Value: b.Height},
			{Name: "left", Value: b.Left},
			{Name: "bottom", Value: b.Bottom},
		},
	}
	for _, t := range l.Live() {
		root.Children = append(root.Children, t.Node())
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := writeNode(enc, root); err != nil {
		return fmt.Errorf("codec: encode: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("codec: encode: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func writeNode(enc *xml.Encoder, n thing.Node) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Tag}}
	for _, a := range n.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: FormatNumber(a.Value)})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := writeNode(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// FormatNumber renders v rounded to three decimals in its shortest form.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(common.Round3(v), 'f', -1, 64)
}

// Decode parses a level document. On failure it returns a *MalformedLevelError
// and no level.
func Decode(doc string) (*level.Level, error) {
	return DecodeReader(strings.NewReader(doc))
}

// DecodeReader parses a level document from r.
func DecodeReader(r io.Reader) (*level.Level, error) {
	root, err := parseTree(r)
	if err != nil {
		return nil, err
	}
	if root.Tag != RootTag {
		return nil, malformed(fmt.Sprintf("root tag is %q, want %q", root.Tag, RootTag), root.Tag, "", nil)
	}

	var bounds level.Bounds
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"width", &bounds.Width},
		{"height", &bounds.Height},
		{"left", &bounds.Left},
		{"bottom", &bounds.Bottom},
	} {
		v, ok := root.Get(f.name)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, malformed("missing or non-numeric attribute", RootTag, f.name, nil)
		}
		*f.dst = v
	}

	things := make([]thing.Thing, 0, len(root.Children))
	starts := 0
	for _, child := range root.Children {
		t, err := thing.FromNode(child)
		if err != nil {
			return nil, nodeError(child, err)
		}
		if t.Kind() == thing.KindStart {
			starts++
		}
		things = append(things, t)
	}
	switch {
	case starts == 0:
		return nil, malformed("no start element", RootTag, "", nil)
	case starts > 1:
		return nil, malformed("more than one start element", string(thing.KindStart), "", nil)
	}

	l := level.New(bounds)
	for _, t := range things {
		l.AddThing(t)
	}
	return l, nil
}

func nodeError(n thing.Node, err error) error {
	var attrErr *thing.AttrError
	switch {
	case errors.As(err, &attrErr):
		return malformed("missing or non-numeric attribute", n.Tag, attrErr.Attr, err)
	case errors.Is(err, thing.ErrNoNodes):
		return malformed("path has no nodes", n.Tag, "", err)
	default:
		return malformed("unrecognized element", n.Tag, "", err)
	}
}

// parseTree reads the document into a generic node tree. Attribute values
// that are not numbers are stored as NaN.
func parseTree(r io.Reader) (thing.Node, error) {
	dec := xml.NewDecoder(r)
	var stack []*thing.Node
	var root *thing.Node

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return thing.Node{}, malformed("invalid xml", "", "", err)
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			n := thing.Node{Tag: tok.Name.Local}
			for _, a := range tok.Attr {
				n.Attrs = append(n.Attrs, thing.Attr{Name: a.Name.Local, Value: parseNumber(a.Value)})
			}
			if len(stack) == 0 {
				if root != nil {
					return thing.Node{}, malformed("multiple root elements", n.Tag, "", nil)
				}
				root = &n
				stack = append(stack, root)
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
			stack = append(stack, &parent.Children[len(parent.Children)-1])
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return thing.Node{}, malformed("empty document", "", "", nil)
	}
	return *root, nil
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
