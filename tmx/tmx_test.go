package tmx

import (
	"errors"
	"os"
	"testing"

	"github.com/milk9111/marblebounce/codec"
	"github.com/milk9111/marblebounce/common"
	"github.com/milk9111/marblebounce/thing"
)

func rounded(a thing.Attrs) thing.Attrs {
	out := thing.Attrs{}
	for k, v := range a {
		out[k] = common.Round3(v)
	}
	return out
}

func TestLoadSample(t *testing.T) {
	l, err := Load(os.DirFS("testdata"), "sample.tmx", Options{Group: "Things"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	b := l.Bounds()
	if b.Width != 4 || b.Height != 5 {
		t.Fatalf("bounds = %+v, want 4x5", b)
	}

	things := l.Things()
	if len(things) != 7 {
		t.Fatalf("got %d things, want 7", len(things))
	}

	cases := []struct {
		kind thing.Kind
		want thing.Attrs
	}{
		{thing.KindStart, thing.Attrs{"x": 1.75, "y": 3.7}},
		{thing.KindGoal, thing.Attrs{"x": 2, "y": 0.3, "width": 1, "height": 0.2}},
		{thing.KindBox, thing.Attrs{"x": 1, "y": 2.75, "width": 1, "height": 0.5}},
		{thing.KindCradle, thing.Attrs{"x": 2.8, "y": 1.6, "width": 0.6, "height": 0.4}},
		{thing.KindCircle, thing.Attrs{"x": 3.2, "y": 3.8, "radius": 0.2}},
		{thing.KindOpenPath, thing.Attrs{"x 1": 0, "y 1": 1, "x 2": 1, "y 2": 0.5, "x 3": 2, "y 3": 1}},
		{thing.KindPolygon, thing.Attrs{"x 1": 3, "y 1": 1, "x 2": 3.5, "y 2": 1, "x 3": 3.25, "y 3": 1.5}},
	}
	for i, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			got := things[i]
			if got.Kind() != tc.kind {
				t.Fatalf("thing %d kind = %s, want %s", i, got.Kind(), tc.kind)
			}
			vals := rounded(got.Values())
			for k, v := range tc.want {
				if vals[k] != v {
					t.Errorf("%s = %v, want %v", k, vals[k], v)
				}
			}
		})
	}

	if _, err := codec.Decode(codec.Encode(l)); err != nil {
		t.Fatalf("imported level does not round-trip: %v", err)
	}
}

func TestLoadAllGroups(t *testing.T) {
	l, err := Load(os.DirFS("testdata"), "sample.tmx", Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// the hidden object is skipped, the Notes box is kept
	if got := len(l.Things()); got != 8 {
		t.Fatalf("got %d things, want 8", got)
	}
}

func TestLoadWithoutStart(t *testing.T) {
	_, err := Load(os.DirFS("testdata"), "nostart.tmx", Options{})
	if !errors.Is(err, ErrNoStart) {
		t.Fatalf("err = %v, want ErrNoStart", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(os.DirFS("testdata"), "missing.tmx", Options{}); err == nil {
		t.Fatal("expected an error")
	}
}
