package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/marblebounce/level"
	"github.com/milk9111/marblebounce/thing"
)

//go:embed templates/*.tengo
var templatesFS embed.FS

// DefaultName is the template used when none is configured.
const DefaultName = "default"

const ext = ".tengo"

// Library resolves template names to scripts. Templates in Dir shadow the built-in ones.
type Library struct {
	Dir string
}

// Names lists every available template, sorted.
func (lib Library) Names() []string {
	seen := map[string]bool{}
	collect := func(fsys fs.FS) {
		entries, err := fs.ReadDir(fsys, ".")
		if err != nil {
			return
		}
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ext {
				continue
			}
			seen[strings.TrimSuffix(e.Name(), ext)] = true
		}
	}
	if sub, err := fs.Sub(templatesFS, "templates"); err == nil {
		collect(sub)
	}
	if lib.Dir != "" {
		collect(os.DirFS(lib.Dir))
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Source returns the script for name.
func (lib Library) Source(name string) ([]byte, error) {
	if lib.Dir != "" {
		data, err := os.ReadFile(filepath.Join(lib.Dir, name+ext))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("scaffold: load %s: %w", name, err)
		}
	}
	data, err := templatesFS.ReadFile("templates/" + name + ext)
	if err != nil {
		return nil, fmt.Errorf("scaffold: load %s: %w", name, err)
	}
	return data, nil
}

// Build runs the named template and returns the level it describes.
func (lib Library) Build(name string) (*level.Level, error) {
	src, err := lib.Source(name)
	if err != nil {
		return nil, err
	}
	l, err := Run(src)
	if err != nil {
		return nil, fmt.Errorf("scaffold: %s: %w", name, err)
	}
	return l, nil
}

// Default builds the built-in default level.
func Default() (*level.Level, error) {
	return Library{}.Build(DefaultName)
}

// Run executes a template script. Scripts describe the level through the
// global `level` object:
//
//	level.board(width, height, left, bottom)
//	level.start(x, y)
//	level.add(kind, {x: 1, y: 2, width: 1, height: 1})
//	level.path(kind, [[x1, y1], [x2, y2]])
func Run(src []byte) (*level.Level, error) {
	b := &builder{bounds: level.Bounds{Width: 3.5, Height: 4.8}}

	script := tengo.NewScript(src)
	if err := script.Add("level", b.object()); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	return b.build()
}

type builder struct {
	bounds level.Bounds
	things []thing.Thing
	starts int
}

func (b *builder) build() (*level.Level, error) {
	switch {
	case b.starts == 0:
		return nil, errors.New("template places no start")
	case b.starts > 1:
		return nil, errors.New("template places more than one start")
	}
	if b.bounds.Width <= 0 || b.bounds.Height <= 0 {
		return nil, fmt.Errorf("invalid board size %vx%v", b.bounds.Width, b.bounds.Height)
	}
	l := level.New(b.bounds)
	for _, t := range b.things {
		l.AddThing(t)
	}
	return l, nil
}

func (b *builder) object() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["board"] = &tengo.UserFunction{Name: "board", Value: func(args ...tengo.Object) (tengo.Object, error) {
		nums, err := floats(args, 2, 4)
		if err != nil {
			return nil, err
		}
		b.bounds = level.Bounds{Width: nums[0], Height: nums[1]}
		if len(nums) == 4 {
			b.bounds.Left, b.bounds.Bottom = nums[2], nums[3]
		}
		return tengo.TrueValue, nil
	}}

	values["start"] = &tengo.UserFunction{Name: "start", Value: func(args ...tengo.Object) (tengo.Object, error) {
		nums, err := floats(args, 2, 2)
		if err != nil {
			return nil, err
		}
		b.things = append(b.things, thing.NewStart(nums[0], nums[1]))
		b.starts++
		return tengo.TrueValue, nil
	}}

	values["add"] = &tengo.UserFunction{Name: "add", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		attrs, ok := args[1].(*tengo.Map)
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "attrs", Expected: "map", Found: args[1].TypeName()}
		}
		n := thing.Node{Tag: objectAsString(args[0])}
		keys := make([]string, 0, len(attrs.Value))
		for k := range attrs.Value {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v, ok := tengo.ToFloat64(attrs.Value[k])
			if !ok {
				return nil, fmt.Errorf("add %s: attribute %s is not a number", n.Tag, k)
			}
			n.Attrs = append(n.Attrs, thing.Attr{Name: k, Value: v})
		}
		return b.add(n)
	}}

	values["path"] = &tengo.UserFunction{Name: "path", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		pts, ok := args[1].(*tengo.Array)
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "nodes", Expected: "array", Found: args[1].TypeName()}
		}
		n := thing.Node{Tag: objectAsString(args[0])}
		for i, p := range pts.Value {
			pair, ok := p.(*tengo.Array)
			if !ok {
				return nil, fmt.Errorf("path %s: node %d is not an [x, y] pair", n.Tag, i+1)
			}
			xy, err := floats(pair.Value, 2, 2)
			if err != nil {
				return nil, fmt.Errorf("path %s: node %d: %w", n.Tag, i+1, err)
			}
			n.Children = append(n.Children, thing.Node{Tag: "node", Attrs: []thing.Attr{{Name: "x", Value: xy[0]}, {Name: "y", Value: xy[1]}}})
		}
		return b.add(n)
	}}

	return &tengo.ImmutableMap{Value: values}
}

func (b *builder) add(n thing.Node) (tengo.Object, error) {
	if n.Tag == string(thing.KindStart) {
		return nil, errors.New("use level.start for the start point")
	}
	t, err := thing.FromNode(n)
	if err != nil {
		return nil, err
	}
	b.things = append(b.things, t)
	return tengo.TrueValue, nil
}

func floats(args []tengo.Object, lo, hi int) ([]float64, error) {
	if len(args) < lo || len(args) > hi {
		return nil, tengo.ErrWrongNumArguments
	}
	out := make([]float64, len(args))
	for i, a := range args {
		v, ok := tengo.ToFloat64(a)
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: fmt.Sprintf("argument %d", i+1), Expected: "number", Found: a.TypeName()}
		}
		out[i] = v
	}
	return out, nil
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
