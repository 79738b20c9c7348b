package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/milk9111/marblebounce/codec"
	"github.com/milk9111/marblebounce/level"
)

//go:embed *.xml
var LevelsFS embed.FS

// Names lists the bundled levels without their extension.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if path.Ext(e.Name()) == ".xml" {
			names = append(names, strings.TrimSuffix(e.Name(), ".xml"))
		}
	}
	sort.Strings(names)
	return names
}

// Document returns the raw document of a bundled level.
func Document(name string) (string, error) {
	data, err := fs.ReadFile(LevelsFS, name+".xml")
	if err != nil {
		return "", fmt.Errorf("read level: %w", err)
	}
	return string(data), nil
}

// LoadLevelFromFS decodes a bundled level.
func LoadLevelFromFS(name string) (*level.Level, error) {
	doc, err := Document(name)
	if err != nil {
		return nil, err
	}
	l, err := codec.Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("decode level %s: %w", name, err)
	}
	return l, nil
}
