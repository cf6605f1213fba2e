// Package palette manages the persisted name-to-RGB color table.
package palette

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/scripts-richard/huectl/internal/color"
)

// Palette maps user-chosen color names to RGB values. It is loaded once per
// invocation and read-only while a command runs.
type Palette map[string]color.RGB

// Load reads the palette file. A missing file yields an empty palette;
// malformed JSON is a hard error.
func Load(path string) (Palette, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Palette{}, nil
	}
	if err != nil {
		return nil, err
	}

	var raw map[string][3]uint8
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse palette %s: %w", path, err)
	}

	p := make(Palette, len(raw))
	for name, c := range raw {
		p[name] = color.RGB{R: c[0], G: c[1], B: c[2]}
	}
	return p, nil
}

// Save writes the palette back to disk.
func (p Palette) Save(path string) error {
	raw := make(map[string][3]uint8, len(p))
	for name, c := range p {
		raw[name] = [3]uint8{c.R, c.G, c.B}
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Names returns the color names in sorted order.
func (p Palette) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve turns a color argument into an RGB value: either a #rrggbb
// literal or a palette name.
func (p Palette) Resolve(spec string) (color.RGB, error) {
	if strings.HasPrefix(spec, "#") {
		return ParseHex(spec)
	}

	c, ok := p[spec]
	if !ok {
		return color.RGB{}, fmt.Errorf("color %q is not in the palette", spec)
	}
	return c, nil
}

// ParseHex parses a #rrggbb color literal.
func ParseHex(s string) (color.RGB, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGB{}, fmt.Errorf("invalid color literal %q, want #rrggbb", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGB{}, fmt.Errorf("invalid color literal %q: %w", s, err)
	}

	return color.RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}
