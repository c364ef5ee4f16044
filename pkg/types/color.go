// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RGB is a 24-bit color as declared in a document color table.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// String renders the color in the canonical "RGB(r,g,b)" spelling.
func (c RGB) String() string {
	return fmt.Sprintf("RGB(%d,%d,%d)", c.R, c.G, c.B)
}

// Hex renders the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette is the ordered list of colors declared by a document's color table.
// Slot numbering is 1-origin: slot 1 is the first declared color, matching how
// markup color-change markers address the table. Per prd001-parsing R1.3.
type Palette []RGB

// Color returns the color at the given 1-origin slot.
func (p Palette) Color(slot int) (RGB, bool) {
	if slot < 1 || slot > len(p) {
		return RGB{}, false
	}
	return p[slot-1], true
}

var (
	rgbSpecPattern = regexp.MustCompile(`^[Rr][Gg][Bb]\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)
	hexSpecPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// ParseColorSpec parses a color in either accepted spelling: "RGB(r,g,b)",
// case-insensitive with whitespace allowed around the components, or
// "#RRGGBB". Per prd001-parsing R2.1-R2.3.
func ParseColorSpec(spec string) (RGB, error) {
	s := strings.TrimSpace(spec)
	if m := rgbSpecPattern.FindStringSubmatch(s); m != nil {
		var c [3]uint8
		for i, part := range m[1:] {
			n, err := strconv.Atoi(part)
			if err != nil || n > 255 {
				return RGB{}, fmt.Errorf("color %q: component %s out of range 0-255", spec, part)
			}
			c[i] = uint8(n)
		}
		return RGB{c[0], c[1], c[2]}, nil
	}
	if hexSpecPattern.MatchString(s) {
		v, _ := strconv.ParseUint(s[1:], 16, 32)
		return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
	}
	return RGB{}, fmt.Errorf("color %q: want RGB(r,g,b) or #RRGGBB", spec)
}
