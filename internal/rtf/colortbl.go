// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rtf

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

var (
	colorTablePattern = regexp.MustCompile(`\{\\colortbl;([^}]*)\}`)
	colorEntryPattern = regexp.MustCompile(`^\\red(\d+)\\green(\d+)\\blue(\d+)$`)
)

// ExtractPalette reads the document's color table into a Palette and returns
// the document with the whole declaration group removed. The group's bytes
// are table syntax, not body text, and must never reach the marker scan
// (R1.4).
//
// Slots are 1-origin over the declared triples: the empty entry markup tools
// write before the first declaration is the implicit auto color and carries
// no triple (R1.3). A non-empty entry that is not a plain red/green/blue
// declaration fails extraction rather than silently shifting slot numbers.
func ExtractPalette(content string) (types.Palette, string, error) {
	loc := colorTablePattern.FindStringSubmatchIndex(content)
	if loc == nil {
		return nil, "", ErrNoColorTable
	}

	var palette types.Palette
	for i, entry := range strings.Split(content[loc[2]:loc[3]], ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		m := colorEntryPattern.FindStringSubmatch(entry)
		if m == nil {
			return nil, "", fmt.Errorf("color table entry %d: unrecognized declaration %q", i, entry)
		}
		var c [3]uint8
		for j, part := range m[1:] {
			n, err := strconv.Atoi(part)
			if err != nil || n > 255 {
				return nil, "", fmt.Errorf("color table entry %d: component %s out of range 0-255", i, part)
			}
			c[j] = uint8(n)
		}
		palette = append(palette, types.RGB{R: c[0], G: c[1], B: c[2]})
	}

	return palette, content[:loc[0]] + content[loc[1]:], nil
}
