// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rtf

import (
	"strconv"
	"strings"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

// SplitTurns scans cleaned text for protected color-change markers and cuts
// the text into turns at each one. A marker's role applies to the span that
// FOLLOWS it; the span before it is closed under the previously pending role
// (R5.1). Text before the first marker keeps a blank role.
//
// A span directly after a marker loses at most one leading space: markup
// terminates the color control with a space, and that delimiter is not
// content. All other whitespace is kept verbatim (R5.3). Empty spans produce
// no turn but still advance the pending role (R5.4).
//
// With a nil or empty role map the split still happens, every role blank.
// A non-empty map missing a color the document uses fails the document
// (R5.5).
func SplitTurns(clean string, marker byte, palette types.Palette, roles map[types.RGB]string) ([]types.Turn, error) {
	var turns []types.Turn
	role := ""
	spanStart := 0
	afterMarker := false

	emit := func(end int) {
		text := clean[spanStart:end]
		if afterMarker && strings.HasPrefix(text, " ") {
			text = text[1:]
		}
		if text != "" {
			turns = append(turns, types.Turn{Role: role, Text: text})
		}
	}

	for i := 0; i < len(clean); {
		j := strings.IndexByte(clean[i:], marker)
		if j < 0 {
			break
		}
		pos := i + j
		slot, width, ok := parseMarker(clean[pos:])
		if !ok {
			i = pos + 1
			continue
		}

		emit(pos)

		color, declared := palette.Color(slot)
		if !declared {
			return nil, &UnknownSlotError{Offset: pos, Slot: slot}
		}
		next, mapped := roles[color]
		if !mapped && len(roles) > 0 {
			return nil, &UnmappedColorError{Offset: pos, Color: color}
		}

		role = next
		spanStart = pos + width
		afterMarker = true
		i = spanStart
	}

	// The text after the last marker is still an open span; close it under
	// the last resolved role.
	emit(len(clean))
	return turns, nil
}

// parseMarker reads one protected marker (<marker byte>cf<digits>) at the
// start of s, returning the addressed palette slot and the marker's width in
// bytes.
func parseMarker(s string) (slot, width int, ok bool) {
	rest := s[1:]
	if !strings.HasPrefix(rest, "cf") {
		return 0, 0, false
	}
	d := 2
	for d < len(rest) && isDigit(rest[d]) {
		d++
	}
	if d == 2 {
		return 0, 0, false
	}
	n, err := strconv.Atoi(rest[2:d])
	if err != nil {
		return 0, 0, false
	}
	return n, 1 + d, true
}
