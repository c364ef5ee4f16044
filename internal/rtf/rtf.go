// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rtf segments color-run markup documents into speaker-attributed
// turns. The only formatting it models is text color: the document's color
// table becomes a palette, every color-change marker becomes a turn boundary,
// and all other markup is stripped.
// Implements: prd001-parsing (R1-R5);
//
//	docs/ARCHITECTURE § Parsing.
package rtf

import (
	"strconv"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

// Parse converts one document to an ordered list of turns. roles maps
// document colors to speaker roles; nil or empty means split-only, with
// every role blank.
//
// The stages run in a fixed order: read the palette and drop its declaration
// group, pick a marker byte the document does not contain, protect every
// color-change marker with it, strip the remaining markup, and cut the
// cleaned text at the protected markers.
func Parse(content string, roles map[types.RGB]string) ([]types.Turn, error) {
	palette, rest, err := ExtractPalette(content)
	if err != nil {
		return nil, err
	}
	marker, err := SafeMarker(rest)
	if err != nil {
		return nil, err
	}
	protected, _ := ProtectMarkers(rest, marker)
	clean := StripControls(protected)
	return SplitTurns(clean, marker, palette, roles)
}

// Inspect reports a document's palette and how many color-change markers
// address each slot. It needs no role map; operators run it to learn which
// colors a document uses before writing one.
func Inspect(content string) (types.Palette, map[int]int, error) {
	palette, rest, err := ExtractPalette(content)
	if err != nil {
		return nil, nil, err
	}
	counts := make(map[int]int)
	for _, m := range markerPattern.FindAllStringSubmatch(rest, -1) {
		slot, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		counts[slot]++
	}
	return palette, counts, nil
}
