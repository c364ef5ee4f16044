// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rtf

import (
	"errors"
	"fmt"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

// ErrNoColorTable reports a document without a color table declaration.
// Such a document cannot carry color-attributed turns (R1.2).
var ErrNoColorTable = errors.New("document has no color table")

// ErrNoSafeMarker reports that every candidate marker byte already occurs in
// the document body, leaving no byte free to protect color-change markers
// with (R3.2).
var ErrNoSafeMarker = errors.New("no unused marker byte available")

// UnknownSlotError reports a color-change marker addressing a palette slot
// the color table never declared.
type UnknownSlotError struct {
	// Offset is the byte offset of the marker in the cleaned text.
	Offset int

	// Slot is the undeclared 1-origin palette slot.
	Slot int
}

func (e *UnknownSlotError) Error() string {
	return fmt.Sprintf("marker at offset %d: palette slot %d not declared", e.Offset, e.Slot)
}

// UnmappedColorError reports a document color the role map assigns no role.
type UnmappedColorError struct {
	// Offset is the byte offset of the marker in the cleaned text.
	Offset int

	// Color is the palette color with no role map entry.
	Color types.RGB
}

func (e *UnmappedColorError) Error() string {
	return fmt.Sprintf("marker at offset %d: no role mapped for %s", e.Offset, e.Color)
}
