// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rtf

import (
	"regexp"
	"strings"
)

// markerCandidates are the bytes eligible to stand in for the control escape
// when color-change markers are protected. All are non-printable, so a
// surviving candidate can only have come from protection, never from document
// text the safety scan approved (R3.1).
var markerCandidates = []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}

// SafeMarker picks the first candidate byte that occurs nowhere in the
// document (R3.2).
func SafeMarker(content string) (byte, error) {
	for _, c := range markerCandidates {
		if strings.IndexByte(content, c) < 0 {
			return c, nil
		}
	}
	return 0, ErrNoSafeMarker
}

var markerPattern = regexp.MustCompile(`\\cf(\d+)`)

// ProtectMarkers replaces the leading escape of every color-change marker
// with the chosen marker byte. The control stripper no longer recognizes the
// rewritten sequence as a control, so <marker>cf<digits> rides through to the
// cleaned text as literal bytes (R3.3). Returns the rewritten document and
// the number of markers protected.
func ProtectMarkers(content string, marker byte) (string, int) {
	n := 0
	out := markerPattern.ReplaceAllStringFunc(content, func(m string) string {
		n++
		return string(marker) + m[1:]
	})
	return out, n
}
