// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rtf

import (
	"errors"
	"testing"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

// sampleDoc is shaped like the word-processor exports the pipeline ingests:
// font and color tables, an expanded color table, paragraph plumbing, hex
// escapes, and color-change markers both at line starts and mid-paragraph.
const sampleDoc = `{\rtf1\ansi\ansicpg1252\cocoartf2822
\cocoatextscaling0\cocoaplatform0{\fonttbl\f0\fswiss\fcharset0 Helvetica;}
{\colortbl;\red255\green255\blue255;\red74\green21\blue148;\red255\green255\blue255;\red11\green93\blue162;
\red26\green26\blue26;}
{\*\expandedcolortbl;;\cssrgb\c36863\c17255\c64706;\cssrgb\c100000\c100000\c100000;\cssrgb\c0\c44706\c69804;
\cssrgb\c13333\c13333\c13333;}
\margl1440\margr1440
\deftab720
\pard\pardeftab720\partightenfactor0

\f0\fs32 \cf2 \cb3 \up0 \nosupersub \ulnone What risks do you run?\
\pard\pardeftab720\partightenfactor0
\cf4 In ISTDP, we want to ensure it\'92s the patient\'92s will.\cf2 \'a0I want that too.\
}`

func sampleRoles() map[types.RGB]string {
	return map[types.RGB]string{
		{R: 74, G: 21, B: 148}: "Expert",
		{R: 11, G: 93, B: 162}: "AI",
	}
}

func TestParse(t *testing.T) {
	turns, err := Parse(sampleDoc, sampleRoles())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	assertTurns(t, turns, []types.Turn{
		{Role: "Expert", Text: "What risks do you run?\n"},
		{Role: "AI", Text: "In ISTDP, we want to ensure it’s the patient’s will."},
		{Role: "Expert", Text: " I want that too.\n"},
	})
}

func TestParseSplitOnly(t *testing.T) {
	turns, err := Parse(sampleDoc, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(turns) != 3 {
		t.Fatalf("got %d turns, want 3", len(turns))
	}
	for i, turn := range turns {
		if turn.Role != "" {
			t.Errorf("turn %d role = %q, want blank", i, turn.Role)
		}
	}
}

func TestParseUnmappedColor(t *testing.T) {
	roles := map[types.RGB]string{
		{R: 74, G: 21, B: 148}: "Expert",
	}
	_, err := Parse(sampleDoc, roles)

	var unmapped *UnmappedColorError
	if !errors.As(err, &unmapped) {
		t.Fatalf("err = %v, want UnmappedColorError", err)
	}
	if unmapped.Color != (types.RGB{R: 11, G: 93, B: 162}) {
		t.Errorf("Color = %v, want RGB(11,93,162)", unmapped.Color)
	}
}

func TestParseNoColorTable(t *testing.T) {
	_, err := Parse(`{\rtf1 nothing declared}`, sampleRoles())
	if !errors.Is(err, ErrNoColorTable) {
		t.Fatalf("err = %v, want ErrNoColorTable", err)
	}
}

func TestParseAvoidsOccupiedMarkerByte(t *testing.T) {
	// A document already containing the first candidate byte forces the next
	// candidate; the occupied byte stays in the text as content.
	doc := "{\\rtf1{\\colortbl;\\red1\\green2\\blue3;}\\cf1 tick \x01 tock}"
	roles := map[types.RGB]string{{R: 1, G: 2, B: 3}: "Clock"}

	turns, err := Parse(doc, roles)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	assertTurns(t, turns, []types.Turn{
		{Role: "Clock", Text: "tick \x01 tock"},
	})
}

func TestInspect(t *testing.T) {
	palette, counts, err := Inspect(sampleDoc)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(palette) != 5 {
		t.Fatalf("palette has %d slots, want 5", len(palette))
	}
	if c, _ := palette.Color(2); c != (types.RGB{R: 74, G: 21, B: 148}) {
		t.Errorf("slot 2 = %v, want RGB(74,21,148)", c)
	}
	if counts[2] != 2 || counts[4] != 1 {
		t.Errorf("marker counts = %v, want slot 2 twice and slot 4 once", counts)
	}
}

func TestInspectNoColorTable(t *testing.T) {
	_, _, err := Inspect(`{\rtf1 bare}`)
	if !errors.Is(err, ErrNoColorTable) {
		t.Fatalf("err = %v, want ErrNoColorTable", err)
	}
}
