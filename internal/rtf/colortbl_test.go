// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rtf

import (
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

func TestExtractPalette(t *testing.T) {
	content := `{\rtf1
{\colortbl;\red255\green255\blue255;\red74\green21\blue148;\red255\green255\blue255;\red11\green93\blue162;
\red26\green26\blue26;}
\cf2 hello}`

	palette, rest, err := ExtractPalette(content)
	if err != nil {
		t.Fatalf("ExtractPalette: %v", err)
	}

	want := types.Palette{
		{R: 255, G: 255, B: 255},
		{R: 74, G: 21, B: 148},
		{R: 255, G: 255, B: 255},
		{R: 11, G: 93, B: 162},
		{R: 26, G: 26, B: 26},
	}
	if len(palette) != len(want) {
		t.Fatalf("palette has %d slots, want %d", len(palette), len(want))
	}
	for i := range want {
		if palette[i] != want[i] {
			t.Errorf("slot %d = %v, want %v", i+1, palette[i], want[i])
		}
	}

	if strings.Contains(rest, "colortbl") || strings.Contains(rest, "blue148") {
		t.Errorf("declaration group not removed from rest: %q", rest)
	}
	if !strings.Contains(rest, `\cf2 hello`) {
		t.Errorf("body text lost from rest: %q", rest)
	}
}

func TestExtractPaletteSlotOrder(t *testing.T) {
	content := `{\colortbl;\red1\green2\blue3;\red4\green5\blue6;}`
	palette, _, err := ExtractPalette(content)
	if err != nil {
		t.Fatalf("ExtractPalette: %v", err)
	}
	if c, ok := palette.Color(1); !ok || c != (types.RGB{R: 1, G: 2, B: 3}) {
		t.Errorf("slot 1 = %v, %v", c, ok)
	}
	if c, ok := palette.Color(2); !ok || c != (types.RGB{R: 4, G: 5, B: 6}) {
		t.Errorf("slot 2 = %v, %v", c, ok)
	}
	if _, ok := palette.Color(3); ok {
		t.Error("slot 3 should not be declared")
	}
}

func TestExtractPaletteNoTable(t *testing.T) {
	_, _, err := ExtractPalette(`{\rtf1 no table here}`)
	if !errors.Is(err, ErrNoColorTable) {
		t.Fatalf("err = %v, want ErrNoColorTable", err)
	}
}

func TestExtractPaletteEmptyTable(t *testing.T) {
	palette, _, err := ExtractPalette(`{\colortbl;}text`)
	if err != nil {
		t.Fatalf("ExtractPalette: %v", err)
	}
	if len(palette) != 0 {
		t.Errorf("palette = %v, want empty", palette)
	}
}

func TestExtractPaletteMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing blue", `{\colortbl;\red255\green255;}`},
		{"component over 255", `{\colortbl;\red300\green0\blue0;}`},
		{"stray declaration", `{\colortbl;\red1\green2\blue3\ctint90;}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ExtractPalette(tt.content); err == nil {
				t.Fatalf("ExtractPalette(%q): want error", tt.content)
			}
		})
	}
}
