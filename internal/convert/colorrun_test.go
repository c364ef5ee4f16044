// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/transcript-engine/internal/rtf"
	"github.com/pdiddy/transcript-engine/pkg/types"
)

// sessionDoc is a minimal color-run document with two attributed turns. The
// trailing backslash on the third line is an escaped newline.
const sessionDoc = `{\rtf1\ansi\ansicpg1252
{\colortbl;\red255\green255\blue255;\red74\green21\blue148;\red11\green93\blue162;}
\f0\fs24 \cf2 Where do you feel it?\
\cf3 In my chest.}`

func TestColorRunConverter(t *testing.T) {
	tmpDir := t.TempDir()
	rtfPath := filepath.Join(tmpDir, "meganDenial.rtf")
	if err := os.WriteFile(rtfPath, []byte(sessionDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	conv, err := NewColorRunConverter(types.RoleMap{
		"RGB(74, 21, 148)": "Expert",
		"RGB(11, 93, 162)": "AI",
	})
	if err != nil {
		t.Fatalf("NewColorRunConverter: %v", err)
	}

	turns, err := conv.Convert(rtfPath)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	want := []types.Turn{
		{Role: "Expert", Text: "Where do you feel it?\n"},
		{Role: "AI", Text: "In my chest."},
	}
	if len(turns) != len(want) {
		t.Fatalf("turns = %v, want %v", turns, want)
	}
	for i := range want {
		if turns[i] != want[i] {
			t.Errorf("turn %d = %+v, want %+v", i, turns[i], want[i])
		}
	}
}

func TestColorRunConverterConflictingRoles(t *testing.T) {
	_, err := NewColorRunConverter(types.RoleMap{
		"RGB(74, 21, 148)": "Expert",
		"rgb(74, 21, 148)": "AI",
		"RGB(11, 93, 162)": "AI",
	})
	if err == nil {
		t.Fatal("expected error for conflicting role map, got nil")
	}
}

func TestColorRunConverterMissingFile(t *testing.T) {
	conv, err := NewColorRunConverter(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := conv.Convert(filepath.Join(t.TempDir(), "absent.rtf")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestColorRunConverterPlainText(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "notes.rtf")
	if err := os.WriteFile(path, []byte("just plain text"), 0o644); err != nil {
		t.Fatal(err)
	}

	conv, err := NewColorRunConverter(nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = conv.Convert(path)
	if !errors.Is(err, rtf.ErrNoColorTable) {
		t.Fatalf("error = %v, want ErrNoColorTable", err)
	}
}
