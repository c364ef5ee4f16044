// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/transcript-engine/internal/rtf"
)

var paletteCmd = &cobra.Command{
	Use:   "palette [documents...]",
	Short: "Inspect the color palette of color-run documents",
	Long: `Palette lists each document's declared color table with 1-origin slot
numbers, RGB values, and how many color-change markers reference each slot.
Run it before writing a role map to learn which colors a document uses.`,
	RunE: runPalette,
}

func init() {
	rootCmd.AddCommand(paletteCmd)
}

func runPalette(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more documents to inspect")
	}

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		palette, counts, err := rtf.Inspect(string(data))
		if err != nil {
			return fmt.Errorf("inspecting %s: %w", path, err)
		}

		fmt.Printf("%s\n", path)
		for slot := 1; slot <= len(palette); slot++ {
			rgb, _ := palette.Color(slot)
			fmt.Printf("  slot %2d  %-18s  %s  %d marker(s)\n",
				slot, rgb.String(), rgb.Hex(), counts[slot])
		}

		// Markers addressing slots outside the declared palette, including
		// the \cf0 auto slot.
		var undeclared []int
		for slot := range counts {
			if _, ok := palette.Color(slot); !ok {
				undeclared = append(undeclared, slot)
			}
		}
		sort.Ints(undeclared)
		for _, slot := range undeclared {
			fmt.Printf("  slot %2d  (not declared)           %d marker(s)\n",
				slot, counts[slot])
		}
		fmt.Println()
	}

	return nil
}
