// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"

	"github.com/pdiddy/transcript-engine/internal/rtf"
	"github.com/pdiddy/transcript-engine/pkg/types"
)

// ColorRunConverter converts color-run documents by running them through the
// rtf parser under a role map compiled at construction time.
type ColorRunConverter struct {
	roles map[types.RGB]string
}

// NewColorRunConverter creates a converter for the given role map. The map is
// compiled once so every document in a batch shares the same lookup; a nil or
// empty map splits turns without attributing roles.
func NewColorRunConverter(m types.RoleMap) (*ColorRunConverter, error) {
	roles, err := m.Compile()
	if err != nil {
		return nil, err
	}
	return &ColorRunConverter{roles: roles}, nil
}

// Convert reads the document at rtfPath and returns its speaker-attributed
// turns.
func (c *ColorRunConverter) Convert(rtfPath string) ([]types.Turn, error) {
	data, err := os.ReadFile(rtfPath)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", rtfPath, err)
	}
	turns, err := rtf.Parse(string(data), c.roles)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", rtfPath, err)
	}
	return turns, nil
}
