// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rolemap loads and assembles the color-to-role maps that drive turn
// attribution. Maps arrive as YAML files, as inline COLOR=ROLE pairs from the
// command line, or from configuration, and are validated before any document
// is parsed.
// Implements: prd001-parsing (R2);
//
//	docs/ARCHITECTURE § Parsing.
package rolemap

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

// Load reads a role map from a YAML file: a flat mapping of color spec to
// role label. The map is validated before it is returned.
func Load(path string) (types.RoleMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading role map: %w", err)
	}
	var m types.RoleMap
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing role map %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m == nil {
		m = types.RoleMap{}
	}
	return m, nil
}

// FromPairs assembles a role map from COLOR=ROLE arguments
// (e.g. "RGB(74,21,148)=Expert" or "#0b5da2=AI").
func FromPairs(pairs []string) (types.RoleMap, error) {
	m := make(types.RoleMap, len(pairs))
	for _, pair := range pairs {
		spec, role, ok := strings.Cut(pair, "=")
		if !ok || role == "" {
			return nil, fmt.Errorf("role pair %q: want COLOR=ROLE", pair)
		}
		if _, err := types.ParseColorSpec(spec); err != nil {
			return nil, fmt.Errorf("role pair %q: %w", pair, err)
		}
		m[strings.TrimSpace(spec)] = role
	}
	return m, nil
}

// Merge layers override on top of base without changing either. Entries in
// override win.
func Merge(base, override types.RoleMap) types.RoleMap {
	merged := make(types.RoleMap, len(base)+len(override))
	for spec, role := range base {
		merged[spec] = role
	}
	for spec, role := range override {
		merged[spec] = role
	}
	return merged
}
