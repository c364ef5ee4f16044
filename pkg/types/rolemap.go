// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// RoleMap assigns speaker roles to text colors. Keys are color specs in
// either accepted spelling ("RGB(r,g,b)" or "#RRGGBB"); values are role
// labels (e.g. "Expert"). An empty map is legal: documents still split into
// turns, with every role left blank. Per prd001-parsing R2.
type RoleMap map[string]string

// Validate checks every key against the color-spec grammar. It runs before
// any document is touched, so a bad map fails the whole run up front rather
// than mid-batch. Per prd001-parsing R2.4.
func (m RoleMap) Validate() error {
	for spec := range m {
		if _, err := ParseColorSpec(spec); err != nil {
			return fmt.Errorf("role map: %w", err)
		}
	}
	return nil
}

// Compile validates the map and normalizes it into an RGB-keyed lookup.
// Two spellings of the same color are allowed only when they name the same
// role.
func (m RoleMap) Compile() (map[RGB]string, error) {
	lookup := make(map[RGB]string, len(m))
	for spec, role := range m {
		c, err := ParseColorSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("role map: %w", err)
		}
		if prev, ok := lookup[c]; ok && prev != role {
			return nil, fmt.Errorf("role map: %s mapped to both %q and %q", c, prev, role)
		}
		lookup[c] = role
	}
	return lookup, nil
}
