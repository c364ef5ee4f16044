// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRunPattern matches the alphabetic runs of a camelCase filename stem:
// all-lowercase, or one uppercase letter followed by lowercase.
var nameRunPattern = regexp.MustCompile(`[a-z]+|[A-Z][a-z]*`)

// InvalidNameError reports a source filename that does not split into the
// client and category runs the dataset layout requires.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("name %q: want at least two camelCase runs (e.g. meganDenial)", e.Name)
}

// ParseCaseName splits a source filename stem into client name and discussion
// category. The first run is the client, capitalized; the remaining runs are
// lower-cased and concatenated into the category, so "marcelCharacterDefense"
// yields ("Marcel", "characterdefense"). Characters outside the runs (digits,
// punctuation) separate runs and are dropped. Per prd003-dataset R2.3.
func ParseCaseName(stem string) (client, category string, err error) {
	runs := nameRunPattern.FindAllString(stem, -1)
	if len(runs) < 2 {
		return "", "", &InvalidNameError{Name: stem}
	}
	client = strings.ToUpper(runs[0][:1]) + strings.ToLower(runs[0][1:])
	category = strings.ToLower(strings.Join(runs[1:], ""))
	return client, category, nil
}
