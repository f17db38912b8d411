package specimen

import (
	"regexp"
	"strings"
)

var suffixPattern = regexp.MustCompile(`(?i)_(rect|hex|hold.*|drop.*|oil|wine|empty)$`)

// NormalizeIdentity strips arrangement, protocol and fill suffixes from a
// raw specimen name so every test of the same vessel type shares one
// identity ("Dressel_20_hex_oil" → "Dressel_20"). It also returns the
// stripped suffix tokens, lowercased, outermost last.
func NormalizeIdentity(raw string) (string, []string) {
	name := strings.TrimSpace(raw)
	var suffixes []string
	for {
		loc := suffixPattern.FindStringSubmatchIndex(name)
		if loc == nil {
			break
		}
		token := strings.ToLower(name[loc[2]:loc[3]])
		suffixes = append(strings.Split(token, "_"), suffixes...)
		name = strings.TrimSpace(name[:loc[0]])
	}
	return name, suffixes
}

// Identity returns only the normalised identity of a raw name.
func Identity(raw string) string {
	id, _ := NormalizeIdentity(raw)
	return id
}
