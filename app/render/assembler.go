package render

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{([A-Z0-9_]+)\}\}`)

// Assemble substitutes named {{PLACEHOLDER}} markers in template with
// the given values. Every marker must have a value and every value must
// have a marker; an unresolved marker in shipped HTML is the failure
// mode this guards against, so both mismatches fail fast.
func Assemble(template string, values map[string]string) (string, error) {
	seen := make(map[string]bool)
	for _, match := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		seen[match[1]] = true
	}

	var missing, unused []string
	for name := range seen {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range values {
		if !seen[name] {
			unused = append(unused, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", fmt.Errorf("unresolved template placeholders: %s", strings.Join(missing, ", "))
	}
	if len(unused) > 0 {
		sort.Strings(unused)
		return "", fmt.Errorf("values without template placeholders: %s", strings.Join(unused, ", "))
	}

	// Single pass over the template, so marker syntax inside a
	// substituted value is never re-expanded.
	result := placeholderPattern.ReplaceAllStringFunc(template, func(marker string) string {
		name := placeholderPattern.FindStringSubmatch(marker)[1]
		return values[name]
	})

	if leftover := placeholderPattern.FindString(result); leftover != "" {
		return "", fmt.Errorf("substituted value introduced placeholder syntax: %s", leftover)
	}

	return result, nil
}
