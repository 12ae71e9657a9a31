package recipe

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidSlug reports whether s is a well-formed recipe slug.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// ParseError marks a record whose JSON could not be decoded. It is
// fatal for that record in every load mode.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse record %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseRecord decodes one Recipe Record. Unknown fields are ignored.
// The returned warnings flag records missing recommended fields; the
// record is still usable. A decode failure is fatal for the record.
func ParseRecord(data []byte, source string) (*Record, []string, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil, &ParseError{Source: source, Err: err}
	}

	warnings := validateRecord(&rec)

	return &rec, warnings, nil
}

func validateRecord(rec *Record) []string {
	var warnings []string

	if rec.Slug == "" {
		warnings = append(warnings, "record is missing a slug")
	} else if !ValidSlug(rec.Slug) {
		warnings = append(warnings, fmt.Sprintf("slug %q does not match ^[a-z0-9-]+$", rec.Slug))
	}

	if rec.Title == "" {
		warnings = append(warnings, "record is missing a title")
	}

	if len(rec.Instructions) == 0 {
		warnings = append(warnings, "record has no instructions")
	}
	for i, step := range rec.Instructions {
		if i > 0 && step.Step <= rec.Instructions[i-1].Step {
			warnings = append(warnings, fmt.Sprintf("instruction step numbers are not strictly increasing at index %d", i))
			break
		}
	}

	for i, ing := range rec.Ingredients {
		if ing.Amount == "" {
			continue
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(ing.Amount), 64)
		if err != nil || amount < 0 {
			warnings = append(warnings, fmt.Sprintf("ingredient %d has a non-numeric or negative amount %q", i, ing.Amount))
		}
	}

	if !rec.Image.Hero.Usable() {
		warnings = append(warnings, "record has no usable hero image")
	}
	if !rec.Image.Thumbnail.Usable() {
		warnings = append(warnings, "record has no usable thumbnail image")
	}

	return warnings
}
