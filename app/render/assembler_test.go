package render

import (
	"strings"
	"testing"
)

func TestAssemble(t *testing.T) {
	template := `<html><head><title>{{TITLE}}</title></head>
<body><h1>{{TITLE}}</h1><main>{{BODY}}</main></body></html>`

	out, err := Assemble(template, map[string]string{
		"TITLE": "Frozen Banana Bites",
		"BODY":  "<p>content</p>",
	})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, "<title>Frozen Banana Bites</title>") {
		t.Errorf("Title placeholder not substituted: %s", out)
	}
	if !strings.Contains(out, "<h1>Frozen Banana Bites</h1>") {
		t.Errorf("Repeated placeholders substitute at every occurrence: %s", out)
	}
	if strings.Contains(out, "{{") || strings.Contains(out, "}}") {
		t.Errorf("Output must contain zero placeholder delimiters: %s", out)
	}
}

func TestAssembleUnresolvedPlaceholder(t *testing.T) {
	_, err := Assemble("<p>{{TITLE}} {{MISSING}}</p>", map[string]string{"TITLE": "x"})
	if err == nil {
		t.Fatal("Unresolved placeholders must fail fast")
	}
	if !strings.Contains(err.Error(), "MISSING") {
		t.Errorf("Error should name the unresolved placeholder, got: %v", err)
	}
}

func TestAssembleUnusedValue(t *testing.T) {
	_, err := Assemble("<p>{{TITLE}}</p>", map[string]string{
		"TITLE":  "x",
		"ORPHAN": "y",
	})
	if err == nil {
		t.Fatal("Values without placeholders must fail fast")
	}
	if !strings.Contains(err.Error(), "ORPHAN") {
		t.Errorf("Error should name the unused value, got: %v", err)
	}
}

func TestAssembleValueWithMarkerSyntax(t *testing.T) {
	// A substituted value is never re-expanded, and leftover marker
	// syntax in the output is rejected rather than shipped.
	_, err := Assemble("<p>{{BODY}}</p>", map[string]string{"BODY": "literal {{TITLE}}"})
	if err == nil {
		t.Fatal("Marker syntax introduced by a value must be rejected")
	}
}

func TestAssembleEmptyTemplate(t *testing.T) {
	out, err := Assemble("no markers here", map[string]string{})
	if err != nil {
		t.Fatal(err)
	}
	if out != "no markers here" {
		t.Errorf("Template without markers passes through, got: %s", out)
	}
}
