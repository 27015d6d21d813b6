// Package preset resolves free-form directive values to render handlers.
//
// A directive value starts with a preset name followed by free text:
//
//	parallax+fade-in hero      -> preset "parallax+fade-in", rest "hero"
//	photo "Shrimp Jesus" - ... -> preset "photo", rest `"Shrimp Jesus" - ...`
//
// Preset names are opaque to the transformer; the Registry maps them to
// handlers and falls back to a visible placeholder for anything unknown.
package preset

import (
	"regexp"
	"strings"

	"github.com/riverfjs/directivemd/internal/types"
)

// Parse splits a directive value into its preset name and the remaining text.
func Parse(value string) (name, rest string) {
	value = strings.TrimSpace(value)
	name, rest, _ = strings.Cut(value, " ")
	return strings.ToLower(name), strings.TrimSpace(rest)
}

// Effects splits a compound preset such as "parallax+fade-in".
func Effects(name string) []string {
	parts := strings.Split(name, "+")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var mediaRe = regexp.MustCompile(`^"([^"]*)"\s*(?:-\s*(.*))?$`)

// MediaTitle extracts the quoted title and trailing caption of a media value,
// e.g. `"Shrimp Jesus" - AI slop on Facebook`.
func MediaTitle(rest string) (title, caption string) {
	m := mediaRe.FindStringSubmatch(strings.TrimSpace(rest))
	if m == nil {
		return "", strings.TrimSpace(rest)
	}
	return m[1], strings.TrimSpace(m[2])
}

// Element is the view of a typed node handed to a Handler.
type Element struct {
	Kind        types.Kind
	Value       string
	Preset      string
	Rest        string
	ID          string
	Range       bool
	ClassPrefix string
}

// NewElement builds an Element and parses its preset name.
func NewElement(kind types.Kind, value, id string, isRange bool, classPrefix string) Element {
	name, rest := Parse(value)
	return Element{
		Kind:        kind,
		Value:       value,
		Preset:      name,
		Rest:        rest,
		ID:          id,
		Range:       isRange,
		ClassPrefix: classPrefix,
	}
}
