package recipe

import (
	"fmt"
	"regexp"
	"strings"
)

// The editable text form of a record is line-oriented: a title line, then
// marker lines introducing each section. The markers are the literals the
// original service emits, so text pasted from it round-trips.
const (
	markerCategories   = "קטגוריה:"
	markerIngredients  = "מרכיבים:"
	markerInstructions = "הוראות הכנה:"
	markerURL          = "קישור:"
	markerNotes        = "הערות:"
)

type decodeState int

const (
	stateTitle decodeState = iota
	stateCategory
	stateIngredients
	stateInstructions
	stateURL
	stateNotes
)

// transitions maps a marker line to the state it opens. Keeping the coupling
// in one table makes the marker set auditable.
var transitions = map[string]decodeState{
	markerCategories:   stateCategory,
	markerIngredients:  stateIngredients,
	markerInstructions: stateInstructions,
	markerURL:          stateURL,
	markerNotes:        stateNotes,
}

var ordinalPrefix = regexp.MustCompile(`^\d+\.\s*`)

// Encode renders a record into its editable text form.
func Encode(r Record) string {
	var b strings.Builder
	b.WriteString(r.Title)
	b.WriteString("\n")
	b.WriteString(markerCategories)
	b.WriteString("\n")
	b.WriteString(strings.Join(r.Categories, ","))
	b.WriteString("\n")
	b.WriteString(markerIngredients)
	b.WriteString("\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "* %s\n", ing)
	}
	b.WriteString(markerInstructions)
	b.WriteString("\n")
	for i, inst := range r.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, inst)
	}
	if r.URL != "" {
		b.WriteString(markerURL)
		b.WriteString("\n")
		b.WriteString(r.URL)
		b.WriteString("\n")
	}
	if r.Notes != "" {
		b.WriteString(markerNotes)
		b.WriteString("\n")
		b.WriteString(r.Notes)
		b.WriteString("\n")
	}
	return b.String()
}

// Decode parses the editable text form back into record fields. It is a
// single-pass state machine and never fails: lines that fit no state are
// skipped, and malformed input simply yields a partial record. Identity
// fields (id, owner) are not part of the text form; the caller carries them.
//
// Categories round-trip only up to comma-split and whitespace trim. That
// lossiness is intentional: the original service stores them as one
// comma-joined string.
func Decode(text string) Record {
	var r Record
	state := stateTitle

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// The first non-blank line is always the title, even when it
		// looks like a marker.
		if state == stateTitle {
			r.Title = line
			state = stateCategory
			continue
		}

		if next, ok := transitions[line]; ok {
			state = next
			continue
		}

		switch state {
		case stateCategory:
			if len(r.Categories) == 0 {
				r.Categories = splitCategories(line)
			}
		case stateIngredients:
			if rest, ok := strings.CutPrefix(line, "* "); ok {
				r.Ingredients = append(r.Ingredients, strings.TrimSpace(rest))
			}
		case stateInstructions:
			if loc := ordinalPrefix.FindString(line); loc != "" {
				r.Instructions = append(r.Instructions, line[len(loc):])
			}
		case stateURL:
			if r.URL == "" {
				r.URL = line
			}
		case stateNotes:
			if r.Notes == "" {
				r.Notes = line
			}
		}
	}
	return r
}

func splitCategories(line string) []string {
	var out []string
	for _, c := range strings.Split(line, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
