package osc

import (
	"regexp"
	"strings"
)

////
// Utility and helper functions
////

// getRegEx compiles and returns a regular expression object for the given
// OSC address `pattern`.
func getRegEx(pattern string) (*regexp.Regexp, error) {
	for _, trs := range []struct {
		old, new string
	}{
		{".", `\.`}, // Escape all '.' in the pattern
		{"(", `\(`}, // Escape all '(' in the pattern
		{")", `\)`}, // Escape all ')' in the pattern
		{"*", ".*"}, // Replace a '*' with '.*' that matches zero or more chars
		{"{", "("},  // Change a '{' to '('
		{",", "|"},  // Change a ',' to '|'
		{"}", ")"},  // Change a '}' to ')'
		{"?", "."},  // Change a '?' to '.'
	} {
		pattern = strings.ReplaceAll(pattern, trs.old, trs.new)
	}

	return regexp.Compile(pattern)
}

// existsInOrder reports whether addr is present in the ordered method list.
func existsInOrder(methods []string, addr string) bool {
	for _, m := range methods {
		if m == addr {
			return true
		}
	}
	return false
}
