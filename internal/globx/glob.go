// Package globx translates shell-style glob patterns into regular
// expressions. Matching is search-style: unanchored at the start of the
// subject but anchored at its end, so "keys-?" matches "ssh-keys-1" while
// "ssh-keys-?" does not match "ssh-keys-12".
package globx

import (
	"regexp"
	"strings"
)

// Translate converts a glob pattern to a regular-expression source string,
// anchored at the end of the subject with \z.
//
// Supported meta characters:
//
//	*        any run of characters (including none)
//	?        any single character
//	[seq]    any character in seq
//	[!seq]   any character not in seq
//
// Everything else is matched literally.
func Translate(pattern string) string {
	var b strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			j := i + 1
			if j < len(runes) && runes[j] == '!' {
				j++
			}
			if j < len(runes) && runes[j] == ']' {
				j++
			}
			for j < len(runes) && runes[j] != ']' {
				j++
			}
			if j >= len(runes) {
				// unterminated set, treat '[' literally
				b.WriteString(regexp.QuoteMeta(string(c)))
				continue
			}
			set := string(runes[i+1 : j])
			i = j
			set = strings.ReplaceAll(set, `\`, `\\`)
			if strings.HasPrefix(set, "!") {
				set = "^" + set[1:]
			} else if strings.HasPrefix(set, "^") {
				set = `\` + set
			}
			b.WriteString("[" + set + "]")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString(`\z`)
	return b.String()
}

// Compile translates pattern and compiles the result. Use MatchString on
// the returned regexp: the pattern may begin anywhere in the subject but
// must reach its end.
func Compile(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(Translate(pattern))
}
