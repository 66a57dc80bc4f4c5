// Package cookies reads and formats raw cookie strings the way a browser
// exposes them to page scripts ("a=1; b=2").
package cookies

import (
	"net/url"
	"strings"
)

// Pair is one name=value entry of a raw cookie string.
type Pair struct {
	Name  string
	Value string
}

// Parse splits raw on ';' and returns every non-empty entry in order.
// Entries are trimmed; the value is the text between the first and second '='.
func Parse(raw string) []Pair {
	var pairs []Pair
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pairs = append(pairs, split(part))
	}
	return pairs
}

// FindPrefix returns the first entry whose name starts with prefix.
// Matching is by prefix, so "cookies_preferences_set_21_3_old" also matches
// "cookies_preferences_set_21_3".
func FindPrefix(raw, prefix string) (Pair, bool) {
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, prefix) {
			return split(part), true
		}
	}
	return Pair{}, false
}

func split(entry string) Pair {
	name, rest, _ := strings.Cut(entry, "=")
	value, _, _ := strings.Cut(rest, "=")
	return Pair{Name: name, Value: value}
}

// Format renders pairs back into a raw cookie string.
func Format(pairs []Pair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.Name+"="+p.Value)
	}
	return strings.Join(parts, "; ")
}

// EscapeComponent percent-encodes s like encodeURIComponent: spaces become
// %20 rather than '+'.
func EscapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// UnescapeComponent reverses EscapeComponent.
func UnescapeComponent(s string) (string, error) {
	return url.PathUnescape(s)
}
