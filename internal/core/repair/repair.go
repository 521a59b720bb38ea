// Package repair recovers a usable key → quote-list structure from the
// quasi-JSON a completion model emits: doubled quotation marks, stray
// backslash-escaped quotes wrapping array items, smart quotes, and bare
// unquoted fragments left behind when a string was cut mid-token.
//
// It never fails. When no array keys can be located it hands back the
// quote-normalized input so the caller can attempt one strict parse; if that
// also fails the document counts as an extraction miss, not an error.
package repair

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Record is the recovered structure: whatever top-level array keys were
// detected, each with its ordered, cleaned quote list.
type Record map[string][]string

var (
	doubledQuoteRE = regexp.MustCompile(`""([^"]*?)""`)
	escapedWrapRE  = regexp.MustCompile(`"\\"(.*?)\\""`)

	quotedKeyRE = regexp.MustCompile(`"([^"]+)"\s*:\s*\[`)
	bareKeyRE   = regexp.MustCompile(`([A-Za-z][A-Za-z0-9_]*)\s*:\s*\[`)

	leadJunkRE    = regexp.MustCompile(`^[\s\]]+`)
	trailJunkRE   = regexp.MustCompile(`[\s\[]+$`)
	escapedPairRE = regexp.MustCompile(`^\\"(.*)\\"$`)
	quoteRunRE    = regexp.MustCompile(`^"+(.*)"+$`)
	spaceRunRE    = regexp.MustCompile(`\s+`)
)

// Normalize collapses doubled quotation marks and escaped-quote wrapping to a
// fixed point. Idempotent: running it on its own output changes nothing.
func Normalize(s string) string {
	s = fixpoint(strings.TrimSpace(s), doubledQuoteRE)
	s = fixpoint(s, escapedWrapRE)
	return s
}

func fixpoint(s string, re *regexp.Regexp) string {
	for {
		next := re.ReplaceAllString(s, `"$1"`)
		if next == s {
			return s
		}
		s = next
	}
}

// Repair recovers every detectable "key": [ ... ] array from input. When no
// key is found it returns a nil Record together with the normalized text; the
// absence of keys signals that a strict re-parse is the caller's only
// remaining option. The second return always carries the normalized input.
func Repair(input string) (Record, string) {
	s := Normalize(input)

	matches := quotedKeyRE.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		matches = bareKeyRE.FindAllStringSubmatchIndex(s, -1)
	}
	if len(matches) == 0 {
		return nil, s
	}

	rec := make(Record, len(matches))
	for _, m := range matches {
		key := s[m[2]:m[3]]

		bracketStart := m[1] - 1
		if bracketStart < 0 || bracketStart >= len(s) || s[bracketStart] != '[' {
			continue
		}

		bracketEnd := matchBracket(s, bracketStart)
		if bracketEnd == -1 {
			// Unterminated array: take everything that is left.
			bracketEnd = len(s) - 1
		}

		body := s[bracketStart+1 : bracketEnd]
		rec[key] = cleanItems(splitItems(body))
	}

	return rec, s
}

// cleanItems normalizes each candidate token. A token that is not
// quote-delimited at all is treated as a continuation fragment of the
// previous item and re-joined to it; a short but properly quoted token is
// always kept as its own item. False joins must stay conservative: merging
// unrelated clinical statements is worse than a truncated fragment.
func cleanItems(tokens []string) []string {
	var cleaned []string

	for _, tok := range tokens {
		t := strings.TrimSpace(tok)
		if t == "" {
			continue
		}

		t = leadJunkRE.ReplaceAllString(t, "")
		t = strings.TrimSpace(trailJunkRE.ReplaceAllString(t, ""))

		if quoteDelimited(t) {
			if item := unescapeWrappers(t); item != "" {
				cleaned = append(cleaned, item)
			}
			continue
		}

		bare := unescapeWrappers(t)
		if bare == "" {
			continue
		}
		if len(cleaned) > 0 {
			last := cleaned[len(cleaned)-1]
			if strings.HasSuffix(last, ",") || strings.HasSuffix(last, ";") || strings.HasSuffix(last, ":") {
				cleaned[len(cleaned)-1] = last + " " + bare
			} else {
				cleaned[len(cleaned)-1] = last + ", " + bare
			}
		} else {
			cleaned = append(cleaned, bare)
		}
	}

	final := make([]string, 0, len(cleaned))
	for _, item := range cleaned {
		x := strings.TrimSpace(spaceRunRE.ReplaceAllString(item, " "))
		x = strings.ReplaceAll(x, "“", `"`)
		x = strings.ReplaceAll(x, "”", `"`)
		final = append(final, x)
	}
	return final
}

func quoteDelimited(t string) bool {
	return strings.HasPrefix(t, `"`) || strings.HasSuffix(t, `"`) ||
		strings.HasPrefix(t, "“") || strings.HasSuffix(t, "”")
}

func stripOuterQuotes(t string) string {
	t = strings.TrimSpace(t)
	if len(t) >= 2 && t[0] == '"' && t[len(t)-1] == '"' {
		t = t[1 : len(t)-1]
	}
	first, fz := utf8.DecodeRuneInString(t)
	last, lz := utf8.DecodeLastRuneInString(t)
	if len(t) >= fz+lz && smartQuote(first) && smartQuote(last) {
		t = t[fz : len(t)-lz]
	}
	return strings.TrimSpace(t)
}

func smartQuote(r rune) bool {
	return r == '“' || r == '”'
}

func unescapeWrappers(t string) string {
	t = stripOuterQuotes(t)
	t = escapedPairRE.ReplaceAllString(t, "$1")
	t = quoteRunRE.ReplaceAllString(t, "$1")
	return strings.TrimSpace(t)
}
