package repair

// stringScanner is a minimal state machine (outside-string, inside-string,
// inside-escape) shared by bracket matching and comma splitting, so both honor
// quoted spans identically.
type stringScanner struct {
	inString bool
	escaped  bool
}

// step advances over one character and reports whether the scanner was inside
// a quoted span before consuming it. Stray brackets or commas inside a quoted
// span must never act as structure.
func (s *stringScanner) step(ch byte) (inString bool) {
	inString = s.inString
	if s.inString {
		switch {
		case s.escaped:
			s.escaped = false
		case ch == '\\':
			s.escaped = true
		case ch == '"':
			s.inString = false
		}
		return inString
	}
	if ch == '"' {
		s.inString = true
	}
	return inString
}

// matchBracket returns the index of the ']' closing the '[' at start, or -1
// when the array is unterminated.
func matchBracket(s string, start int) int {
	var scan stringScanner
	depth := 0
	for i := start; i < len(s); i++ {
		ch := s[i]
		if scan.step(ch) {
			continue
		}
		switch ch {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitItems splits an array body on top-level commas. Commas embedded in
// quoted text do not split an item.
func splitItems(body string) []string {
	var items []string
	var buf []byte
	var scan stringScanner

	for i := 0; i < len(body); i++ {
		ch := body[i]
		if scan.step(ch) {
			buf = append(buf, ch)
			continue
		}
		if ch == ',' {
			items = append(items, string(buf))
			buf = buf[:0]
			continue
		}
		buf = append(buf, ch)
	}
	if len(buf) > 0 {
		items = append(items, string(buf))
	}
	return items
}
