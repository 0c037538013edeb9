// Package statement splits multi-statement SQL text into single statements.
package statement

import (
	"strings"
)

type splitter struct {
	text    string
	stmts   []string
	cur     strings.Builder
	content bool
}

// Split cuts text on semicolons found outside quoted strings, quoted
// identifiers and comments. Statements are trimmed; statements holding only
// whitespace or comments are dropped.
func Split(text string) []string {
	var s = splitter{text: text}

	for i := 0; i < len(text); i++ {
		var c = text[i]

		switch {
		case c == '\'' || c == '"' || c == '`':
			i = s.quoted(i, c)
		case c == '-' && i+1 < len(text) && text[i+1] == '-':
			i = s.lineComment(i)
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			i = s.blockComment(i)
		case c == ';':
			s.flush()
		default:
			if !isSpace(c) {
				s.content = true
			}

			s.cur.WriteByte(c)
		}
	}

	s.flush()

	if s.stmts == nil {
		return []string{}
	}

	return s.stmts
}

// quoted consumes a quoted section starting at i and returns the index of its
// closing quote. A doubled quote is an escaped quote.
func (s *splitter) quoted(i int, q byte) int {
	s.content = true
	s.cur.WriteByte(q)

	for i++; i < len(s.text); i++ {
		var c = s.text[i]
		s.cur.WriteByte(c)

		if c != q {
			continue
		}

		if i+1 < len(s.text) && s.text[i+1] == q {
			i++
			s.cur.WriteByte(q)
			continue
		}

		return i
	}

	return i
}

func (s *splitter) lineComment(i int) int {
	var end = strings.IndexByte(s.text[i:], '\n')

	if end < 0 {
		s.cur.WriteString(s.text[i:])
		return len(s.text)
	}

	s.cur.WriteString(s.text[i : i+end+1])
	return i + end
}

func (s *splitter) blockComment(i int) int {
	var end = strings.Index(s.text[i+2:], "*/")

	if end < 0 {
		s.cur.WriteString(s.text[i:])
		return len(s.text)
	}

	s.cur.WriteString(s.text[i : i+2+end+2])
	return i + 2 + end + 1
}

func (s *splitter) flush() {
	var stmt = strings.TrimSpace(s.cur.String())

	if s.content && len(stmt) > 0 {
		s.stmts = append(s.stmts, stmt)
	}

	s.cur.Reset()
	s.content = false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
