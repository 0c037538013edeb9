package engine

import (
	"regexp"
	"strings"
)

type Kind int

const (
	Read Kind = iota
	Mutating
)

func (k Kind) String() string {
	switch k {
	case Mutating:
		return "mutating"
	default:
		return "read"
	}
}

var mutatingRegexp = regexp.MustCompile(`(?i)^(?:insert|update|merge|delete)`)

// Classify tells whether a statement reports an affected row count (Mutating)
// or returns a cursor (Read). Leading whitespace and comments are ignored.
func Classify(stmt string) Kind {
	if mutatingRegexp.MatchString(skipLeadingComments(stmt)) {
		return Mutating
	}

	return Read
}

func skipLeadingComments(stmt string) string {
	for {
		stmt = strings.TrimLeft(stmt, " \t\r\n")

		switch {
		case strings.HasPrefix(stmt, "--"):
			_, rest, found := strings.Cut(stmt, "\n")

			if !found {
				return ""
			}

			stmt = rest
		case strings.HasPrefix(stmt, "/*"):
			_, rest, found := strings.Cut(stmt[2:], "*/")

			if !found {
				return ""
			}

			stmt = rest
		default:
			return stmt
		}
	}
}
