// File: internal/browser/parser/selector.go
package parser

import "strings"

// Selector is a simple selector: optional tag (empty or "*" is universal),
// optional id, and a set of class names that must all be present.
type Selector struct {
	TagName string
	ID      string
	Classes []string
}

// Specificity is the (id, class, tag) triple compared most significant first.
type Specificity struct {
	A, B, C int
}

// Compare returns -1, 0 or +1.
func (s Specificity) Compare(o Specificity) int {
	switch {
	case s.A != o.A:
		return sign(s.A - o.A)
	case s.B != o.B:
		return sign(s.B - o.B)
	default:
		return sign(s.C - o.C)
	}
}

// Less reports whether s ranks strictly below o.
func (s Specificity) Less(o Specificity) bool { return s.Compare(o) < 0 }

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// Specificity calculates the selector's specificity. The universal tag does
// not count.
func (s Selector) Specificity() Specificity {
	var sp Specificity
	if s.ID != "" {
		sp.A = 1
	}
	sp.B = len(s.Classes)
	if s.TagName != "" && s.TagName != "*" {
		sp.C = 1
	}
	return sp
}

// IsUniversal reports whether the selector matches any tag.
func (s Selector) IsUniversal() bool {
	return s.TagName == "" || s.TagName == "*"
}

func (s Selector) isValid() bool {
	return s.TagName != "" || s.ID != "" || len(s.Classes) > 0
}

func (s Selector) String() string {
	var b strings.Builder
	b.WriteString(s.TagName)
	if s.ID != "" {
		b.WriteByte('#')
		b.WriteString(s.ID)
	}
	for _, c := range s.Classes {
		b.WriteByte('.')
		b.WriteString(c)
	}
	if b.Len() == 0 {
		return "*"
	}
	return b.String()
}
