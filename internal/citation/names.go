// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/happyref/pkg/types"
)

const (
	vancouverEtAlAfter = 3
	vancouverKeep      = 2
	apaEllipsisAfter   = 20
	apaKeep            = 19
	chicagoEtAlAfter   = 3
)

// initial returns the first letter of s, upper-cased, or "".
func initial(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r))
}

// familyInitial writes "Family, G." (Harvard, APA, AP).
func familyInitial(a types.Author) string {
	family := strings.TrimSpace(a.Family)
	in := initial(a.Given)
	switch {
	case family == "":
		return strings.TrimSpace(a.Given)
	case in == "":
		return family
	default:
		return family + ", " + in + "."
	}
}

// familySpaceInitial writes "Family G" (Vancouver).
func familySpaceInitial(a types.Author) string {
	family := strings.TrimSpace(a.Family)
	if family == "" {
		return strings.TrimSpace(a.Given)
	}
	return strings.TrimSpace(family + " " + initial(a.Given))
}

// familyWordInitials writes the family name followed by the initial of each
// word of the given name, without periods: "Hinton GE" (AMA).
func familyWordInitials(a types.Author) string {
	family := strings.TrimSpace(a.Family)
	if family == "" {
		return strings.TrimSpace(a.Given)
	}
	var b strings.Builder
	for _, w := range strings.FieldsFunc(a.Given, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '.'
	}) {
		b.WriteString(initial(w))
	}
	if b.Len() == 0 {
		return family
	}
	return family + " " + b.String()
}

// fullName writes "Given Family" (Chicago, Canadian, Oxford).
func fullName(a types.Author) string {
	return a.FullName()
}

func commaJoin(names []string) string {
	return strings.Join(names, ", ")
}

func andJoin(names []string) string {
	return strings.Join(names, " and ")
}

// vancouverJoin keeps the first two authors and replaces the rest with
// "et al" when there are more than three.
func vancouverJoin(names []string) string {
	if len(names) > vancouverEtAlAfter {
		kept := append(names[:vancouverKeep:vancouverKeep], "et al")
		return strings.Join(kept, ", ")
	}
	return strings.Join(names, ", ")
}

// apaJoin distinguishes one, two, up to twenty, and more than twenty
// authors. Beyond twenty it lists the first nineteen, an ellipsis, and the
// final author.
func apaJoin(names []string) string {
	n := len(names)
	switch {
	case n == 1:
		return names[0]
	case n == 2:
		return names[0] + " & " + names[1]
	case n > apaEllipsisAfter:
		return strings.Join(names[:apaKeep], ", ") + ", ..., " + names[n-1]
	default:
		return strings.Join(names[:n-1], ", ") + ", & " + names[n-1]
	}
}

// chicagoJoin writes "A and B", "A, B, and C", or "A et al." beyond three.
func chicagoJoin(names []string) string {
	if len(names) > chicagoEtAlAfter {
		return names[0] + " et al."
	}
	return serialAnd(names)
}

// oxfordJoin writes a comma-separated list with "and" before the last name.
func oxfordJoin(names []string) string {
	return serialAnd(names)
}

func serialAnd(names []string) string {
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}
