package domain

import (
	"regexp"
	"strings"
)

// directivePattern matches {! reference !}, {! reference !tag=NAME} and
// {! reference !lines=SPEC}. Only the first match on a line is used.
const directivePattern = `\{!\s*(.+?)\s*!(?:tag=([A-Za-z0-9_-]+)|lines=([^}]*))?\}`

const (
	TagStartMarker = "tag::"
	TagEndMarker   = "end::"
)

var directiveRe = regexp.MustCompile(directivePattern)

// SelectorKind is the content-slicing mode requested by a directive.
type SelectorKind int

const (
	SelectAll SelectorKind = iota
	SelectTag
	SelectLines
)

func (k SelectorKind) String() string {
	switch k {
	case SelectTag:
		return "tag"
	case SelectLines:
		return "lines"
	default:
		return "all"
	}
}

// Selector narrows a resource to a subset of its lines. Value holds the tag
// name for SelectTag and the raw line spec for SelectLines.
type Selector struct {
	Kind  SelectorKind
	Value string
}

// Directive is a single include statement found in a line.
type Directive struct {
	Reference string
	Selector  Selector
	// Span is the byte range [start, end) of the directive in its line.
	Span [2]int
}

// FindDirective reports the first include directive in line.
func FindDirective(line string) (Directive, bool) {
	m := directiveRe.FindStringSubmatchIndex(line)
	if m == nil {
		return Directive{}, false
	}

	d := Directive{
		Reference: strings.TrimSpace(line[m[2]:m[3]]),
		Span:      [2]int{m[0], m[1]},
	}
	switch {
	case m[4] >= 0:
		d.Selector = Selector{Kind: SelectTag, Value: line[m[4]:m[5]]}
	case m[6] >= 0:
		d.Selector = Selector{Kind: SelectLines, Value: line[m[6]:m[7]]}
	}
	return d, true
}

// IsRemote reports whether ref is an http:// or https:// URL.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
