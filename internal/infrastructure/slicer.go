package infrastructure

import (
	"strings"

	"github.com/miorlan/mdinclude/internal/domain"
)

// Selection is the part of a resource picked by a selector. Warnings do not
// invalidate Lines: they describe what was skipped or why a fallback was used.
type Selection struct {
	Lines    []string
	Warnings []error
}

// Slicer applies directive selectors to resource lines
type Slicer struct{}

// NewSlicer создает новый Slicer
func NewSlicer() *Slicer {
	return &Slicer{}
}

// Apply returns the lines of source selected by sel.
func (s *Slicer) Apply(source []string, sel domain.Selector) Selection {
	switch sel.Kind {
	case domain.SelectTag:
		return s.tag(source, sel.Value)
	case domain.SelectLines:
		return s.lines(source, sel.Value)
	default:
		return Selection{Lines: source}
	}
}

// tag returns the lines strictly between tag::NAME and end::NAME. If either
// marker is missing the whole resource is returned so the content stays
// visible.
func (s *Slicer) tag(source []string, name string) Selection {
	start, end := -1, -1
	for i, line := range source {
		if strings.Contains(line, domain.TagStartMarker+name) {
			start = i
			break
		}
	}
	if start >= 0 {
		for i := start + 1; i < len(source); i++ {
			if strings.Contains(source[i], domain.TagEndMarker+name) {
				end = i
				break
			}
		}
	}

	switch {
	case start < 0:
		missing := "tag"
		for _, line := range source {
			if strings.Contains(line, domain.TagEndMarker+name) {
				missing = "start"
				break
			}
		}
		return Selection{Lines: source, Warnings: []error{&domain.ErrTagNotFound{Tag: name, Missing: missing}}}
	case end < 0:
		return Selection{Lines: source, Warnings: []error{&domain.ErrTagNotFound{Tag: name, Missing: "end"}}}
	}
	return Selection{Lines: source[start+1 : end]}
}

// lines walks source once, advancing through the sorted ranges, and stops
// after the last range or at the end of the resource.
func (s *Slicer) lines(source []string, spec string) Selection {
	ranges, warnings := domain.ParseLineSpec(spec)
	if len(ranges) == 0 {
		return Selection{Warnings: warnings}
	}

	out := make([]string, 0)
	next := 0
	for i, line := range source {
		for next < len(ranges) && ranges[next].End < i {
			next++
		}
		if next == len(ranges) {
			break
		}
		if ranges[next].Contains(i) {
			out = append(out, line)
		}
	}
	return Selection{Lines: out, Warnings: warnings}
}
