package domain

// Origin records which resource produced a piece of text and through which
// chain of includes it got there. The root document has Depth 0.
type Origin struct {
	Key    string
	Parent *Origin
	Depth  int
}

// NewOrigin returns the origin of content loaded from key by a directive
// that appeared in text produced by parent.
func NewOrigin(key string, parent *Origin) *Origin {
	depth := 1
	if parent != nil {
		depth = parent.Depth + 1
	}
	return &Origin{Key: key, Parent: parent, Depth: depth}
}

// Includes reports whether key appears anywhere in the chain.
func (o *Origin) Includes(key string) bool {
	for cur := o; cur != nil; cur = cur.Parent {
		if cur.Key == key {
			return true
		}
	}
	return false
}

type mark struct {
	offset int
	origin *Origin
}

// Line is one line of a Document. Marks map byte offsets to the origin of the
// text starting there; a line glued together from several sources keeps the
// provenance of each part.
type Line struct {
	Text  string
	marks []mark
}

// OriginAt returns the origin of the byte at pos.
func (l Line) OriginAt(pos int) *Origin {
	var o *Origin
	for _, m := range l.marks {
		if m.offset > pos {
			break
		}
		o = m.origin
	}
	return o
}

func (l Line) marksIn(start, end, shift int) []mark {
	var out []mark
	current := l.OriginAt(start)
	out = append(out, mark{offset: shift, origin: current})
	for _, m := range l.marks {
		if m.offset <= start || m.offset >= end {
			continue
		}
		out = append(out, mark{offset: m.offset - start + shift, origin: m.origin})
	}
	return out
}

// Document is the ordered, mutable line buffer processed by one resolution
// pass.
type Document struct {
	lines []Line
}

// NewDocument wraps lines of the root document. origin identifies the
// document itself and may be nil when it has no location.
func NewDocument(lines []string, origin *Origin) *Document {
	d := &Document{lines: make([]Line, len(lines))}
	for i, text := range lines {
		d.lines[i] = Line{Text: text, marks: []mark{{offset: 0, origin: origin}}}
	}
	return d
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// Line returns the i-th line.
func (d *Document) Line(i int) Line {
	return d.lines[i]
}

// Splice replaces the byte range span of line i with the given lines, all of
// them attributed to origin. Text before the span is prepended to the first
// inserted line and text after it is appended to the last one; a side that is
// only whitespace is dropped, so an indented directive inserts the lines
// verbatim rather than indenting the first one alone. When nothing but
// whitespace is left the line disappears.
func (d *Document) Splice(i int, span [2]int, insert []string, origin *Origin) {
	line := d.lines[i]
	prefix := line.Text[:span[0]]
	suffix := line.Text[span[1]:]

	if len(insert) == 0 {
		joined := prefix + suffix
		if isBlank(joined) {
			d.replace(i, nil)
			return
		}
		marks := line.marksIn(0, span[0], 0)
		marks = append(marks, line.marksIn(span[1], len(line.Text), len(prefix))...)
		d.replace(i, []Line{{Text: joined, marks: marks}})
		return
	}

	if isBlank(prefix) {
		prefix = ""
	}
	if isBlank(suffix) {
		suffix = ""
	}

	out := make([]Line, len(insert))
	for j, text := range insert {
		out[j] = Line{Text: text, marks: []mark{{offset: 0, origin: origin}}}
	}

	if prefix != "" {
		first := out[0]
		marks := line.marksIn(0, span[0], 0)
		marks = append(marks, mark{offset: len(prefix), origin: origin})
		out[0] = Line{Text: prefix + first.Text, marks: marks}
	}
	if suffix != "" {
		last := out[len(out)-1]
		marks := append([]mark(nil), last.marks...)
		marks = append(marks, line.marksIn(span[1], len(line.Text), len(last.Text))...)
		out[len(out)-1] = Line{Text: last.Text + suffix, marks: marks}
	}
	d.replace(i, out)
}

func (d *Document) replace(i int, with []Line) {
	tail := append([]Line(nil), d.lines[i+1:]...)
	d.lines = append(append(d.lines[:i], with...), tail...)
}

// Lines returns the current text of the document.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	for i, l := range d.lines {
		out[i] = l.Text
	}
	return out
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}
