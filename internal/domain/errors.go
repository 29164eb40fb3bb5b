package domain

import "fmt"

// ErrCircularReference - ресурс включает сам себя (прямо или через цепочку включений)
type ErrCircularReference struct {
	Path string
}

func (e *ErrCircularReference) Error() string {
	return fmt.Sprintf("circular reference detected: %s", e.Path)
}

// ErrInvalidReference - директива не содержит пути или URL
type ErrInvalidReference struct {
	Ref string
}

func (e *ErrInvalidReference) Error() string {
	return fmt.Sprintf("invalid reference: %q", e.Ref)
}

// ErrMaxDepthExceeded - превышена максимальная глубина вложенных включений
type ErrMaxDepthExceeded struct {
	Path  string
	Depth int
}

func (e *ErrMaxDepthExceeded) Error() string {
	return fmt.Sprintf("maximum include depth %d exceeded: %s", e.Depth, e.Path)
}

// ErrResourceTooLarge - размер ресурса превышает MaxFileSize
type ErrResourceTooLarge struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *ErrResourceTooLarge) Error() string {
	return fmt.Sprintf("file size %d exceeds maximum allowed size %d: %s", e.Size, e.Limit, e.Path)
}

// ErrTagNotFound - не найден маркер начала и/или конца региона.
// Missing принимает значения "start", "end" или "tag" (оба маркера).
type ErrTagNotFound struct {
	Tag     string
	Missing string
}

func (e *ErrTagNotFound) Error() string {
	switch e.Missing {
	case "start":
		return fmt.Sprintf("could not find start of tag: %s", e.Tag)
	case "end":
		return fmt.Sprintf("could not find end of tag: %s", e.Tag)
	default:
		return fmt.Sprintf("could not find tag: %s", e.Tag)
	}
}

// ErrInvalidLineSpec - некорректный элемент в lines=...
type ErrInvalidLineSpec struct {
	Token  string
	Reason string
}

func (e *ErrInvalidLineSpec) Error() string {
	return fmt.Sprintf("invalid line spec %q: %s", e.Token, e.Reason)
}
