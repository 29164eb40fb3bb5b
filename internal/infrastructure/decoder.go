package infrastructure

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/miorlan/mdinclude/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TextDecoder декодирует содержимое ресурсов в заданной кодировке
type TextDecoder struct {
	name     string
	encoding encoding.Encoding
}

// NewTextDecoder создает декодер для кодировки name ("utf-8", "latin1", "shift_jis", ...)
func NewTextDecoder(name string) (domain.TextDecoder, error) {
	if strings.TrimSpace(name) == "" {
		name = "utf-8"
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	return &TextDecoder{name: name, encoding: enc}, nil
}

// Decode преобразует байты в текст
func (d *TextDecoder) Decode(data []byte) (string, error) {
	if d.encoding == unicode.UTF8 {
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", fmt.Errorf("content is not valid %s", d.name)
		}
		return string(data), nil
	}

	out, err := d.encoding.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s content: %w", d.name, err)
	}
	return string(out), nil
}
