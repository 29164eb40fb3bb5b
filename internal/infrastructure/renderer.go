package infrastructure

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/miorlan/mdinclude/internal/domain"
)

// MarkdownRenderer превращает развернутый Markdown в HTML
type MarkdownRenderer struct {
	md goldmark.Markdown
}

// NewMarkdownRenderer создает новый рендерер
func NewMarkdownRenderer() domain.Renderer {
	return &MarkdownRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.DefinitionList,
			),
		),
	}
}

// Render преобразует Markdown в HTML
func (r *MarkdownRenderer) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.Bytes(), nil
}
