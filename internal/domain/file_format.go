package domain

import (
	"path/filepath"
	"strings"
)

// FileFormat представляет формат файла
type FileFormat string

const (
	FormatText     FileFormat = "text"
	FormatMarkdown FileFormat = "markdown"
	FormatHTML     FileFormat = "html"
	FormatYAML     FileFormat = "yaml"
	FormatJSON     FileFormat = "json"
)

// DetectFormat определяет формат файла по пути
func DetectFormat(filePath string) FileFormat {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".html", ".htm":
		return FormatHTML
	case ".yaml", ".yml":
		return FormatYAML
	case ".json", ".jsonc":
		return FormatJSON
	}
	return FormatText // По умолчанию
}
