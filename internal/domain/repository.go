package domain

import "context"

// Config contains resolver configuration
type Config struct {
	// Source is the canonical location of the document being resolved, if any.
	Source      string
	BasePath    string
	MaxFileSize int64
	MaxDepth    int
}

// FileLoader locates and loads resources from filesystem or URL.
// Load fails with ErrResourceTooLarge when limit is positive and the resource
// is bigger than limit bytes.
type FileLoader interface {
	Locate(ref, basePath string) (string, error)
	Load(ctx context.Context, location string, limit int64) ([]byte, error)
}

// TextDecoder converts raw resource bytes to text using the configured encoding
type TextDecoder interface {
	Decode(data []byte) (string, error)
}

// IncludeResolver expands include directives in a sequence of lines
type IncludeResolver interface {
	ResolveLines(ctx context.Context, lines []string, config Config) ([]string, error)
}

// FileWriter writes files to filesystem
type FileWriter interface {
	Write(path string, data []byte) error
}

// Parser decodes configuration documents
type Parser interface {
	Unmarshal(data []byte, v interface{}, format FileFormat) error
}

// Renderer converts an expanded Markdown document to its final form
type Renderer interface {
	Render(source []byte) ([]byte, error)
}

// Validator validates OpenAPI specifications
type Validator interface {
	Validate(filePath string) error
}
