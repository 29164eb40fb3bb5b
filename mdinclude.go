// Package mdinclude expands include directives in line-oriented text
// documents such as Markdown:
//
//	{! path/to/file.md !}              whole file
//	{! src/main.go !tag=setup}         lines between tag::setup and end::setup
//	{! notes.txt !lines=3-7}           lines 3 to 7
//	{! https://example.com/a.md !}     remote resource
//
// Included content is scanned again, so includes nest. A directive that
// cannot be resolved is removed and reported on the configured logger; it
// never fails the whole document.
package mdinclude

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/miorlan/mdinclude/internal/domain"
	"github.com/miorlan/mdinclude/internal/infrastructure"
	"github.com/miorlan/mdinclude/internal/usecase"
)

// Option represents a configuration option for the includer
type Option func(*Config)

// Config holds the configuration for the includer
type Config struct {
	BasePath    string
	Encoding    string
	HTTPTimeout time.Duration
	MaxDepth    int
	MaxFileSize int64
	Validate    bool
	Logger      *slog.Logger
}

// WithBasePath sets the directory (or URL) relative references are resolved
// against. Process defaults to the current directory, ProcessFile to the
// directory of the input file.
func WithBasePath(path string) Option {
	return func(c *Config) {
		c.BasePath = path
	}
}

// WithEncoding sets the text encoding of included resources (default utf-8)
func WithEncoding(name string) Option {
	return func(c *Config) {
		c.Encoding = name
	}
}

// WithHTTPTimeout sets the timeout for HTTP requests (0 = no timeout)
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// WithMaxDepth sets the maximum include nesting depth (0 = unlimited)
func WithMaxDepth(depth int) Option {
	return func(c *Config) {
		c.MaxDepth = depth
	}
}

// WithMaxFileSize sets the maximum resource size in bytes (0 = unlimited)
func WithMaxFileSize(size int64) Option {
	return func(c *Config) {
		c.MaxFileSize = size
	}
}

// WithValidation enables OpenAPI validation of YAML/JSON output in ProcessFile
func WithValidation(validate bool) Option {
	return func(c *Config) {
		c.Validate = validate
	}
}

// WithLogger sets where diagnostics are written (default slog.Default())
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		Encoding:    "utf-8",
		HTTPTimeout: 30 * time.Second,
		MaxDepth:    0, // unlimited
		MaxFileSize: 0, // unlimited
	}
}

// Includer expands include directives
type Includer struct {
	resolver domain.IncludeResolver
	useCase  *usecase.IncludeUseCase
	config   *Config
}

// New creates a new Includer. It fails only if the encoding is unknown.
func New(opts ...Option) (*Includer, error) {
	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	decoder, err := infrastructure.NewTextDecoder(config.Encoding)
	if err != nil {
		return nil, err
	}
	fileLoader := infrastructure.NewFileLoaderWithTimeout(config.HTTPTimeout)
	resolver := infrastructure.NewIncludeResolver(fileLoader, decoder, config.Logger)

	useCase := usecase.NewIncludeUseCase(
		fileLoader,
		decoder,
		resolver,
		infrastructure.NewMarkdownRenderer(),
		infrastructure.NewFileWriter(),
		infrastructure.NewValidator(),
	)

	return &Includer{
		resolver: resolver,
		useCase:  useCase,
		config:   config,
	}, nil
}

// Process expands every directive in lines and returns the new lines. The
// returned error is non-nil only if ctx is done; the lines resolved so far
// are returned with it.
func (in *Includer) Process(ctx context.Context, lines []string) ([]string, error) {
	return in.resolver.ResolveLines(ctx, lines, domain.Config{
		BasePath:    in.config.BasePath,
		MaxFileSize: in.config.MaxFileSize,
		MaxDepth:    in.config.MaxDepth,
	})
}

// ProcessString is Process for a whole document. Line endings are
// normalized to "\n".
func (in *Includer) ProcessString(ctx context.Context, text string) (string, error) {
	lines, err := in.Process(ctx, domain.SplitLines(text))
	out := domain.JoinLines(lines)
	if !strings.HasSuffix(text, "\n") {
		out = strings.TrimSuffix(out, "\n")
	}
	return out, err
}

// ProcessFile expands inputPath and writes the result to outputPath ("-" for
// stdout). An .html output is rendered from Markdown.
//
// Example:
//
//	in, _ := mdinclude.New(mdinclude.WithMaxDepth(10))
//	err := in.ProcessFile(context.Background(), "README.src.md", "README.md")
func (in *Includer) ProcessFile(ctx context.Context, inputPath, outputPath string) error {
	_, err := in.useCase.Execute(ctx, inputPath, outputPath, usecase.Config{
		BasePath:    in.config.BasePath,
		Validate:    in.config.Validate,
		MaxFileSize: in.config.MaxFileSize,
		MaxDepth:    in.config.MaxDepth,
	})
	return err
}

// Process is a convenience function that expands lines with the default
// configuration
func Process(ctx context.Context, lines []string) ([]string, error) {
	in, err := New()
	if err != nil {
		return nil, err
	}
	return in.Process(ctx, lines)
}

// ProcessFile is a convenience function that expands inputPath into
// outputPath with the default configuration
//
// Example:
//
//	err := mdinclude.ProcessFile(context.Background(), "docs/index.src.md", "docs/index.md")
func ProcessFile(ctx context.Context, inputPath, outputPath string) error {
	in, err := New()
	if err != nil {
		return err
	}
	return in.ProcessFile(ctx, inputPath, outputPath)
}
