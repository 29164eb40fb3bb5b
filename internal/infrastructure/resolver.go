package infrastructure

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/miorlan/mdinclude/internal/domain"
)

// IncludeResolver expands include directives until none are left
type IncludeResolver struct {
	fileLoader domain.FileLoader
	decoder    domain.TextDecoder
	slicer     *Slicer
	logger     *slog.Logger
}

// NewIncludeResolver создает новый IncludeResolver.
// Диагностика пишется в logger (по умолчанию slog.Default()).
func NewIncludeResolver(fileLoader domain.FileLoader, decoder domain.TextDecoder, logger *slog.Logger) domain.IncludeResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &IncludeResolver{
		fileLoader: fileLoader,
		decoder:    decoder,
		slicer:     NewSlicer(),
		logger:     logger,
	}
}

// ResolveLines replaces every directive in lines with the content it refers
// to. After each substitution the scan restarts from the first line, so
// directives brought in by included content are expanded as well. A
// directive that cannot be resolved is removed and reported; the only error
// returned is the context's.
func (r *IncludeResolver) ResolveLines(ctx context.Context, lines []string, config domain.Config) ([]string, error) {
	var root *domain.Origin
	if config.Source != "" {
		root = &domain.Origin{Key: config.Source}
	}
	doc := domain.NewDocument(lines, root)

	for {
		if err := ctx.Err(); err != nil {
			return doc.Lines(), err
		}

		i, d, found := nextDirective(doc)
		if !found {
			return doc.Lines(), nil
		}

		parent := doc.Line(i).OriginAt(d.Span[0])
		extracted, origin, err := r.resolve(ctx, d, parent, config)
		if err != nil {
			r.logger.Warn("ignoring include", "reference", d.Reference, "error", err)
			doc.Splice(i, d.Span, nil, parent)
			continue
		}
		doc.Splice(i, d.Span, extracted, origin)
	}
}

func nextDirective(doc *domain.Document) (int, domain.Directive, bool) {
	for i := 0; i < doc.Len(); i++ {
		if d, ok := domain.FindDirective(doc.Line(i).Text); ok {
			return i, d, true
		}
	}
	return 0, domain.Directive{}, false
}

func (r *IncludeResolver) resolve(ctx context.Context, d domain.Directive, parent *domain.Origin, config domain.Config) ([]string, *domain.Origin, error) {
	location, err := r.fileLoader.Locate(d.Reference, config.BasePath)
	if err != nil {
		return nil, nil, err
	}

	if parent.Includes(location) {
		return nil, nil, &domain.ErrCircularReference{Path: location}
	}
	origin := domain.NewOrigin(location, parent)
	if config.MaxDepth > 0 && origin.Depth > config.MaxDepth {
		return nil, nil, &domain.ErrMaxDepthExceeded{Path: location, Depth: config.MaxDepth}
	}

	data, err := r.fileLoader.Load(ctx, location, config.MaxFileSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", location, err)
	}

	text, err := r.decoder.Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s: %w", location, err)
	}

	selection := r.slicer.Apply(domain.SplitLines(text), d.Selector)
	for _, w := range selection.Warnings {
		r.logger.Warn("include snippet", "location", location, "selector", d.Selector.Kind.String(), "error", w)
	}
	r.logger.Debug("included", "location", location, "selector", d.Selector.Kind.String(), "lines", len(selection.Lines), "depth", origin.Depth)

	return selection.Lines, origin, nil
}
