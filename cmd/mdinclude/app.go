package main

import (
	"log/slog"

	"github.com/miorlan/mdinclude/internal/config"
	"github.com/miorlan/mdinclude/internal/infrastructure"
	"github.com/miorlan/mdinclude/internal/usecase"
)

// newIncluder создает новый экземпляр IncludeUseCase с зависимостями
func newIncluder(cfg config.Config, logger *slog.Logger) (*usecase.IncludeUseCase, error) {
	decoder, err := infrastructure.NewTextDecoder(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	fileLoader := infrastructure.NewFileLoaderWithTimeout(cfg.Timeout())
	includeResolver := infrastructure.NewIncludeResolver(fileLoader, decoder, logger)

	return usecase.NewIncludeUseCase(
		fileLoader,
		decoder,
		includeResolver,
		infrastructure.NewMarkdownRenderer(),
		infrastructure.NewFileWriter(),
		infrastructure.NewValidator(),
	), nil
}
