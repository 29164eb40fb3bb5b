package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/miorlan/mdinclude/internal/domain"
)

// Config holds configuration for include execution
type Config struct {
	// BasePath для относительных ссылок; пустой - каталог входного файла
	BasePath    string
	Validate    bool
	MaxFileSize int64
	MaxDepth    int
}

// Result описывает записанный документ
type Result struct {
	Lines int
	Bytes int
}

// IncludeUseCase реализует бизнес-логику раскрытия директив включения в документе
type IncludeUseCase struct {
	fileLoader      domain.FileLoader
	decoder         domain.TextDecoder
	includeResolver domain.IncludeResolver
	renderer        domain.Renderer
	fileWriter      domain.FileWriter
	validator       domain.Validator
}

// NewIncludeUseCase создает новый экземпляр IncludeUseCase
func NewIncludeUseCase(
	fileLoader domain.FileLoader,
	decoder domain.TextDecoder,
	includeResolver domain.IncludeResolver,
	renderer domain.Renderer,
	fileWriter domain.FileWriter,
	validator domain.Validator,
) *IncludeUseCase {
	return &IncludeUseCase{
		fileLoader:      fileLoader,
		decoder:         decoder,
		includeResolver: includeResolver,
		renderer:        renderer,
		fileWriter:      fileWriter,
		validator:       validator,
	}
}

// Execute раскрывает директивы во входном документе и записывает результат
func (uc *IncludeUseCase) Execute(ctx context.Context, inputPath, outputPath string, config Config) (Result, error) {
	// Проверяем контекст
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	location, err := uc.fileLoader.Locate(inputPath, "")
	if err != nil {
		return Result{}, fmt.Errorf("invalid input path: %w", err)
	}

	// Загружаем входной файл
	data, err := uc.fileLoader.Load(ctx, location, config.MaxFileSize)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load input file: %w", err)
	}

	text, err := uc.decoder.Decode(data)
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode input file: %w", err)
	}

	basePath := config.BasePath
	if basePath == "" {
		basePath = getBasePath(location)
	}

	// Раскрываем все директивы
	lines, err := uc.includeResolver.ResolveLines(ctx, domain.SplitLines(text), domain.Config{
		Source:      location,
		BasePath:    basePath,
		MaxFileSize: config.MaxFileSize,
		MaxDepth:    config.MaxDepth,
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve includes: %w", err)
	}

	output := []byte(domain.JoinLines(lines))
	if domain.DetectFormat(outputPath) == domain.FormatHTML {
		output, err = uc.renderer.Render(output)
		if err != nil {
			return Result{}, err
		}
	}

	// Записываем результат
	if err := uc.fileWriter.Write(outputPath, output); err != nil {
		return Result{}, fmt.Errorf("failed to write output file: %w", err)
	}

	// Валидация (если требуется)
	if config.Validate && isSpecFormat(outputPath) {
		if err := uc.validator.Validate(outputPath); err != nil {
			// Удаляем файл при ошибке валидации
			_ = uc.fileWriter.Write(outputPath, nil)
			return Result{}, fmt.Errorf("validation failed: %w", err)
		}
	}

	return Result{Lines: len(lines), Bytes: len(output)}, nil
}

// getBasePath определяет базовый путь для разрешения ссылок
func getBasePath(path string) string {
	// HTTP/HTTPS URL
	if domain.IsRemote(path) {
		lastSlash := strings.LastIndex(path, "/")
		if lastSlash >= len("https://") {
			return path[:lastSlash+1]
		}
		return path + "/"
	}

	// Локальный файл - возвращаем директорию
	absPath, err := filepath.Abs(path)
	if err != nil {
		// Если не удалось получить абсолютный путь, используем относительный
		return filepath.Dir(path)
	}
	return filepath.Dir(filepath.Clean(absPath))
}

func isSpecFormat(path string) bool {
	if path == "-" {
		return false
	}
	format := domain.DetectFormat(path)
	return format == domain.FormatYAML || format == domain.FormatJSON
}
