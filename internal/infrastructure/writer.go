package infrastructure

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/miorlan/mdinclude/internal/domain"
)

// StdoutPath - путь, означающий запись в стандартный вывод
const StdoutPath = "-"

// FileWriter реализует запись файлов
type FileWriter struct {
	stdout io.Writer
}

// NewFileWriter создает новый FileWriter
func NewFileWriter() domain.FileWriter {
	return &FileWriter{stdout: os.Stdout}
}

// Write записывает данные в файл
// Если data == nil, файл удаляется (используется при ошибке валидации)
func (fw *FileWriter) Write(path string, data []byte) error {
	if path == StdoutPath {
		if data == nil {
			return nil
		}
		_, err := fw.stdout.Write(data)
		return err
	}

	if data == nil {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	outputDir := filepath.Dir(path)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
