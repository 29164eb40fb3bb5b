package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/miorlan/mdinclude/internal/domain"
)

// FileLoader реализует загрузку ресурсов (локальных файлов и по HTTP)
type FileLoader struct {
	client *http.Client
}

// NewFileLoader создает новый FileLoader
func NewFileLoader() domain.FileLoader {
	return NewFileLoaderWithTimeout(30 * time.Second)
}

// NewFileLoaderWithTimeout создает новый FileLoader с указанным таймаутом.
// Нулевой таймаут означает ожидание без ограничения.
func NewFileLoaderWithTimeout(timeout time.Duration) domain.FileLoader {
	return &FileLoader{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Locate превращает ссылку из директивы в абсолютный путь или URL
func (fl *FileLoader) Locate(ref, basePath string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", &domain.ErrInvalidReference{Ref: ref}
	}

	if domain.IsRemote(ref) {
		return ref, nil
	}

	ref, err := expandHome(ref)
	if err != nil {
		return "", err
	}

	if domain.IsRemote(basePath) && !filepath.IsAbs(ref) {
		base, err := url.Parse(basePath)
		if err != nil {
			return "", fmt.Errorf("invalid base URL: %w", err)
		}
		rel, err := url.Parse(filepath.ToSlash(ref))
		if err != nil {
			return "", &domain.ErrInvalidReference{Ref: ref}
		}
		return base.ResolveReference(rel).String(), nil
	}

	if !filepath.IsAbs(ref) {
		if basePath == "" {
			basePath = "."
		}
		ref = filepath.Join(basePath, ref)
	}

	absPath, err := filepath.Abs(filepath.Clean(ref))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	return absPath, nil
}

// Load загружает файл с локального диска или по HTTP.
// Положительный limit ограничивает размер ресурса в байтах; ресурс
// большего размера не читается целиком.
func (fl *FileLoader) Load(ctx context.Context, location string, limit int64) ([]byte, error) {
	// Проверяем контекст
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if domain.IsRemote(location) {
		return fl.loadHTTP(ctx, location, limit)
	}

	if limit > 0 {
		info, err := os.Stat(location)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, &ErrFileNotFound{Path: location}
			}
			return nil, err
		}
		if info.Size() > limit {
			return nil, &domain.ErrResourceTooLarge{Path: location, Size: info.Size(), Limit: limit}
		}
	}

	data, err := os.ReadFile(location)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ErrFileNotFound{Path: location}
		}
		return nil, err
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, &domain.ErrResourceTooLarge{Path: location, Size: int64(len(data)), Limit: limit}
	}
	return data, nil
}

// loadHTTP загружает файл по HTTP
func (fl *FileLoader) loadHTTP(ctx context.Context, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := fl.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch HTTP resource: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ErrHTTPStatus{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var body io.Reader = resp.Body
	if limit > 0 {
		if resp.ContentLength > limit {
			return nil, &domain.ErrResourceTooLarge{Path: url, Size: resp.ContentLength, Limit: limit}
		}
		// Один лишний байт отличает ресурс ровно в limit от превышающего его
		body = io.LimitReader(resp.Body, limit+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read HTTP response: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, &domain.ErrResourceTooLarge{Path: url, Size: int64(len(data)), Limit: limit}
	}

	return data, nil
}

// expandHome раскрывает ведущий "~" в домашний каталог пользователя
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand %s: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}
