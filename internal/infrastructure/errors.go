package infrastructure

import "fmt"

// ErrFileNotFound возникает когда файл по ссылке не найден
// Это техническая ошибка инфраструктуры (файловая система, HTTP)
type ErrFileNotFound struct {
	Path string
}

func (e *ErrFileNotFound) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// ErrHTTPStatus возникает когда сервер ответил кодом, отличным от 200
type ErrHTTPStatus struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *ErrHTTPStatus) Error() string {
	return fmt.Sprintf("HTTP error: %s: %s", e.Status, e.URL)
}
