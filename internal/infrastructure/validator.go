package infrastructure

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/miorlan/mdinclude/internal/domain"
)

// Validator проверяет, что собранный из фрагментов документ является
// корректной OpenAPI спецификацией
type Validator struct{}

// NewValidator создает новый валидатор
func NewValidator() domain.Validator {
	return &Validator{}
}

// Validate валидирует OpenAPI спецификацию
func (v *Validator) Validate(filePath string) error {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false

	doc, err := loader.LoadFromFile(filePath)
	if err != nil {
		return fmt.Errorf("invalid OpenAPI specification: %w", err)
	}

	if err := doc.Validate(context.Background()); err != nil {
		return fmt.Errorf("invalid OpenAPI specification: %w", err)
	}

	return nil
}
