package infrastructure

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/miorlan/mdinclude/internal/domain"
)

// Parser реализует парсинг YAML и JSON (с комментариями JSONC)
type Parser struct{}

// NewParser создает новый парсер
func NewParser() domain.Parser {
	return &Parser{}
}

// Unmarshal парсит данные в зависимости от формата
func (p *Parser) Unmarshal(data []byte, v interface{}, format domain.FileFormat) error {
	switch format {
	case domain.FormatJSON:
		return unmarshalJSON(data, v)
	case domain.FormatYAML:
		return unmarshalYAML(data, v)
	default:
		return p.unmarshalByContent(data, v)
	}
}

// unmarshalByContent пытается определить формат по содержимому
func (p *Parser) unmarshalByContent(data []byte, v interface{}) error {
	trimmed := strings.TrimSpace(string(data))
	if len(trimmed) == 0 {
		return unmarshalYAML(data, v)
	}

	if trimmed[0] == '{' {
		if err := unmarshalJSON(data, v); err == nil {
			return nil
		}
	}

	return unmarshalYAML(data, v)
}

func unmarshalJSON(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func unmarshalYAML(data []byte, v interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
