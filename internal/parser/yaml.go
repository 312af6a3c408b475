package parser

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/mcncl/dataconv/internal/errors"
	"github.com/mcncl/dataconv/internal/models"
)

// ParseYAML decodes the first YAML document in data. Mappings are read as
// ordered maps so key order survives; non-string keys are stringified.
func (p *Parser) ParseYAML(data []byte) (models.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.Value{}, errors.NewInvalidFormatError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return models.Value{}, errors.NewInvalidFormatError("invalid YAML", err)
	}
	return p.fromYAML(raw, 0)
}

func (p *Parser) fromYAML(raw any, depth int) (models.Value, error) {
	switch v := raw.(type) {
	case yaml.MapSlice:
		if depth >= p.maxDepth {
			return models.Value{}, errors.NewDepthExceededError(p.maxDepth)
		}
		m := models.NewMapping()
		for _, item := range v {
			value, err := p.fromYAML(item.Value, depth+1)
			if err != nil {
				return models.Value{}, err
			}
			m.Set(yamlKey(item.Key), value)
		}
		return m.Value(), nil
	case []any:
		if depth >= p.maxDepth {
			return models.Value{}, errors.NewDepthExceededError(p.maxDepth)
		}
		items := make([]models.Value, len(v))
		for i, item := range v {
			value, err := p.fromYAML(item, depth+1)
			if err != nil {
				return models.Value{}, err
			}
			items[i] = value
		}
		return models.Sequence(items...), nil
	default:
		return models.FromGo(v)
	}
}

func yamlKey(key any) string {
	if key == nil {
		return "null"
	}
	if s, ok := key.(string); ok {
		return s
	}
	return fmt.Sprint(key)
}
