package converter

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/dataconv/internal/errors"
	"github.com/mcncl/dataconv/internal/models"
)

// ToYAML renders v as YAML with indent spaces per level (2 when indent <= 0).
// The plain style coerces scalars to strings without quoting; the strict
// style delegates to yaml.v3.
func (c *Converter) ToYAML(v models.Value, indent int) (string, error) {
	if indent <= 0 {
		indent = DefaultYAMLIndent
	}
	v, err := c.prepare(v)
	if err != nil {
		return "", err
	}

	if c.yamlStyle == YAMLStyleStrict {
		return strictYAML(v, indent)
	}

	if !v.IsContainer() {
		return v.Text(), nil
	}
	if v.IsEmpty() {
		return emptyLiteral(v) + "\n", nil
	}

	var b strings.Builder
	writeYAMLBlock(&b, v, 0, indent)
	return b.String(), nil
}

// writeYAMLBlock writes a non-empty container at the given level. Every line
// it writes ends in a newline.
func writeYAMLBlock(b *strings.Builder, v models.Value, level, indent int) {
	pad := strings.Repeat(" ", level*indent)

	switch v.Kind() {
	case models.MappingKind:
		for _, member := range v.Members() {
			value := member.Value
			switch {
			case value.IsContainer() && value.IsEmpty():
				b.WriteString(pad + member.Key + ": " + emptyLiteral(value) + "\n")
			case value.IsContainer():
				b.WriteString(pad + member.Key + ":\n")
				writeYAMLBlock(b, value, level+1, indent)
			default:
				b.WriteString(pad + member.Key + ": " + value.Text() + "\n")
			}
		}
	case models.SequenceKind:
		for _, item := range v.Items() {
			switch {
			case item.IsContainer() && item.IsEmpty():
				b.WriteString(pad + "- " + emptyLiteral(item) + "\n")
			case item.IsContainer():
				var nested strings.Builder
				writeYAMLBlock(&nested, item, level+1, indent)
				// the dash shares the first line of the nested block
				b.WriteString(pad + "- " + strings.TrimLeft(nested.String(), " "))
			default:
				b.WriteString(pad + "- " + item.Text() + "\n")
			}
		}
	}
}

func emptyLiteral(v models.Value) string {
	if v.Kind() == models.SequenceKind {
		return "[]"
	}
	return "{}"
}

func strictYAML(v models.Value, indent int) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(yamlNode(v)); err != nil {
		return "", errors.NewInvalidArgumentError("failed to encode YAML", err)
	}
	if err := enc.Close(); err != nil {
		return "", errors.NewInvalidArgumentError("failed to encode YAML", err)
	}
	return buf.String(), nil
}

// yamlNode builds a yaml.v3 node tree. Explicit tags let the encoder quote
// strings that would otherwise read back as numbers, booleans or null.
func yamlNode(v models.Value) *yaml.Node {
	switch v.Kind() {
	case models.NullKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case models.BoolKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v.Text()}
	case models.NumberKind:
		tag := "!!int"
		if strings.ContainsAny(v.Text(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.Text()}
	case models.StringKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.StringValue()}
	case models.SequenceKind:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if v.Len() == 0 {
			node.Style = yaml.FlowStyle
		}
		for _, item := range v.Items() {
			node.Content = append(node.Content, yamlNode(item))
		}
		return node
	default:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if v.Len() == 0 {
			node.Style = yaml.FlowStyle
		}
		for _, member := range v.Members() {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: member.Key},
				yamlNode(member.Value),
			)
		}
		return node
	}
}
