package converter

import (
	"strings"

	"github.com/mcncl/dataconv/internal/models"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// ToXML renders v as XML under rootName ("root" when empty). Sequences have
// no wrapper element: each item repeats the enclosing element name. Only
// leaf text is escaped; element names are written as given.
func (c *Converter) ToXML(v models.Value, rootName string) (string, error) {
	if rootName == "" {
		rootName = DefaultRootName
	}
	v, err := c.prepare(v)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writeXML(&b, v, rootName)
	return b.String(), nil
}

func writeXML(b *strings.Builder, v models.Value, name string) {
	switch v.Kind() {
	case models.SequenceKind:
		if v.Len() == 0 {
			selfClosing(b, name)
			return
		}
		for _, item := range v.Items() {
			writeXML(b, item, name)
		}
	case models.MappingKind:
		if v.Len() == 0 {
			selfClosing(b, name)
			return
		}
		b.WriteString("<" + name + ">")
		for _, member := range v.Members() {
			writeXML(b, member.Value, member.Key)
		}
		b.WriteString("</" + name + ">")
	case models.NullKind:
		b.WriteString("<" + name + "></" + name + ">")
	default:
		b.WriteString("<" + name + ">")
		xmlEscaper.WriteString(b, v.Text())
		b.WriteString("</" + name + ">")
	}
}

func selfClosing(b *strings.Builder, name string) {
	b.WriteString("<" + name + "/>")
}
