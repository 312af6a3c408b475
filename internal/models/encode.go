package models

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON encodes v as compact JSON, keeping mapping key order and
// leaving HTML characters unescaped.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := writeJSON(&buf, enc, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, enc *json.Encoder, v Value) error {
	switch v.kind {
	case NullKind:
		buf.WriteString("null")
	case BoolKind:
		if v.boolean {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case NumberKind:
		buf.WriteString(v.text)
	case StringKind:
		return writeString(buf, enc, v.text)
	case SequenceKind:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, enc, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case MappingKind:
		buf.WriteByte('{')
		for i, member := range v.mapping.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, enc, member.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, enc, member.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// writeString relies on the encoder sharing buf; Encode terminates every
// value with a newline, which is dropped again.
func writeString(buf *bytes.Buffer, enc *json.Encoder, s string) error {
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
