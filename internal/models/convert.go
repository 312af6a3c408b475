package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/mcncl/dataconv/internal/errors"
)

// FromGo converts an arbitrary Go value into a Value. Maps with string keys
// are emitted in sorted key order since Go maps carry none; other types are
// routed through encoding/json.
func FromGo(in any) (Value, error) {
	switch v := in.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case *Value:
		if v == nil {
			return Null(), nil
		}
		return *v, nil
	case *Mapping:
		if v == nil {
			return Null(), nil
		}
		return v.Value(), nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case json.Number:
		if !ValidNumber(string(v)) {
			return Value{}, errors.NewInvalidArgumentError(fmt.Sprintf("invalid number literal %q", string(v)), nil)
		}
		return Number(v), nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint:
		return Uint(uint64(v)), nil
	case uint8:
		return Uint(uint64(v)), nil
	case uint16:
		return Uint(uint64(v)), nil
	case uint32:
		return Uint(uint64(v)), nil
	case uint64:
		return Uint(v), nil
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case []any:
		items := make([]Value, len(v))
		for i, item := range v {
			converted, err := FromGo(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = converted
		}
		return Sequence(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, key := range keys {
			converted, err := FromGo(v[key])
			if err != nil {
				return Value{}, err
			}
			m.Set(key, converted)
		}
		return m.Value(), nil
	}

	if rv := reflect.ValueOf(in); (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Map || rv.Kind() == reflect.Slice) && rv.IsNil() {
		return Null(), nil
	}

	data, err := json.Marshal(in)
	if err != nil {
		return Value{}, errors.NewInvalidArgumentError(fmt.Sprintf("unsupported value of type %T", in), err)
	}
	var generic any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return Value{}, errors.NewInvalidArgumentError(fmt.Sprintf("unsupported value of type %T", in), err)
	}
	return FromGo(generic)
}
