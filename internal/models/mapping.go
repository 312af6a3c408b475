package models

import (
	"maps"
	"slices"
)

// Mapping is a string-keyed map that remembers insertion order.
type Mapping struct {
	members []Member
	index   map[string]int
}

// NewMapping returns an empty mapping
func NewMapping() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

// Set stores value under key. An existing key keeps its position.
func (m *Mapping) Set(key string, value Value) {
	if i, ok := m.index[key]; ok {
		m.members[i].Value = value
		return
	}
	m.index[key] = len(m.members)
	m.members = append(m.members, Member{Key: key, Value: value})
}

// Get returns the value stored under key
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	i, ok := m.index[key]
	if !ok {
		return Value{}, false
	}
	return m.members[i].Value, true
}

// Len returns the number of keys
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.members)
}

// Keys returns the keys in insertion order
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.members))
	for i, member := range m.members {
		keys[i] = member.Key
	}
	return keys
}

// Members returns the key/value pairs in insertion order
func (m *Mapping) Members() []Member {
	if m == nil {
		return nil
	}
	return slices.Clone(m.members)
}

// Value snapshots the mapping as a Value. Later calls to Set do not affect it.
func (m *Mapping) Value() Value {
	return Value{kind: MappingKind, mapping: m.clone()}
}

func (m *Mapping) clone() *Mapping {
	if m == nil {
		return NewMapping()
	}
	return &Mapping{
		members: slices.Clone(m.members),
		index:   maps.Clone(m.index),
	}
}

func (m *Mapping) equal(other *Mapping) bool {
	if m.Len() != other.Len() {
		return false
	}
	for _, member := range m.Members() {
		v, ok := other.Get(member.Key)
		if !ok || !member.Value.Equal(v) {
			return false
		}
	}
	return true
}
