package message

import (
	"slices"
	"strings"
)

// multiMap maps case-insensitive names to ordered sets of values.
// Names keep their first-seen casing and insertion order.
//
// A multiMap is never modified once it is reachable from a Request; writers
// clone first.
type multiMap[V any] struct {
	keys   []string
	values map[string][]V
}

func (m multiMap[V]) clone() multiMap[V] {
	c := multiMap[V]{
		keys:   slices.Clone(m.keys),
		values: make(map[string][]V, len(m.values)),
	}
	for k, vs := range m.values {
		c.values[k] = slices.Clone(vs)
	}
	return c
}

// add appends v to the set for name unless an equal value is present.
func (m *multiMap[V]) add(name string, v V, equal func(a, b V) bool) {
	if m.values == nil {
		m.values = make(map[string][]V)
	}
	k := strings.ToLower(name)
	vs, ok := m.values[k]
	if !ok {
		m.keys = append(m.keys, name)
	}
	for _, existing := range vs {
		if equal(existing, v) {
			return
		}
	}
	m.values[k] = append(vs, v)
}

// set replaces the set for name. Duplicates in vs collapse.
func (m *multiMap[V]) set(name string, vs []V, equal func(a, b V) bool) {
	if m.values == nil {
		m.values = make(map[string][]V)
	}
	k := strings.ToLower(name)
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[k] = nil
	for _, v := range vs {
		m.add(name, v, equal)
	}
}

func (m multiMap[V]) get(name string) []V {
	return slices.Clone(m.values[strings.ToLower(name)])
}

func (m multiMap[V]) has(name string) bool {
	_, ok := m.values[strings.ToLower(name)]
	return ok
}

func (m multiMap[V]) len() int {
	return len(m.keys)
}

func (m multiMap[V]) names() []string {
	return slices.Clone(m.keys)
}
