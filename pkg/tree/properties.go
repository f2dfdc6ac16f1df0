package tree

import (
	"slices"
	"strings"
)

// Property is a single key=value annotation of a node (NHX format).
type Property struct {
	Key   string
	Value string
}

// Properties keeps node annotations in the order they were read.
type Properties []Property

// Get returns the value stored under key.
func (p Properties) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Set updates key in place or appends it at the end.
func (p *Properties) Set(key, value string) {
	for i, kv := range *p {
		if kv.Key == key {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Property{Key: key, Value: value})
}

// Delete removes key, keeping the order of the remaining properties.
func (p *Properties) Delete(key string) {
	*p = slices.DeleteFunc(*p, func(kv Property) bool { return kv.Key == key })
}

// Clone returns an independent copy, or nil for no properties.
func (p Properties) Clone() Properties {
	if len(p) == 0 {
		return nil
	}
	return slices.Clone(p)
}

// Map returns the properties as a map. Order is lost.
func (p Properties) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, kv := range p {
		m[kv.Key] = kv.Value
	}
	return m
}

// String formats the properties as "key: value, key: value".
func (p Properties) String() string {
	parts := make([]string, len(p))
	for i, kv := range p {
		parts[i] = kv.Key + ": " + kv.Value
	}
	return strings.Join(parts, ", ")
}
