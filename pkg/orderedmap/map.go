// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

type Map struct {
	items []MapItem
}

type MapItem struct {
	Key   string
	Value interface{}
}

func NewMap() *Map {
	return &Map{}
}

func NewMapWithItems(items []MapItem) *Map {
	return &Map{items}
}

// Set replaces the value of an existing key in place or appends a new key.
func (m *Map) Set(key string, value interface{}) {
	for i, item := range m.items {
		if item.Key == key {
			m.items[i].Value = value
			return
		}
	}
	m.items = append(m.items, MapItem{key, value})
}

func (m *Map) Get(key string) (interface{}, bool) {
	for _, item := range m.items {
		if item.Key == key {
			return item.Value, true
		}
	}
	return nil, false
}

func (m *Map) Delete(key string) bool {
	for i, item := range m.items {
		if item.Key == key {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true
		}
	}
	return false
}

// SetPath sets value under a nested key path, creating (or replacing
// non-map values with) intermediate maps as needed.
func (m *Map) SetPath(path []string, value interface{}) {
	if len(path) == 0 {
		panic("Expected non-empty key path")
	}

	curr := m
	for _, key := range path[:len(path)-1] {
		next, found := curr.Get(key)
		nextMap, ok := next.(*Map)
		if !found || !ok {
			nextMap = NewMap()
			curr.Set(key, nextMap)
		}
		curr = nextMap
	}
	curr.Set(path[len(path)-1], value)
}

// Merge overlays other onto m: nested maps are merged key by key,
// any other value from other replaces the value in m.
func (m *Map) Merge(other *Map) {
	other.Iterate(func(k string, v interface{}) {
		if otherNested, ok := v.(*Map); ok {
			if existing, found := m.Get(k); found {
				if nested, ok := existing.(*Map); ok {
					nested.Merge(otherNested)
					return
				}
			}
			v = otherNested.DeepCopy()
		}
		m.Set(k, v)
	})
}

func (m *Map) DeepCopy() *Map {
	result := NewMap()
	m.Iterate(func(k string, v interface{}) {
		if nested, ok := v.(*Map); ok {
			v = nested.DeepCopy()
		}
		result.Set(k, v)
	})
	return result
}

func (m *Map) Keys() (keys []string) {
	m.Iterate(func(k string, _ interface{}) {
		keys = append(keys, k)
	})
	return
}

func (m *Map) Iterate(iterFunc func(k string, v interface{})) {
	for _, item := range m.items {
		iterFunc(item.Key, item.Value)
	}
}

func (m *Map) IterateErr(iterFunc func(k string, v interface{}) error) error {
	for _, item := range m.items {
		err := iterFunc(item.Key, item.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Map) Len() int { return len(m.items) }

var _ json.Marshaler = &Map{}
var _ yaml.Marshaler = &Map{}

// MarshalJSON keeps keys in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")

	err := m.IterateErr(func(k string, v interface{}) error {
		if buf.Len() > 1 {
			buf.WriteString(",")
		}
		keyBs, err := json.Marshal(k)
		if err != nil {
			return err
		}
		valBs, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("Marshaling key '%s': %s", k, err)
		}
		buf.Write(keyBs)
		buf.WriteString(":")
		buf.Write(valBs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	buf.WriteString("}")
	return buf.Bytes(), nil
}

// MarshalYAML keeps keys in insertion order.
func (m *Map) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	err := m.IterateErr(func(k string, v interface{}) error {
		valNode := &yaml.Node{}
		err := valNode.Encode(v)
		if err != nil {
			return fmt.Errorf("Marshaling key '%s': %s", k, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, valNode)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}
