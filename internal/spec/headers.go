package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/BurntSushi/toml"
	"go.yaml.in/yaml/v4"
)

// Header is a single HTTP header as a key value pair.
type Header struct {
	Key   string `json:"key"   toml:"key"   yaml:"key"`
	Value string `json:"value" toml:"value" yaml:"value"`
}

// Headers is an ordered collection of HTTP headers.
//
// Keys are stored exactly as given so "content-type" and "Content-Type" are
// distinct entries, but the well known header lookups ([Headers.Lookup], [Headers.Has])
// compare keys case-insensitively.
//
// The zero value is an empty set of headers ready to use.
type Headers struct {
	entries []Header
}

// Set stores value under key. If key is already present its value is replaced
// in place, so the original insertion position is kept.
func (h *Headers) Set(key, value string) {
	for i := range h.entries {
		if h.entries[i].Key == key {
			h.entries[i].Value = value
			return
		}
	}

	h.entries = append(h.entries, Header{Key: key, Value: value})
}

// Lookup returns the value of the first header (in insertion order) whose key
// matches key case-insensitively, and whether there was one.
func (h Headers) Lookup(key string) (string, bool) {
	for _, entry := range h.entries {
		if strings.EqualFold(entry.Key, key) {
			return entry.Value, true
		}
	}

	return "", false
}

// Has reports whether a header with the given key (case-insensitive) is present.
func (h Headers) Has(key string) bool {
	_, ok := h.Lookup(key)
	return ok
}

// Len returns the number of headers.
func (h Headers) Len() int {
	return len(h.entries)
}

// All returns an iterator over the headers in insertion order.
func (h Headers) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, entry := range h.entries {
			if !yield(entry.Key, entry.Value) {
				return
			}
		}
	}
}

// Entries returns a copy of the headers in insertion order.
func (h Headers) Entries() []Header {
	entries := make([]Header, len(h.entries))
	copy(entries, h.entries)

	return entries
}

// MarshalJSON implements [json.Marshaler] for [Headers], encoding them as a
// JSON object with keys in insertion order.
func (h Headers) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')

	// Headers are full of '&', '<' and '>' (cookies, accept lists) so don't
	// let the encoder HTML escape them
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)

	for i, entry := range h.entries {
		if i > 0 {
			buf.WriteByte(',')
		}

		if err := encoder.Encode(entry.Key); err != nil {
			return nil, err
		}

		buf.Truncate(buf.Len() - 1) // Encode adds a trailing newline
		buf.WriteByte(':')

		if err := encoder.Encode(entry.Value); err != nil {
			return nil, err
		}

		buf.Truncate(buf.Len() - 1)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON implements [json.Unmarshaler] for [Headers], preserving the
// order of keys in the source object.
func (h *Headers) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))

	tok, err := decoder.Token()
	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("headers must be a JSON object, got %v", tok)
	}

	h.entries = nil

	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return err
		}

		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("header key must be a string, got %v", tok)
		}

		var value string
		if err := decoder.Decode(&value); err != nil {
			return fmt.Errorf("header %q: %w", key, err)
		}

		h.Set(key, value)
	}

	_, err = decoder.Token()

	return err
}

// MarshalYAML implements [yaml.Marshaler] for [Headers], encoding them as a
// mapping with keys in insertion order.
func (h Headers) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, entry := range h.entries {
		node.Content = append(
			node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Value},
		)
	}

	return node, nil
}

// MarshalTOML implements [toml.Marshaler] for [Headers], encoding them as an
// inline table with keys in insertion order.
//
// toml only encodes maps sorted by key, so each header is encoded on its own
// and the pairs joined back together in order.
func (h Headers) MarshalTOML() ([]byte, error) {
	if len(h.entries) == 0 {
		return []byte("{}"), nil
	}

	buf := &bytes.Buffer{}
	buf.WriteString("{ ")

	for i, entry := range h.entries {
		if i > 0 {
			buf.WriteString(", ")
		}

		pair, err := toml.Marshal(map[string]string{entry.Key: entry.Value})
		if err != nil {
			return nil, fmt.Errorf("header %q: %w", entry.Key, err)
		}

		buf.Write(bytes.TrimSpace(pair))
	}

	buf.WriteString(" }")

	return buf.Bytes(), nil
}
