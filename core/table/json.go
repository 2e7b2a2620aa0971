package table

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the table as a JSON object with sorted keys.
// Sorted output keeps persisted files diffable across runs even though
// in-memory iteration follows insertion order.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range t.SortedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		rb, err := json.Marshal(t.data[key])
		if err != nil {
			return nil, err
		}
		buf.Write(rb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a flat acronym object, preserving the key order
// of the input document as the table's insertion order.
func (t *Table) UnmarshalJSON(data []byte) error {
	t.keys = nil
	t.data = make(map[string]Record)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("table: expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("table: expected string key, got %v", keyTok)
		}
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("table: record %q: %w", key, err)
		}
		t.Set(key, rec)
	}

	// Consume the closing brace.
	_, err = dec.Token()
	return err
}
