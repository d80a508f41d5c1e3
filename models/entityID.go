package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// EntityID identifies a ministry, cell or event. Stores hand out either
// integer keys or opaque (UUID) keys, so the id keeps its canonical text
// form and remembers whether it is numeric.
type EntityID string

// ParseEntityID trims raw and returns it in canonical form, so "07" and 7
// name the same id. The empty id means "no selection".
func ParseEntityID(raw string) EntityID {
	return canonicalID(raw)
}

func EntityIDFromInt(n int64) EntityID {
	return EntityID(strconv.FormatInt(n, 10))
}

func (id EntityID) IsZero() bool { return id == "" }

// IsNumeric reports whether the id looks like an integer key.
func (id EntityID) IsNumeric() bool {
	_, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil
}

func (id EntityID) String() string { return string(id) }

func (id EntityID) Value() (driver.Value, error) {
	if id == "" {
		return nil, nil
	}
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return n, nil
	}
	return string(id), nil
}

func (id *EntityID) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*id = ""
	case int64:
		*id = EntityIDFromInt(v)
	case string:
		*id = ParseEntityID(v)
	case []byte:
		*id = ParseEntityID(string(v))
	default:
		return fmt.Errorf("cannot scan %T into EntityID", src)
	}
	return nil
}

func (id EntityID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if id.IsNumeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts numbers, strings and null. Numeric-looking
// strings end up identical to the number they spell.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = canonicalID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s", string(data))
	}
	*id = canonicalID(n.String())
	return nil
}

func canonicalID(s string) EntityID {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return EntityIDFromInt(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		return EntityIDFromInt(int64(f))
	}
	return EntityID(s)
}

// UniqueEntityIDs drops empty ids and duplicates, keeping first-seen order.
func UniqueEntityIDs(ids []EntityID) []EntityID {
	out := make([]EntityID, 0, len(ids))
	seen := make(map[EntityID]struct{}, len(ids))
	for _, id := range ids {
		if id.IsZero() {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// EntityIDList decodes a JSON array of ids. Anything that is not an array
// decodes to an empty list, and elements that are not ids are skipped.
type EntityIDList []EntityID

func (l *EntityIDList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = nil
		return nil
	}
	ids := make(EntityIDList, 0, len(raw))
	for _, r := range raw {
		var id EntityID
		if err := id.UnmarshalJSON(r); err != nil {
			continue
		}
		ids = append(ids, id)
	}
	*l = ids
	return nil
}
