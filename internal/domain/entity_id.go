package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// IDKind tells which variant an EntityID holds.
type IDKind int

const (
	IDString IDKind = iota
	IDNumber
)

// EntityID identifies a project, note or step. Files written by older builds
// carry numeric IDs, newer ones carry strings; both are kept as-is.
//
// Two IDs are equal only when both the variant and the value match, so
// StringID("42") != NumberID(42). The zero value is StringID("").
type EntityID struct {
	kind IDKind
	str  string
	num  uint64
}

// StringID returns a string-variant identifier.
func StringID(s string) EntityID {
	return EntityID{kind: IDString, str: s}
}

// NumberID returns a numeric-variant identifier.
func NumberID(n uint64) EntityID {
	return EntityID{kind: IDNumber, num: n}
}

// NewStringID returns a pointer to a string-variant identifier, ready to be
// assigned to an entity's optional ID field.
func NewStringID(s string) *EntityID {
	id := StringID(s)
	return &id
}

func (id EntityID) Kind() IDKind { return id.kind }

// Str returns the string value and true for the string variant.
func (id EntityID) Str() (string, bool) {
	return id.str, id.kind == IDString
}

// Num returns the numeric value and true for the numeric variant.
func (id EntityID) Num() (uint64, bool) {
	return id.num, id.kind == IDNumber
}

// String renders the identifier for display and prefix lookup.
func (id EntityID) String() string {
	if id.kind == IDNumber {
		return strconv.FormatUint(id.num, 10)
	}
	return id.str
}

// SameID reports whether two optional identifiers are both present and equal.
func SameID(a, b *EntityID) bool {
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func (id EntityID) MarshalJSON() ([]byte, error) {
	if id.kind == IDNumber {
		return strconv.AppendUint(nil, id.num, 10), nil
	}
	return json.Marshal(id.str)
}

// UnmarshalJSON accepts a JSON string or a non-negative JSON integer.
// Any other JSON type is rejected.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("entity id: empty value")
	}
	switch c := data[0]; {
	case c == 'n' && bytes.Equal(data, []byte("null")):
		return nil
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("entity id: %w", err)
		}
		*id = StringID(s)
		return nil
	case c >= '0' && c <= '9':
		n, err := strconv.ParseUint(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("entity id: %s is not a non-negative integer", data)
		}
		*id = NumberID(n)
		return nil
	default:
		return fmt.Errorf("entity id: expected string or non-negative integer, got %s", data)
	}
}
