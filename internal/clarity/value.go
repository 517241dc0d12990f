// Package clarity decodes the JSON representation of Clarity values returned
// by read-only contract calls.
package clarity

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
)

// Value type tags as emitted by the chain API.
const (
	TypeUint        = "uint"
	TypeInt         = "int"
	TypeBool        = "bool"
	TypeStringASCII = "string-ascii"
	TypePrincipal   = "principal"
	TypeOptional    = "optional"
	TypeTuple       = "tuple"
)

// Value is one typed node of a contract call result.
type Value struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Parse decodes a raw JSON document into a Value.
func Parse(data []byte) (*Value, error) {
	var v Value
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse clarity value: %w", err)
	}
	if v.Type == "" {
		return nil, fmt.Errorf("parse clarity value: missing type tag")
	}
	return &v, nil
}

// IsNone reports whether the value is an empty optional.
func (v *Value) IsNone() bool {
	if v == nil {
		return true
	}
	return v.Type == TypeOptional && len(v.Value) == 0
}

// Unwrap strips optional wrappers, returning the inner value or nil for none.
func (v *Value) Unwrap() *Value {
	if v == nil {
		return nil
	}
	if v.Type != TypeOptional {
		return v
	}
	if len(v.Value) == 0 {
		return nil
	}
	var inner Value
	if err := json.Unmarshal(v.Value, &inner); err != nil || inner.Type == "" {
		return nil
	}
	return inner.Unwrap()
}

// Tuple returns the named fields of a tuple value. Non-tuple values (including
// nil and none) yield an empty map rather than an error.
func (v *Value) Tuple() map[string]*Value {
	inner := v.Unwrap()
	if inner == nil || inner.Type != TypeTuple {
		return map[string]*Value{}
	}
	fields := map[string]*Value{}
	if err := json.Unmarshal(inner.Value, &fields); err != nil {
		return map[string]*Value{}
	}
	return fields
}

// Uint returns the value as an unsigned integer, or 0 when the value is
// absent, of another type, or malformed.
func (v *Value) Uint() uint64 {
	inner := v.Unwrap()
	if inner == nil || (inner.Type != TypeUint && inner.Type != TypeInt) {
		return 0
	}
	// The API emits numerics as JSON strings to avoid precision loss.
	var s string
	if err := json.Unmarshal(inner.Value, &s); err != nil {
		var n uint64
		if err := json.Unmarshal(inner.Value, &n); err != nil {
			return 0
		}
		return n
	}
	n, ok := math.NewIntFromString(s)
	if !ok || n.IsNegative() || !n.IsUint64() {
		return 0
	}
	return n.Uint64()
}

// Int returns the value as a math.Int, or zero on absence or mismatch.
func (v *Value) Int() math.Int {
	inner := v.Unwrap()
	if inner == nil || (inner.Type != TypeUint && inner.Type != TypeInt) {
		return math.ZeroInt()
	}
	var s string
	if err := json.Unmarshal(inner.Value, &s); err != nil {
		var n int64
		if err := json.Unmarshal(inner.Value, &n); err != nil {
			return math.ZeroInt()
		}
		return math.NewInt(n)
	}
	n, ok := math.NewIntFromString(s)
	if !ok {
		return math.ZeroInt()
	}
	return n
}

// Bool returns the value as a bool, defaulting to false.
func (v *Value) Bool() bool {
	inner := v.Unwrap()
	if inner == nil || inner.Type != TypeBool {
		return false
	}
	var b bool
	if err := json.Unmarshal(inner.Value, &b); err != nil {
		return false
	}
	return b
}

// String returns string-ascii and principal values, defaulting to "".
func (v *Value) String() string {
	inner := v.Unwrap()
	if inner == nil || (inner.Type != TypeStringASCII && inner.Type != TypePrincipal) {
		return ""
	}
	var s string
	if err := json.Unmarshal(inner.Value, &s); err != nil {
		return ""
	}
	return s
}

// UintField reads a named tuple field as uint64, 0 when absent.
func (v *Value) UintField(name string) uint64 {
	return v.Tuple()[name].Uint()
}

// IntField reads a named tuple field as math.Int, zero when absent.
func (v *Value) IntField(name string) math.Int {
	return v.Tuple()[name].Int()
}

// BoolField reads a named tuple field as bool, false when absent.
func (v *Value) BoolField(name string) bool {
	return v.Tuple()[name].Bool()
}

// StringField reads a named tuple field as string, "" when absent.
func (v *Value) StringField(name string) string {
	return v.Tuple()[name].String()
}
