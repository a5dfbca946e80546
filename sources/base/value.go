// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

package base

import (
	"encoding/json"
	"fmt"
	"time"
)

// ValueKind discriminates the scalar kinds a row value can hold.
type ValueKind uint8

const (
	ValueKindNull ValueKind = iota
	ValueKindString
	ValueKindInt
	ValueKindFloat
	ValueKindTime
)

// Value is one scalar cell of a result row. It is a tagged union rather than
// a bare any, so that serialization stays well-defined regardless of what the
// database driver hands back.
type Value struct {
	Kind  ValueKind
	Str   string
	Int   int64
	Float float64
	Time  time.Time
}

// Row is one result row, positionally aligned with the column list the
// repository resolved for the query.
type Row []Value

func NullValue() Value            { return Value{Kind: ValueKindNull} }
func StringValue(s string) Value  { return Value{Kind: ValueKindString, Str: s} }
func IntValue(i int64) Value      { return Value{Kind: ValueKindInt, Int: i} }
func FloatValue(f float64) Value  { return Value{Kind: ValueKindFloat, Float: f} }
func TimeValue(t time.Time) Value { return Value{Kind: ValueKindTime, Time: t} }

// ValueFromScan converts a value scanned from database/sql into a Value.
// []byte columns come back from text fields on some drivers, so they are
// treated as strings.
func ValueFromScan(scanned any) (Value, error) {
	switch v := scanned.(type) {
	case nil:
		return NullValue(), nil
	case string:
		return StringValue(v), nil
	case []byte:
		return StringValue(string(v)), nil
	case int64:
		return IntValue(v), nil
	case int:
		return IntValue(int64(v)), nil
	case float64:
		return FloatValue(v), nil
	case time.Time:
		return TimeValue(v), nil
	case bool:
		if v {
			return IntValue(1), nil
		}
		return IntValue(0), nil
	default:
		return Value{}, fmt.Errorf("unsupported scan value of type %T", scanned)
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueKindNull:
		return []byte("null"), nil
	case ValueKindString:
		return json.Marshal(v.Str)
	case ValueKindInt:
		return json.Marshal(v.Int)
	case ValueKindFloat:
		return json.Marshal(v.Float)
	case ValueKindTime:
		return json.Marshal(v.Time.Format(time.RFC3339))
	default:
		return nil, fmt.Errorf("invalid value kind %d", v.Kind)
	}
}
