// Package dataset はC4.5の学習・推論で使う表形式データモデルを提供します。
//
// Value は整数・正規化済みカテゴリ文字列・未設定の三種類を持つスカラーセルで、
// Table はヘッダ行と列ごとの数値属性フラグを持つ行列データです。
// Table の部分集合は常に行をコピーし、他の Table の記憶領域を共有しません。
package dataset

import (
	"bytes"
	"encoding/gob"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/c45/pkg/errors"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	// Empty is the unset sentinel. It never equals any Value.
	Empty Kind = iota
	// Numeric holds an integer.
	Numeric
	// Categorical holds a lower-cased string.
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return "empty"
	}
}

// Value is an immutable table cell. The zero Value is Empty.
// Value is comparable and can key maps; use Equal for cell equality so that
// Empty never matches.
type Value struct {
	kind Kind
	num  int
	str  string
}

// NewNumeric returns a Numeric value.
func NewNumeric(n int) Value {
	return Value{kind: Numeric, num: n}
}

// NewCategorical returns a Categorical value, lower-casing s.
func NewCategorical(s string) Value {
	return Value{kind: Categorical, str: strings.ToLower(s)}
}

// EmptyValue returns the unset sentinel.
func EmptyValue() Value {
	return Value{}
}

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNumeric reports whether v holds an integer.
func (v Value) IsNumeric() bool { return v.kind == Numeric }

// IsEmpty reports whether v is the unset sentinel.
func (v Value) IsEmpty() bool { return v.kind == Empty }

// Int returns the integer of a Numeric value and false otherwise.
func (v Value) Int() (int, bool) {
	return v.num, v.kind == Numeric
}

// Str returns the normalized string of a Categorical value and false otherwise.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == Categorical
}

// Equal compares by integer for Numeric and by normalized string for
// Categorical. Values of different kinds are never equal, and Empty never
// equals anything, itself included.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Numeric:
		return v.num == o.num
	case Categorical:
		return v.str == o.str
	default:
		return false
	}
}

// String renders the cell the way it appears in input and rule output.
func (v Value) String() string {
	switch v.kind {
	case Numeric:
		return strconv.Itoa(v.num)
	case Categorical:
		return v.str
	default:
		return ""
	}
}

type valueWire struct {
	Kind Kind
	Num  int
	Str  string
}

// GobEncode implements gob.GobEncoder.
func (v Value) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(valueWire{Kind: v.kind, Num: v.num, Str: v.str}); err != nil {
		return nil, errors.Wrap(err, "encode value")
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (v *Value) GobDecode(data []byte) error {
	var w valueWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return errors.Wrap(err, "decode value")
	}
	if w.Kind > Categorical {
		return errors.NewValueError("Value.GobDecode", "unknown kind "+strconv.Itoa(int(w.Kind)))
	}
	*v = Value{kind: w.Kind, num: w.Num, str: w.Str}
	return nil
}
