package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Kind enumerates the closed set of JSON value shapes handled by the editor.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Value is a tagged variant over the JSON data model. Section content is
// schema-less, so every operation in the editor dispatches on Kind rather
// than on runtime type assertions against any.
type Value struct {
	kind Kind
	b    bool
	num  string
	str  string
	arr  []Value
	obj  *Object
}

// Null returns the JSON null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a numeric value using its literal JSON text. Keeping the raw
// text means content round-trips byte-for-byte through the editor.
func Number(text string) Value { return Value{kind: KindNumber, num: text} }

// NumberFloat wraps a float64 as a number value.
func NumberFloat(f float64) Value {
	return Number(strconv.FormatFloat(f, 'g', -1, 64))
}

// NumberInt wraps an integer as a number value.
func NumberInt(n int64) Value { return Number(strconv.FormatInt(n, 10)) }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array wraps a list of values.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: items}
}

// ObjectValue wraps an ordered object. A nil object yields an empty one.
func ObjectValue(obj *Object) Value {
	if obj == nil {
		obj = NewObject()
	}
	return Value{kind: KindObject, obj: obj}
}

// Kind reports the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsScalar reports whether the value is null, bool, number, or string.
func (v Value) IsScalar() bool { return v.kind < KindArray }

// AsBool returns the boolean payload when the value is a bool.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsString returns the string payload when the value is a string.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsNumber parses the number payload when the value is a number.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.num, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// NumberText returns the literal JSON text of a number value.
func (v Value) NumberText() string { return v.num }

// Items returns the elements of an array value. The slice is shared; callers
// must not mutate it.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Len returns the element or key count for arrays and objects.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	}
	return 0
}

// Obj returns the ordered object payload when the value is an object.
func (v Value) Obj() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// Text renders scalar values as the string an input control would show.
// Structured values return the empty string.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

// Clone returns a deep copy. Editing a clone never disturbs the original,
// which is what keeps the session edit buffer decoupled from the canonical
// section list.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.Clone()
		}
		return Value{kind: KindArray, arr: items}
	case KindObject:
		return Value{kind: KindObject, obj: v.obj.clone()}
	default:
		return v
	}
}

// Equal reports deep equality. Object comparison is order sensitive because
// the declaration order is part of what the editor preserves.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		if v.num == other.num {
			return true
		}
		a, aok := v.AsNumber()
		b, bok := other.AsNumber()
		return aok && bok && a == b
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.obj.Len() != other.obj.Len() {
			return false
		}
		for i, key := range v.obj.keys {
			if other.obj.keys[i] != key {
				return false
			}
			if !v.obj.vals[i].Equal(other.obj.vals[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Object is a JSON object that remembers key declaration order. The editor
// sorts keys into presentational buckets with ties broken by declaration
// order, so the order has to survive decode/encode.
type Object struct {
	keys []string
	idx  map[string]int
	vals []Value
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{idx: map[string]int{}}
}

// Set stores a key. Existing keys keep their position; new keys append.
func (o *Object) Set(key string, v Value) {
	if i, ok := o.idx[key]; ok {
		o.vals[i] = v
		return
	}
	o.idx[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, v)
}

// Get fetches a key.
func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.idx[key]
	if !ok {
		return Value{}, false
	}
	return o.vals[i], true
}

// Has reports whether the key exists.
func (o *Object) Has(key string) bool {
	_, ok := o.idx[key]
	return ok
}

// Delete removes a key, shifting later keys down.
func (o *Object) Delete(key string) {
	i, ok := o.idx[key]
	if !ok {
		return
	}
	o.keys = append(o.keys[:i:i], o.keys[i+1:]...)
	o.vals = append(o.vals[:i:i], o.vals[i+1:]...)
	delete(o.idx, key)
	for j := i; j < len(o.keys); j++ {
		o.idx[o.keys[j]] = j
	}
}

// Keys returns the keys in declaration order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the key count.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

func (o *Object) clone() *Object {
	c := &Object{
		keys: append([]string(nil), o.keys...),
		idx:  make(map[string]int, len(o.idx)),
		vals: make([]Value, len(o.vals)),
	}
	for k, i := range o.idx {
		c.idx[k] = i
	}
	for i, v := range o.vals {
		c.vals[i] = v.Clone()
	}
	return c
}

// shallowClone copies the key/value tables but shares nested values. Path
// edits use it to replace a single child while siblings stay untouched.
func (o *Object) shallowClone() *Object {
	c := &Object{
		keys: append([]string(nil), o.keys...),
		idx:  make(map[string]int, len(o.idx)),
		vals: append([]Value(nil), o.vals...),
	}
	for k, i := range o.idx {
		c.idx[k] = i
	}
	return c
}

// ParseValue decodes JSON preserving object key order and number literals.
func ParseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("content: trailing data after JSON value")
	}
	return v, nil
}

// DecodeValue decodes a single JSON value from a reader.
func DecodeValue(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return decodeValue(dec)
}

// MustParseValue parses JSON or panics. Reserved for statically known
// literals such as seed content and default templates.
func MustParseValue(data string) Value {
	v, err := ParseValue([]byte(data))
	if err != nil {
		panic(fmt.Sprintf("content: parse literal: %v", err))
	}
	return v
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, fmt.Errorf("content: decode JSON: %w", err)
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, fmt.Errorf("content: decode object key: %w", err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("content: object key is %T, want string", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("content: close object: %w", err)
			}
			return ObjectValue(obj), nil
		case '[':
			var items []Value
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("content: close array: %w", err)
			}
			return Array(items...), nil
		}
	}
	return Value{}, fmt.Errorf("content: unexpected JSON token %v", tok)
}

// MarshalJSON encodes the value with object keys in declaration order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes JSON into the value.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		if v.num == "" {
			buf.WriteString("0")
			return nil
		}
		buf.WriteString(v.num)
	case KindString:
		data, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(data)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, key := range v.obj.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			data, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(data)
			buf.WriteByte(':')
			if err := v.obj.vals[i].encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// Interface converts the value into the generic map/slice representation
// used by collaborators that expect plain JSON data (schema validation,
// activity metadata).
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		if f, ok := v.AsNumber(); ok {
			return f
		}
		return v.num
	case KindString:
		return v.str
	case KindArray:
		items := make([]any, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.Interface()
		}
		return items
	case KindObject:
		m := make(map[string]any, v.obj.Len())
		for i, key := range v.obj.keys {
			m[key] = v.obj.vals[i].Interface()
		}
		return m
	}
	return nil
}
