package value

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/teranos/promptforge/errors"
)

// DecodeJSON parses a single JSON document into a Value, preserving object
// key order and number lexemes. Trailing non-whitespace after the document
// is an error.
func DecodeJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return Value{}, errors.New("trailing data after JSON document")
	}
	return v, nil
}

// DecodeJSONArray parses a JSON document whose top-level value must be an
// array, and returns its elements.
func DecodeJSONArray(data []byte) ([]Value, error) {
	v, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	if v.Kind() != Array {
		return nil, errors.NewInvalidRequestError("top-level JSON value is %s, want array", v.Kind())
	}
	return v.Items(), nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, errors.Wrap(err, "invalid JSON")
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return Value{}, errors.Newf("unexpected delimiter %q", t.String())
		}
	case string:
		return NewString(t), nil
	case json.Number:
		return NewNumber(t), nil
	case bool:
		return NewBool(t), nil
	case nil:
		return NewNull(), nil
	default:
		return Value{}, errors.AssertionFailedf("unexpected JSON token %T", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	v := Value{kind: Object}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, errors.Wrap(err, "invalid JSON object")
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, errors.Newf("object key is %T, want string", tok)
		}
		member, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		// Duplicate keys keep the first position, last value wins.
		v.setMember(key, member)
	}
	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return Value{}, errors.Wrap(err, "invalid JSON object")
	}
	return v, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	v := Value{kind: Array}
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.arr = append(v.arr, item)
	}
	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return Value{}, errors.Wrap(err, "invalid JSON array")
	}
	return v, nil
}

// EncodeJSON renders the value as compact JSON.
func (v Value) EncodeJSON() string {
	var b strings.Builder
	v.write(&b, "", "", 0)
	return b.String()
}

// EncodeJSONIndent renders the value as indented JSON with the same layout
// as encoding/json.MarshalIndent: every nested line starts with prefix
// followed by one indent per nesting level.
func (v Value) EncodeJSONIndent(prefix, indent string) string {
	var b strings.Builder
	v.write(&b, prefix, indent, 0)
	return b.String()
}

// MarshalJSON implements json.Marshaler so a Value embeds cleanly in
// structures handed to encoding/json.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.EncodeJSON()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) write(b *strings.Builder, prefix, indent string, depth int) {
	v.assertValid()

	pretty := indent != ""
	newline := func(d int) {
		b.WriteByte('\n')
		b.WriteString(prefix)
		for i := 0; i < d; i++ {
			b.WriteString(indent)
		}
	}

	switch v.kind {
	case Null:
		b.WriteString("null")
	case Bool:
		if v.b {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case Number:
		b.WriteString(v.str)
	case String:
		writeQuoted(b, v.str)
	case Array:
		if len(v.arr) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				b.WriteByte(',')
			}
			if pretty {
				newline(depth + 1)
			}
			item.write(b, prefix, indent, depth+1)
		}
		if pretty {
			newline(depth)
		}
		b.WriteByte(']')
	case Object:
		if len(v.obj) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteByte('{')
		for i, m := range v.obj {
			if i > 0 {
				b.WriteByte(',')
			}
			if pretty {
				newline(depth + 1)
			}
			writeQuoted(b, m.Key)
			b.WriteByte(':')
			if pretty {
				b.WriteByte(' ')
			}
			m.Value.write(b, prefix, indent, depth+1)
		}
		if pretty {
			newline(depth)
		}
		b.WriteByte('}')
	}
}

// writeQuoted appends s as a JSON string literal. Encoding goes through a
// json.Encoder with HTML escaping off so template text like "<system>"
// round-trips readably.
func writeQuoted(b *strings.Builder, s string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a plain string cannot fail.
	_ = enc.Encode(s)
	out := buf.Bytes()
	b.Write(out[:len(out)-1]) // drop the Encoder's trailing newline
}
