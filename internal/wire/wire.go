// Package wire holds JSON helpers that keep the server's object key order.
//
// encoding/json decodes objects into maps, which loses member order. Both the
// first-field error tie-break and the jsonl renderer need that order, so
// objects are walked member by member with a json.Decoder instead.
package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Static errors for err113 compliance.
var (
	ErrNotObject      = errors.New("JSON value is not an object")
	ErrEmpty          = errors.New("empty JSON value")
	ErrInvalidLiteral = errors.New("invalid JSON literal")
)

// Field is one member of a JSON object, in wire order.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Fields returns the members of a JSON object in the order they appear.
func Fields(data []byte) ([]Field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading object start: %w", err)
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	var fields []Field

	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading object key: %w", err)
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v", ErrNotObject, tok)
		}

		var value json.RawMessage

		err = dec.Decode(&value)
		if err != nil {
			return nil, fmt.Errorf("reading value of %q: %w", key, err)
		}

		fields = append(fields, Field{Key: key, Value: value})
	}

	_, err = dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading object end: %w", err)
	}

	return fields, nil
}

// Lookup returns the value of key in fields.
func Lookup(fields []Field, key string) (json.RawMessage, bool) {
	for _, field := range fields {
		if field.Key == key {
			return field.Value, true
		}
	}

	return nil, false
}

// Text renders a value as a message: strings are unquoted, anything else is
// compacted.
func Text(value json.RawMessage) string {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := AppendCompact(&buf, value); err != nil {
		return string(bytes.TrimSpace(value))
	}

	return buf.String()
}

// FirstMessage returns the first entry of a validation message list, or the
// value itself when it is not a list.
func FirstMessage(value json.RawMessage) string {
	var list []json.RawMessage
	if err := json.Unmarshal(value, &list); err == nil {
		if len(list) == 0 {
			return ""
		}

		return Text(list[0])
	}

	return Text(value)
}

// AppendCompact writes value to buf without insignificant whitespace. Object
// members keep their order and strings are re-encoded without escaping
// non-ASCII characters or <, > and &.
func AppendCompact(buf *bytes.Buffer, value json.RawMessage) error {
	value = bytes.TrimSpace(value)
	if len(value) == 0 {
		return ErrEmpty
	}

	switch value[0] {
	case '{':
		fields, err := Fields(value)
		if err != nil {
			return err
		}

		buf.WriteByte('{')

		for i, field := range fields {
			if i > 0 {
				buf.WriteByte(',')
			}

			err = appendString(buf, field.Key)
			if err != nil {
				return err
			}

			buf.WriteByte(':')

			err = AppendCompact(buf, field.Value)
			if err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	case '[':
		var elems []json.RawMessage

		err := json.Unmarshal(value, &elems)
		if err != nil {
			return fmt.Errorf("decoding array: %w", err)
		}

		buf.WriteByte('[')

		for i, elem := range elems {
			if i > 0 {
				buf.WriteByte(',')
			}

			err = AppendCompact(buf, elem)
			if err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case '"':
		var s string

		err := json.Unmarshal(value, &s)
		if err != nil {
			return fmt.Errorf("decoding string: %w", err)
		}

		return appendString(buf, s)
	default:
		if !json.Valid(value) {
			return fmt.Errorf("%w: %q", ErrInvalidLiteral, value)
		}

		buf.Write(value)
	}

	return nil
}

func appendString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	err := enc.Encode(s)
	if err != nil {
		return fmt.Errorf("encoding string: %w", err)
	}

	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)

	return nil
}
