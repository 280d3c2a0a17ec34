package jsontree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
)

// ErrInvalidJSON is returned by Parse if the input is not a single valid JSON document.
var ErrInvalidJSON = errors.New("invalid json")

// Parse builds a tree from a JSON document.
// Object keys keep the order they appear in within data.
func Parse(data []byte) (any, error) {
	// jsonparser is lenient on malformed input, so the document is
	// validated as a whole before it is walked.
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJSON, describeInvalid(data))
	}
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return parseValue(value, dataType)
}

func parseValue(raw []byte, dataType jsonparser.ValueType) (any, error) {
	switch dataType {
	case jsonparser.Null:
		return nil, nil
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(raw)
	case jsonparser.Number:
		return json.Number(raw), nil
	case jsonparser.String:
		return parseString(raw)
	case jsonparser.Array:
		return parseArray(raw)
	case jsonparser.Object:
		return parseObject(raw)
	default:
		return nil, fmt.Errorf("%w: unexpected value type %s", ErrInvalidJSON, dataType)
	}
}

func parseObject(raw []byte) (*Object, error) {
	obj := NewObject()
	err := jsonparser.ObjectEach(raw, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		// key may point into a reused unescape buffer
		name := string(key)
		parsed, err := parseValue(value, dataType)
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		obj.Set(name, parsed)
		return nil
	})
	if errors.Is(err, jsonparser.MalformedStringEscapeError) {
		// a key holds an escape jsonparser cannot unescape, e.g. a lone surrogate
		return decodeObject(raw)
	}
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func parseArray(raw []byte) ([]any, error) {
	arr := make([]any, 0)
	var firstErr error
	_, err := jsonparser.ArrayEach(raw, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if firstErr != nil {
			return
		}
		if err != nil {
			firstErr = err
			return
		}
		parsed, err := parseValue(value, dataType)
		if err != nil {
			firstErr = fmt.Errorf("entry %d: %w", len(arr), err)
			return
		}
		arr = append(arr, parsed)
	})
	if err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return arr, nil
}

// parseString unquotes the content of a string token. Escapes that jsonparser
// rejects but JSON allows, like unpaired surrogates, are decoded by encoding/json,
// which substitutes U+FFFD.
func parseString(raw []byte) (string, error) {
	if s, err := jsonparser.ParseString(raw); err == nil {
		return s, nil
	}
	quoted := make([]byte, 0, len(raw)+2)
	quoted = append(append(append(quoted, '"'), raw...), '"')
	var s string
	if err := json.Unmarshal(quoted, &s); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return s, nil
}

// decodeObject builds an object from its token stream, keeping key order.
func decodeObject(raw []byte) (*Object, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object", ErrInvalidJSON)
	}
	return obj, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		// nil, bool, json.Number or string
		return tok, nil
	}
	switch delim {
	case '{':
		obj := NewObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := keyTok.(string)
			value, err := decodeValue(dec)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", key, err)
			}
			obj.Set(key, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := make([]any, 0)
		for dec.More() {
			value, err := decodeValue(dec)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", len(arr), err)
			}
			arr = append(arr, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %s", delim)
	}
}

// describeInvalid returns the decoder error for data, which carries the offset of
// the first offending byte.
func describeInvalid(data []byte) string {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err.Error()
	}
	return "malformed document"
}
