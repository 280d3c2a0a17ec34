package jsontree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// Marshal encodes the tree to JSON.
// With an empty gap the output is compact, otherwise every nested level is
// indented by gap. Object keys are written in insertion order.
func Marshal(v any, gap string) ([]byte, error) {
	buffer := new(bytes.Buffer)
	if err := encode(buffer, v, gap, ""); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Canonicalize encodes the tree according to the JSON Canonicalization Scheme (RFC 8785).
func Canonicalize(v any) ([]byte, error) {
	data, err := Marshal(v, "")
	if err != nil {
		return nil, err
	}
	canonical, err := jsoncanonicalizer.Transform(data)
	if err != nil {
		return nil, fmt.Errorf("cannot canonicalize json: %w", err)
	}
	return canonical, nil
}

func encode(buffer *bytes.Buffer, v any, gap, indent string) error {
	switch typed := v.(type) {
	case nil:
		buffer.WriteString("null")
	case *Object:
		if typed == nil {
			buffer.WriteString("null")
			return nil
		}
		return encodeObject(buffer, typed, gap, indent)
	case []any:
		if typed == nil {
			buffer.WriteString("null")
			return nil
		}
		return encodeArray(buffer, typed, gap, indent)
	case json.Number:
		if !json.Valid([]byte(typed)) {
			return fmt.Errorf("invalid number literal %q", string(typed))
		}
		buffer.WriteString(string(typed))
	case string:
		return encodeScalar(buffer, typed)
	case bool:
		if typed {
			buffer.WriteString("true")
		} else {
			buffer.WriteString("false")
		}
	default:
		// plain Go numbers from hand-built trees
		return encodeScalar(buffer, typed)
	}
	return nil
}

func encodeObject(buffer *bytes.Buffer, obj *Object, gap, indent string) error {
	if obj.Len() == 0 {
		buffer.WriteString("{}")
		return nil
	}
	nested := indent + gap
	buffer.WriteByte('{')
	first := true
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			buffer.WriteByte(',')
		}
		first = false
		newline(buffer, gap, nested)
		if err := encodeScalar(buffer, pair.Key); err != nil {
			return err
		}
		buffer.WriteByte(':')
		if gap != "" {
			buffer.WriteByte(' ')
		}
		if err := encode(buffer, pair.Value, gap, nested); err != nil {
			return fmt.Errorf("field %q: %w", pair.Key, err)
		}
	}
	newline(buffer, gap, indent)
	buffer.WriteByte('}')
	return nil
}

func encodeArray(buffer *bytes.Buffer, arr []any, gap, indent string) error {
	if len(arr) == 0 {
		buffer.WriteString("[]")
		return nil
	}
	nested := indent + gap
	buffer.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buffer.WriteByte(',')
		}
		newline(buffer, gap, nested)
		if err := encode(buffer, elem, gap, nested); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	newline(buffer, gap, indent)
	buffer.WriteByte(']')
	return nil
}

func newline(buffer *bytes.Buffer, gap, indent string) {
	if gap == "" {
		return
	}
	buffer.WriteByte('\n')
	buffer.WriteString(indent)
}

// encodeScalar writes a single value through encoding/json without HTML escaping,
// so that text like "<" survives as written in the source file.
func encodeScalar(buffer *bytes.Buffer, v any) error {
	var scratch bytes.Buffer
	encoder := json.NewEncoder(&scratch)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	buffer.WriteString(strings.TrimSuffix(scratch.String(), "\n"))
	return nil
}
