package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ParseJSON decodes a JSON string into v.
func ParseJSON(data string, v interface{}) error {
	return decodeJSON(strings.NewReader(data), v, false)
}

// ParseJSONStrict decodes a JSON string into v, rejecting unknown fields.
func ParseJSONStrict(data string, v interface{}) error {
	return decodeJSON(strings.NewReader(data), v, true)
}

// ParseJSONBytes decodes a JSON byte slice into v.
func ParseJSONBytes(data []byte, v interface{}) error {
	return decodeJSON(bytes.NewReader(data), v, false)
}

// DecodeJSON decodes from r with the shared decoder settings.
func DecodeJSON(r io.Reader, v interface{}) error {
	return decodeJSON(r, v, false)
}

// DecodeJSONStrict decodes from r, rejecting unknown fields.
func DecodeJSONStrict(r io.Reader, v interface{}) error {
	return decodeJSON(r, v, true)
}

func decodeJSON(r io.Reader, v interface{}, disallowUnknown bool) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if disallowUnknown {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(v); err != nil {
		return err
	}

	for {
		t, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if t != nil {
			return fmt.Errorf("unexpected extra JSON data")
		}
	}
}

var unquotedKeyPattern = regexp.MustCompile(`([{\[,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)

// QuoteJSONKeys adds double quotes around bare object keys, a frequent
// defect in model output.
func QuoteJSONKeys(raw string) string {
	return unquotedKeyPattern.ReplaceAllString(raw, `$1"$2":`)
}

// StripMarkdownFences removes ```json ... ``` wrappers that models add
// around JSON payloads.
func StripMarkdownFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ExtractJSON slices the outermost JSON value (object or array) out of
// surrounding prose. Returns an error when no JSON value is present.
func ExtractJSON(raw string) (string, error) {
	s := StripMarkdownFences(raw)

	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")

	start := objStart
	open, close := "{", "}"
	if arrStart >= 0 && (objStart < 0 || arrStart < objStart) {
		start = arrStart
		open, close = "[", "]"
	}
	if start < 0 {
		return "", fmt.Errorf("no JSON value found in response")
	}

	end := strings.LastIndex(s, close)
	if end <= start {
		return "", fmt.Errorf("unterminated JSON %s value in response", open)
	}
	return s[start : end+1], nil
}

// ToJSON marshals v to a JSON string.
func ToJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
