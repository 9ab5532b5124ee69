package flow

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Unclassified is shown for a taxonomy level the classifier did not return.
const Unclassified = "N/A"

// Taxonomy level keys, exactly as the classifier emits them.
const (
	KeyL1 = "L1"
	KeyL2 = "L2"
	KeyL3 = "L3"
)

// LevelKeys lists the taxonomy levels in display order.
var LevelKeys = []string{KeyL1, KeyL2, KeyL3}

var (
	// ErrNotObject is wrapped when the classifier output is valid JSON but not an object.
	ErrNotObject = errors.New("classifier output is not a JSON object")
	// ErrTrailingData is wrapped when the classifier output has content after the JSON value.
	ErrTrailingData = errors.New("unexpected data after JSON value")
	// ErrEmptyResult is returned when exporting a result that was never decoded.
	ErrEmptyResult = errors.New("empty classification result")
)

// MalformedOutputError reports classifier output that did not decode.
// Raw is the output exactly as returned.
type MalformedOutputError struct {
	Err error
	Raw string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed classifier output: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}

// Result is a decoded classification. Keys are kept exactly as received.
type Result map[string]any

// Level is one taxonomy level prepared for display.
type Level struct {
	Key     string
	Value   string
	Present bool
}

// Decode parses raw classifier output into a Result. Any failure is returned
// as a *MalformedOutputError carrying the unmodified raw text.
func Decode(raw string) (Result, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, &MalformedOutputError{Raw: raw, Err: err}
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &MalformedOutputError{Raw: raw, Err: ErrTrailingData}
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil, &MalformedOutputError{Raw: raw, Err: ErrNotObject}
	}

	return Result(obj), nil
}

// Level returns the display value for key, or Unclassified when the key is
// absent, null or blank.
func (r Result) Level(key string) string {
	value, ok := r.level(key)
	if !ok {
		return Unclassified
	}
	return value
}

func (r Result) level(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}

	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	default:
		encoded, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		s = string(encoded)
	}

	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// Levels returns L1, L2 and L3 in order.
func (r Result) Levels() []Level {
	levels := make([]Level, 0, len(LevelKeys))
	for _, key := range LevelKeys {
		value, ok := r.level(key)
		if !ok {
			value = Unclassified
		}
		levels = append(levels, Level{Key: key, Value: value, Present: ok})
	}
	return levels
}

// Export serializes the result as indented JSON, the download document.
func (r Result) Export() ([]byte, error) {
	if r == nil {
		return nil, ErrEmptyResult
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(map[string]any(r)); err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
