// Package ocr provides typed lookups over the flat string-keyed map of
// raw OCR pairs. The accessor only reports values and their validity; it
// never raises validation errors itself; callers record those.
package ocr

import (
	"strconv"
	"strings"
	"time"

	"bulkscan/internal/model"
)

// DateFormat is the only date layout accepted on scanned forms.
const DateFormat = "02/01/2006"

// Fields is the raw OCR field map. Values are strings, booleans, or nil.
// A key absent from the map means the form never asked the question; a
// present key with a nil value means it was asked and left blank. Get and
// Bool deliberately do not distinguish the two; only Has does.
type Fields map[string]any

// FromPairs builds a Fields map from the OCR pair list of an exception
// record. Later duplicates win, matching scanner behavior.
func FromPairs(pairs []model.OcrField) Fields {
	f := make(Fields, len(pairs))
	for _, p := range pairs {
		f[p.Name] = p.Value
	}
	return f
}

// Has reports raw key presence, regardless of value.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Get returns the value for key as a string, or "" when the key is absent
// or its value is nil. Boolean values are rendered as "true"/"false".
func (f Fields) Get(key string) string {
	v, ok := f[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// ExistsAny reports whether any of the given keys has a non-nil,
// non-empty value. Used to detect whether a person/role was filled in at
// all.
func (f Fields) ExistsAny(keys ...string) bool {
	for _, k := range keys {
		if strings.TrimSpace(f.Get(k)) != "" {
			return true
		}
	}
	return false
}

// Bool returns the boolean value of key and whether that value is a valid
// boolean. A value is valid only if it is a literal bool or parses
// case-insensitively to "true"/"false"; anything else, including an
// absent key, is invalid.
func (f Fields) Bool(key string) (value, valid bool) {
	v, ok := f[key]
	if !ok || v == nil {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// IsTrue reports whether key holds a valid boolean that is true.
func (f Fields) IsTrue(key string) bool {
	v, valid := f.Bool(key)
	return valid && v
}

// Date parses the value of key as a dd/mm/yyyy date. The second return
// value is false when the key has no value or the value does not parse;
// callers decide which of the two is an error.
func (f Fields) Date(key string) (*time.Time, bool) {
	raw := strings.TrimSpace(f.Get(key))
	if raw == "" {
		return nil, false
	}
	t, err := time.Parse(DateFormat, raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}
