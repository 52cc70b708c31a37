package icon

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/mauriliodesign/Icomoon2Figma/internal/jsonutil"
)

var (
	// ErrMalformedDocument reports a selection file that is not a JSON object.
	ErrMalformedDocument = errors.New("malformed selection document")
	// ErrEmptyIconSet reports a selection file without icons.
	ErrEmptyIconSet = errors.New("no icons found")
	// ErrInvalidIconSchema reports an icon entry without a string name or
	// a numeric code. One bad entry rejects the whole document.
	ErrInvalidIconSchema = errors.New("invalid icon data structure")
)

// ParseSelection parses an IcoMoon selection document and returns its icons.
//
// The document must be a JSON object. A missing or null "icons" field counts
// as an empty set and yields ErrEmptyIconSet. Every entry must carry
// properties.name as a JSON string and properties.code as a JSON number;
// otherwise nothing is returned and the error wraps ErrInvalidIconSchema.
// Unknown fields are ignored.
func ParseSelection(data []byte) ([]Record, error) {
	var doc interface{}
	if err := jsonutil.UnmarshalWithContext(data, &doc, "parse selection"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	obj, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrMalformedDocument)
	}

	var entries []interface{}
	switch v := obj["icons"].(type) {
	case nil:
	case []interface{}:
		entries = v
	case bool:
		if v {
			return nil, fmt.Errorf("%w: icons is not an array", ErrMalformedDocument)
		}
	default:
		if isFalsy(v) {
			break
		}
		return nil, fmt.Errorf("%w: icons is not an array", ErrMalformedDocument)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyIconSet
	}

	icons := make([]Record, 0, len(entries))
	for i, e := range entries {
		rec, err := parseRecord(e)
		if err != nil {
			return nil, fmt.Errorf("%w: icon %d: %v", ErrInvalidIconSchema, i, err)
		}
		icons = append(icons, rec)
	}
	return icons, nil
}

// isFalsy reports values a selection file may use in place of an absent
// icons list (0 and "").
func isFalsy(v interface{}) bool {
	switch val := v.(type) {
	case float64:
		return val == 0
	case string:
		return val == ""
	}
	return false
}

func parseRecord(e interface{}) (Record, error) {
	entry, ok := e.(map[string]interface{})
	if !ok {
		return Record{}, errors.New("entry is not an object")
	}
	props, ok := entry["properties"].(map[string]interface{})
	if !ok {
		return Record{}, errors.New("missing properties")
	}
	name, ok := props["name"].(string)
	if !ok {
		return Record{}, errors.New("properties.name is not a string")
	}
	code, ok := props["code"].(float64)
	if !ok {
		return Record{}, errors.New("properties.code is not a number")
	}
	if code < 0 || code > unicode.MaxRune {
		return Record{}, fmt.Errorf("properties.code %g is outside the Unicode range", code)
	}

	rec := Record{
		Properties: Properties{
			Name: name,
			Code: int(code),
			Tags: parseTags(props["tags"]),
		},
		SVG: jsonutil.GetString(entry, "svg"),
	}
	return rec, nil
}

// parseTags keeps tags loosely: non-string elements are converted to their
// string form and a non-array value is ignored.
func parseTags(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	tags := make([]string, len(raw))
	for i, t := range raw {
		tags[i] = tagString(t)
	}
	return tags
}

// tagString renders a nested array as its elements joined by commas and
// null as the empty string.
func tagString(v interface{}) string {
	list, ok := v.([]interface{})
	if !ok {
		return jsonutil.ToString(v)
	}
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = tagString(e)
	}
	return strings.Join(parts, ",")
}
