package host

import (
	"encoding/json"
	"fmt"
	"strings"
)

// textSegment is one run of a text field value. Text fields arrive as a
// sequence of runs (plain text, mentions, links) whose text parts are
// concatenated for rendering.
type textSegment struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// urlValue is the value of a URL field: display text plus the link.
type urlValue struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

// DecodeCellValue converts a raw host cell value into the panel's
// content string according to the field type code.
//
// Text fields: a JSON array of text runs, concatenated in order; a bare
// JSON string is also accepted. URL fields: a {text, link} object (or
// an array with one), preferring the display text and falling back to
// the link. A JSON null decodes to the empty string (empty cell).
// Any other field type is rejected.
func DecodeCellValue(code FieldTypeCode, raw []byte) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	switch code {
	case FieldTypeText:
		return decodeTextValue(raw)
	case FieldTypeURL:
		return decodeURLValue(raw)
	default:
		return "", fmt.Errorf("%w: field type code %d", ErrValueDecode, int(code))
	}
}

// decodeTextValue concatenates the text runs of a text field value.
func decodeTextValue(raw []byte) (string, error) {
	var segments []textSegment
	if err := json.Unmarshal(raw, &segments); err == nil {
		var b strings.Builder
		for _, seg := range segments {
			b.WriteString(seg.Text)
		}
		return b.String(), nil
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain, nil
	}

	return "", fmt.Errorf("%w: text field", ErrValueDecode)
}

// decodeURLValue extracts the display text of a URL field value,
// falling back to the link itself.
func decodeURLValue(raw []byte) (string, error) {
	var v urlValue
	if err := json.Unmarshal(raw, &v); err != nil {
		// Some hosts wrap the value in a single-element array.
		var list []urlValue
		if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
			return "", fmt.Errorf("%w: url field", ErrValueDecode)
		}
		v = list[0]
	}

	if v.Text != "" {
		return v.Text, nil
	}
	return v.Link, nil
}
