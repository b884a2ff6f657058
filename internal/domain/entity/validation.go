package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Payload is a decoded JSON object whose values are still raw, so the validator can
// report type mismatches per field instead of failing the whole decode.
type Payload map[string]json.RawMessage

const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldText        = "text"
	fieldDate        = "date"
)

var knownFields = map[string]bool{
	fieldTitle:       true,
	fieldDescription: true,
	fieldText:        true,
	fieldDate:        true,
}

// ErrInvalidISODate is returned by ParseISODate for values outside the accepted layouts.
var ErrInvalidISODate = errors.New("invalid ISO 8601 date")

// isoLayouts are tried in order. Offset-less values are interpreted as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseISODate parses the ISO 8601 date and date-time forms accepted by the API.
func ParseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidISODate, s)
}

// DecodePayload decodes a request body into a Payload.
// An empty body is treated as an empty object.
func DecodePayload(body []byte) (Payload, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Payload{}, nil
	}
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil || p == nil {
		errs := &ValidationErrors{}
		errs.add("value", `"value" must be of type object`)
		return nil, errs
	}
	return p, nil
}

// ValidateRequired applies the strict schema used by create and replace:
// title, description and text are required, date is optional, unknown fields are rejected.
func ValidateRequired(p Payload) (NewsInput, error) {
	errs := &ValidationErrors{}

	title := stringField(p, fieldTitle, MaxTitleLength, true, errs)
	description := stringField(p, fieldDescription, MaxDescriptionLength, true, errs)
	text := stringField(p, fieldText, MaxTextLength, true, errs)
	date := dateField(p, errs)

	for _, key := range unknownKeys(p) {
		errs.add(key, fmt.Sprintf("%q is not allowed", key))
	}

	if !errs.empty() {
		return NewsInput{}, errs
	}
	return NewsInput{
		Title:       *title,
		Description: *description,
		Text:        *text,
		Date:        date,
	}, nil
}

// ValidatePatch applies the optional schema used by patch. Every field is optional
// and unknown fields are tolerated and dropped.
func ValidatePatch(p Payload) (NewsPatch, error) {
	errs := &ValidationErrors{}

	patch := NewsPatch{
		Title:       stringField(p, fieldTitle, MaxTitleLength, false, errs),
		Description: stringField(p, fieldDescription, MaxDescriptionLength, false, errs),
		Text:        stringField(p, fieldText, MaxTextLength, false, errs),
		Date:        dateField(p, errs),
	}

	if !errs.empty() {
		return NewsPatch{}, errs
	}
	return patch, nil
}

// Validate re-checks a typed input against the field constraints.
func (in NewsInput) Validate() error {
	errs := &ValidationErrors{}
	checkString(fieldTitle, in.Title, MaxTitleLength, errs)
	checkString(fieldDescription, in.Description, MaxDescriptionLength, errs)
	checkString(fieldText, in.Text, MaxTextLength, errs)
	if errs.empty() {
		return nil
	}
	return errs
}

// Validate re-checks the supplied fields of a patch.
func (p NewsPatch) Validate() error {
	errs := &ValidationErrors{}
	if p.Title != nil {
		checkString(fieldTitle, *p.Title, MaxTitleLength, errs)
	}
	if p.Description != nil {
		checkString(fieldDescription, *p.Description, MaxDescriptionLength, errs)
	}
	if p.Text != nil {
		checkString(fieldText, *p.Text, MaxTextLength, errs)
	}
	if errs.empty() {
		return nil
	}
	return errs
}

func stringField(p Payload, name string, maxLen int, required bool, errs *ValidationErrors) *string {
	raw, ok := p[name]
	if !ok {
		if required {
			errs.add(name, fmt.Sprintf("%q is required", name))
		}
		return nil
	}
	var s string
	if isNull(raw) || json.Unmarshal(raw, &s) != nil {
		errs.add(name, fmt.Sprintf("%q must be a string", name))
		return nil
	}
	if !checkString(name, s, maxLen, errs) {
		return nil
	}
	return &s
}

func checkString(name, s string, maxLen int, errs *ValidationErrors) bool {
	if s == "" {
		errs.add(name, fmt.Sprintf("%q is not allowed to be empty", name))
		return false
	}
	if utf8.RuneCountInString(s) > maxLen {
		errs.add(name, fmt.Sprintf("%q length must be less than or equal to %d characters long", name, maxLen))
		return false
	}
	return true
}

func dateField(p Payload, errs *ValidationErrors) *time.Time {
	raw, ok := p[fieldDate]
	if !ok {
		return nil
	}
	var s string
	if isNull(raw) || json.Unmarshal(raw, &s) != nil {
		errs.add(fieldDate, fmt.Sprintf("%q must be in ISO 8601 date format", fieldDate))
		return nil
	}
	t, err := ParseISODate(s)
	if err != nil {
		errs.add(fieldDate, fmt.Sprintf("%q must be in ISO 8601 date format", fieldDate))
		return nil
	}
	return &t
}

func unknownKeys(p Payload) []string {
	var keys []string
	for k := range p {
		if !knownFields[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
