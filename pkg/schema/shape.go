package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	asterrors "github.com/Ramsey-B/aster/pkg/errors"
)

// shape lists the keys an object must carry before it is decoded. Keys in
// nullable may hold null, every other required key must not. objects and
// arrays describe nested objects and arrays of objects.
type shape struct {
	required []string
	nullable []string
	objects  map[string]shape
	arrays   map[string]shape
}

func (sh shape) check(raw json.RawMessage) []asterrors.FieldViolation {
	fields, violations := decodeObject(raw)
	if violations != nil {
		return violations
	}

	for _, key := range sh.required {
		value, ok := fields[key]
		if !ok {
			violations = append(violations, asterrors.FieldViolation{Field: key, Message: "is required"})
			continue
		}
		if isNull(value) && !slices.Contains(sh.nullable, key) {
			violations = append(violations, asterrors.FieldViolation{Field: key, Message: "must not be null"})
		}
	}

	for _, key := range slices.Sorted(maps.Keys(sh.objects)) {
		value, ok := fields[key]
		if !ok || isNull(value) {
			continue
		}
		violations = append(violations, nest(key, sh.objects[key].check(value))...)
	}

	for _, key := range slices.Sorted(maps.Keys(sh.arrays)) {
		value, ok := fields[key]
		if !ok || isNull(value) {
			continue
		}

		var items []json.RawMessage
		if err := json.Unmarshal(value, &items); err != nil {
			// the typed decode reports the mismatch
			continue
		}
		for i, item := range items {
			violations = append(violations, nest(fmt.Sprintf("%s[%d]", key, i), sh.arrays[key].check(item))...)
		}
	}

	return violations
}

func decodeObject(raw json.RawMessage) (map[string]json.RawMessage, []asterrors.FieldViolation) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, []asterrors.FieldViolation{{Message: fmt.Sprintf("expected an object, got %s", describe(raw))}}
	}
	return fields, nil
}

func decodeArray(raw json.RawMessage) ([]json.RawMessage, []asterrors.FieldViolation) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, []asterrors.FieldViolation{{Message: fmt.Sprintf("expected an array, got %s", describe(raw))}}
	}
	return items, nil
}

// unmarshal decodes raw into target, reporting type mismatches by field.
func unmarshal(raw json.RawMessage, target any) []asterrors.FieldViolation {
	err := json.Unmarshal(raw, target)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []asterrors.FieldViolation{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}}
	}

	return []asterrors.FieldViolation{{Message: err.Error()}}
}

func nest(path string, violations []asterrors.FieldViolation) []asterrors.FieldViolation {
	for i, v := range violations {
		switch {
		case v.Field == "":
			violations[i].Field = path
		case strings.HasPrefix(v.Field, "["):
			violations[i].Field = path + v.Field
		default:
			violations[i].Field = path + "." + v.Field
		}
	}
	return violations
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func describe(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "nothing"
	}
	if len(trimmed) > 32 {
		return string(trimmed[:32]) + "..."
	}
	return string(trimmed)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// checkFormats runs the struct's validate tags.
func (s *Schemas) checkFormats(value any) []asterrors.FieldViolation {
	err := s.validate.Struct(value)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []asterrors.FieldViolation{{Message: err.Error()}}
	}

	violations := make([]asterrors.FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		// drop the struct name from the namespace
		field := fe.Namespace()
		if idx := strings.Index(field, "."); idx >= 0 {
			field = field[idx+1:]
		}

		violations = append(violations, asterrors.FieldViolation{
			Field:   field,
			Message: formatMessage(fe),
		})
	}

	return violations
}

func formatMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "uuid":
		return fmt.Sprintf("must be a UUID, got '%v'", fe.Value())
	case "datetime":
		return fmt.Sprintf("must be an ISO-8601 datetime, got '%v'", fe.Value())
	case "url":
		return fmt.Sprintf("must be a URL, got '%v'", fe.Value())
	}
	return fmt.Sprintf("failed '%s' validation, got '%v'", fe.Tag(), fe.Value())
}

func parseTime(value string) time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return t
}

func parseOptionalTime(value *string) *time.Time {
	if value == nil {
		return nil
	}
	t := parseTime(*value)
	return &t
}
