package schema

import (
	"fmt"
	"math"
)

// ValidationError reports the first field that failed validation against a
// record kind. Field is a path into the object, e.g. "education[0].degree".
type ValidationError struct {
	Field    string
	Expected string
	Got      string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: expected %s, got %s", e.Field, e.Expected, e.Got)
}

// Validate checks a decoded JSON value against the named record kind. The
// value must be a JSON object; required fields must be present with the right
// shapes, unknown fields are ignored. Validation is pure and deterministic.
func Validate(raw any, kind Kind) error {
	specs, err := specsFor(kind)
	if err != nil {
		return err
	}

	object, ok := raw.(map[string]any)
	if !ok {
		return &ValidationError{Field: "$", Expected: "object", Got: jsonTypeName(raw)}
	}

	return validateObject("", specs, object)
}

// validateObject walks the specs in declaration order so the reported failure
// is stable for a given input.
func validateObject(path string, specs []fieldSpec, object map[string]any) error {
	for _, spec := range specs {
		fieldPath := spec.name
		if path != "" {
			fieldPath = path + "." + spec.name
		}

		value, present := object[spec.name]
		if !present || value == nil {
			if spec.required {
				return &ValidationError{Field: fieldPath, Expected: spec.typ.String(), Got: "null"}
			}
			continue
		}

		if err := validateValue(fieldPath, spec, value); err != nil {
			return err
		}
	}

	return nil
}

func validateValue(path string, spec fieldSpec, value any) error {
	switch spec.typ {
	case typeString:
		if _, ok := value.(string); !ok {
			return typeMismatch(path, spec, value)
		}
	case typeNumber:
		if _, ok := value.(float64); !ok {
			return typeMismatch(path, spec, value)
		}
	case typeInteger:
		number, ok := value.(float64)
		if !ok || number != math.Trunc(number) {
			return typeMismatch(path, spec, value)
		}
		if spec.min != nil && number < float64(*spec.min) || spec.max != nil && number > float64(*spec.max) {
			return &ValidationError{
				Field:    path,
				Expected: fmt.Sprintf("integer between %d and %d", *spec.min, *spec.max),
				Got:      fmt.Sprintf("%d", int(number)),
			}
		}
	case typeBool:
		if _, ok := value.(bool); !ok {
			return typeMismatch(path, spec, value)
		}
	case typeStringList:
		items, ok := value.([]any)
		if !ok {
			return typeMismatch(path, spec, value)
		}
		for i, item := range items {
			if _, ok := item.(string); !ok {
				return &ValidationError{
					Field:    fmt.Sprintf("%s[%d]", path, i),
					Expected: "string",
					Got:      jsonTypeName(item),
				}
			}
		}
	case typeObjectList:
		items, ok := value.([]any)
		if !ok {
			return typeMismatch(path, spec, value)
		}
		for i, item := range items {
			object, ok := item.(map[string]any)
			if !ok {
				return &ValidationError{
					Field:    fmt.Sprintf("%s[%d]", path, i),
					Expected: "object",
					Got:      jsonTypeName(item),
				}
			}
			if err := validateObject(fmt.Sprintf("%s[%d]", path, i), spec.elem, object); err != nil {
				return err
			}
		}
	}

	return nil
}

func typeMismatch(path string, spec fieldSpec, value any) *ValidationError {
	return &ValidationError{Field: path, Expected: spec.typ.String(), Got: jsonTypeName(value)}
}

func jsonTypeName(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		if v == math.Trunc(v) {
			return "integer"
		}
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
