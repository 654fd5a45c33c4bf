package schema

// JSONSchema returns a JSON-schema-shaped description of the record kind,
// suitable for embedding into a prompt so the model knows the exact response
// contract it has to satisfy.
func JSONSchema(kind Kind) (map[string]any, error) {
	specs, err := specsFor(kind)
	if err != nil {
		return nil, err
	}
	return objectSchema(specs), nil
}

func objectSchema(specs []fieldSpec) map[string]any {
	properties := make(map[string]any, len(specs))
	required := make([]string, 0, len(specs))

	for _, spec := range specs {
		properties[spec.name] = spec.schema()
		if spec.required {
			required = append(required, spec.name)
		}
	}

	result := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		result["required"] = required
	}

	return result
}

func (s fieldSpec) schema() map[string]any {
	switch s.typ {
	case typeNumber:
		return map[string]any{"type": "number"}
	case typeInteger:
		result := map[string]any{"type": "integer"}
		if s.min != nil {
			result["minimum"] = *s.min
		}
		if s.max != nil {
			result["maximum"] = *s.max
		}
		return result
	case typeBool:
		return map[string]any{"type": "boolean"}
	case typeStringList:
		return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	case typeObjectList:
		return map[string]any{"type": "array", "items": objectSchema(s.elem)}
	default:
		return map[string]any{"type": "string"}
	}
}
