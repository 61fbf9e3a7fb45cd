package api

import "fmt"

// ValidateParams checks args against the declared parameters and applies
// defaults. It returns a new argument map; the input map is not mutated.
//
// Required parameters must be present and non-nil. Present values must be
// coercible to the declared type (JSON decoding yields float64 for all
// numbers, so int and float are both accepted for "number"). Unknown
// arguments are rejected so typos surface instead of being ignored.
func ValidateParams(params []ParameterMetadata, args map[string]interface{}) (map[string]interface{}, error) {
	known := make(map[string]ParameterMetadata, len(params))
	for _, p := range params {
		known[p.Name] = p
	}

	for name := range args {
		if _, ok := known[name]; !ok {
			return nil, NewValidationError(name, "not a recognized parameter")
		}
	}

	out := make(map[string]interface{}, len(params))
	for _, p := range params {
		value, present := args[p.Name]
		if !present || value == nil {
			if p.Required {
				return nil, NewValidationError(p.Name, "required parameter is missing")
			}
			if p.Default != nil {
				out[p.Name] = p.Default
			}
			continue
		}

		if err := checkType(p, value); err != nil {
			return nil, err
		}
		out[p.Name] = value
	}

	return out, nil
}

func checkType(p ParameterMetadata, value interface{}) error {
	switch p.Type {
	case "string":
		if _, ok := value.(string); !ok {
			return NewValidationError(p.Name, fmt.Sprintf("expected string, got %T", value))
		}
	case "number":
		switch value.(type) {
		case float64, float32, int, int32, int64:
		default:
			return NewValidationError(p.Name, fmt.Sprintf("expected number, got %T", value))
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return NewValidationError(p.Name, fmt.Sprintf("expected boolean, got %T", value))
		}
	case "object":
		if _, ok := value.(map[string]interface{}); !ok {
			return NewValidationError(p.Name, fmt.Sprintf("expected object, got %T", value))
		}
	case "array":
		if _, ok := value.([]interface{}); !ok {
			return NewValidationError(p.Name, fmt.Sprintf("expected array, got %T", value))
		}
	default:
		// Unconstrained parameter type; accept any value.
	}
	return nil
}
