package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateParams_RequiredMissing(t *testing.T) {
	params := []ParameterMetadata{
		{Name: "short_description", Type: "string", Required: true},
	}

	_, err := ValidateParams(params, map[string]interface{}{})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "short_description", verr.Parameter)
}

func TestValidateParams_NilCountsAsMissing(t *testing.T) {
	params := []ParameterMetadata{
		{Name: "query", Type: "string", Required: true},
	}

	_, err := ValidateParams(params, map[string]interface{}{"query": nil})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestValidateParams_UnknownArgument(t *testing.T) {
	params := []ParameterMetadata{
		{Name: "limit", Type: "number"},
	}

	_, err := ValidateParams(params, map[string]interface{}{"limt": 10})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "limt", verr.Parameter)
}

func TestValidateParams_TypeMismatch(t *testing.T) {
	tests := []struct {
		name  string
		param ParameterMetadata
		value interface{}
		ok    bool
	}{
		{"string accepts string", ParameterMetadata{Name: "p", Type: "string"}, "hi", true},
		{"string rejects number", ParameterMetadata{Name: "p", Type: "string"}, 3.0, false},
		{"number accepts float64", ParameterMetadata{Name: "p", Type: "number"}, 10.0, true},
		{"number accepts int", ParameterMetadata{Name: "p", Type: "number"}, 10, true},
		{"number rejects string", ParameterMetadata{Name: "p", Type: "number"}, "10", false},
		{"boolean accepts bool", ParameterMetadata{Name: "p", Type: "boolean"}, true, true},
		{"boolean rejects string", ParameterMetadata{Name: "p", Type: "boolean"}, "true", false},
		{"object accepts map", ParameterMetadata{Name: "p", Type: "object"}, map[string]interface{}{}, true},
		{"object rejects slice", ParameterMetadata{Name: "p", Type: "object"}, []interface{}{}, false},
		{"array accepts slice", ParameterMetadata{Name: "p", Type: "array"}, []interface{}{"a"}, true},
		{"array rejects map", ParameterMetadata{Name: "p", Type: "array"}, map[string]interface{}{}, false},
		{"untyped accepts anything", ParameterMetadata{Name: "p"}, struct{}{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateParams([]ParameterMetadata{tt.param}, map[string]interface{}{"p": tt.value})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, IsValidationError(err), "expected validation error, got %v", err)
			}
		})
	}
}

func TestValidateParams_DefaultsApplied(t *testing.T) {
	params := []ParameterMetadata{
		{Name: "limit", Type: "number", Default: 10},
		{Name: "offset", Type: "number", Default: 0},
		{Name: "query", Type: "string"},
	}

	out, err := ValidateParams(params, map[string]interface{}{"limit": 25.0})
	require.NoError(t, err)
	assert.Equal(t, 25.0, out["limit"])
	assert.Equal(t, 0, out["offset"])
	_, present := out["query"]
	assert.False(t, present, "optional parameter without default should be absent")
}

func TestValidateParams_InputMapNotMutated(t *testing.T) {
	params := []ParameterMetadata{
		{Name: "limit", Type: "number", Default: 10},
	}
	args := map[string]interface{}{}

	out, err := ValidateParams(params, args)
	require.NoError(t, err)
	assert.Equal(t, 10, out["limit"])
	assert.Empty(t, args)
}
