package servicenow

// Record is a row from the Table API. Field values arrive as strings,
// or as {"display_value": ..., "value": ...} objects when display
// values were requested.
type Record map[string]interface{}

// String returns the named field as a string, unwrapping display-value
// objects. Missing or non-string fields yield "".
func (r Record) String(field string) string {
	value, ok := r[field]
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case map[string]interface{}:
		if inner, ok := v["value"].(string); ok {
			return inner
		}
	}
	return ""
}
