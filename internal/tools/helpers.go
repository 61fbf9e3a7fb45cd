package tools

import (
	"net/url"
	"strconv"

	"github.com/yvain13/servicenow-mcp-sub001/internal/servicenow"
)

// recordFromArgs copies the named arguments that are present into a
// record for the Table API. Numbers arrive as float64 from JSON and are
// normalized to integer strings the way ServiceNow choice fields expect.
func recordFromArgs(args map[string]interface{}, fields ...string) servicenow.Record {
	record := make(servicenow.Record)
	for _, field := range fields {
		value, ok := args[field]
		if !ok || value == nil {
			continue
		}
		if f, ok := value.(float64); ok && f == float64(int64(f)) {
			record[field] = strconv.FormatInt(int64(f), 10)
			continue
		}
		record[field] = value
	}
	return record
}

// listQuery builds the sysparm query values shared by all list tools.
func listQuery(args map[string]interface{}, sysparmQuery string) url.Values {
	query := url.Values{}
	if sysparmQuery != "" {
		query.Set("sysparm_query", sysparmQuery)
	}
	query.Set("sysparm_limit", strconv.Itoa(intArg(args, "limit", 10)))
	if offset := intArg(args, "offset", 0); offset > 0 {
		query.Set("sysparm_offset", strconv.Itoa(offset))
	}
	return query
}

// intArg reads a numeric argument, tolerating the float64 representation
// JSON decoding produces.
func intArg(args map[string]interface{}, name string, fallback int) int {
	switch v := args[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}

// stringArg reads an optional string argument, returning "" when absent.
func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}
