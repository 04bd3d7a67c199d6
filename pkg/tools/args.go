// Package tools holds the helpers shared by every Multilead tool package:
// argument extraction from MCP requests, the upstream API's array encodings,
// and uniform result rendering.
package tools

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vanman2024/multilead-mcp/pkg/multilead"
)

// GetStringArg extracts a required string argument.
func GetStringArg(req mcp.CallToolRequest, key string) (string, error) {
	val, ok := req.Params.Arguments[key]
	if !ok {
		return "", multilead.NewValidationError("missing argument: %s", key)
	}

	str, ok := val.(string)
	if !ok {
		return "", multilead.NewValidationError("argument %s is not a string", key)
	}

	return str, nil
}

// GetRequiredString is like GetStringArg but also rejects empty values.
func GetRequiredString(req mcp.CallToolRequest, key string) (string, error) {
	str, err := GetStringArg(req, key)
	if err != nil {
		return "", err
	}
	if str == "" {
		return "", multilead.NewValidationError("argument %s must not be empty", key)
	}
	return str, nil
}

// GetOptionalString extracts an optional string argument; absent or empty
// values report ok=false.
func GetOptionalString(req mcp.CallToolRequest, key string) (string, bool) {
	val, exists := req.Params.Arguments[key]
	if !exists {
		return "", false
	}
	str, ok := val.(string)
	if !ok || str == "" {
		return "", false
	}
	return str, true
}

// GetFloat64Arg extracts a required numeric argument.
func GetFloat64Arg(req mcp.CallToolRequest, key string) (float64, error) {
	val, ok := req.Params.Arguments[key]
	if !ok {
		return 0, multilead.NewValidationError("missing argument: %s", key)
	}

	f, ok := val.(float64)
	if !ok {
		return 0, multilead.NewValidationError("argument %s is not a number", key)
	}

	return f, nil
}

// GetIntArg extracts a required integer argument from the JSON number.
func GetIntArg(req mcp.CallToolRequest, key string) (int, error) {
	f, err := GetFloat64Arg(req, key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// GetRequiredInt extracts a required integer argument. Clients send IDs both
// as JSON numbers and as strings, so both forms are accepted.
func GetRequiredInt(req mcp.CallToolRequest, key string) (int, error) {
	val, ok := req.Params.Arguments[key]
	if !ok {
		return 0, multilead.NewValidationError("missing argument: %s", key)
	}

	switch typed := val.(type) {
	case float64:
		return int(typed), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0, multilead.NewValidationError("argument %s is not a valid integer: %s", key, typed)
		}
		return n, nil
	default:
		return 0, multilead.NewValidationError("argument %s is not an integer", key)
	}
}

// GetOptionalInt extracts an optional integer argument; absent or unparseable
// values report ok=false. String forms are accepted like GetRequiredInt.
func GetOptionalInt(req mcp.CallToolRequest, key string) (int, bool) {
	val, exists := req.Params.Arguments[key]
	if !exists {
		return 0, false
	}
	switch typed := val.(type) {
	case float64:
		return int(typed), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// GetIntOrDefault extracts an optional integer argument, falling back to def.
func GetIntOrDefault(req mcp.CallToolRequest, key string, def int) int {
	if n, ok := GetOptionalInt(req, key); ok {
		return n
	}
	return def
}

// GetOptionalBool extracts an optional boolean argument; absent values report
// ok=false.
func GetOptionalBool(req mcp.CallToolRequest, key string) (bool, bool) {
	val, exists := req.Params.Arguments[key]
	if !exists {
		return false, false
	}
	b, ok := val.(bool)
	if !ok {
		return false, false
	}
	return b, true
}

// ParseCommaList splits a comma-separated argument value into trimmed,
// non-empty entries.
func ParseCommaList(raw string) []string {
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// ParseCommaInts parses a comma-separated list of integers.
func ParseCommaInts(raw string) ([]int, error) {
	var ids []int
	for _, part := range ParseCommaList(raw) {
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, multilead.NewValidationError("invalid ID format: %s", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// BracketedInts renders integers in the bracketed comma-joined form the
// Multilead API expects for list-valued filters, e.g. "[1,2,3]".
func BracketedInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// BracketedStrings renders strings in the same bracketed form, without
// quoting, e.g. "[a,b,c]".
func BracketedStrings(items []string) string {
	return "[" + strings.Join(items, ",") + "]"
}

// JSONList renders strings as a JSON array, the encoding the conversations
// endpoints expect for thread and identifier query parameters.
func JSONList(items []string) string {
	encoded, err := json.Marshal(items)
	if err != nil {
		// A []string cannot fail to marshal.
		return "[]"
	}
	return string(encoded)
}

// ParseJSONObjectArg decodes an argument supplied either as a JSON object
// string or as an already-structured object.
func ParseJSONObjectArg(req mcp.CallToolRequest, key string) (map[string]any, error) {
	val, exists := req.Params.Arguments[key]
	if !exists {
		return nil, nil
	}

	switch typed := val.(type) {
	case map[string]any:
		return typed, nil
	case string:
		if typed == "" {
			return nil, nil
		}
		var decoded map[string]any
		if err := json.Unmarshal([]byte(typed), &decoded); err != nil {
			return nil, multilead.NewValidationError("argument %s is not a valid JSON object: %v", key, err)
		}
		return decoded, nil
	default:
		return nil, multilead.NewValidationError("argument %s must be a JSON object", key)
	}
}

// ParseJSONArrayArg decodes an argument supplied either as a JSON array
// string or as an already-structured array of objects.
func ParseJSONArrayArg(req mcp.CallToolRequest, key string) ([]any, error) {
	val, exists := req.Params.Arguments[key]
	if !exists {
		return nil, nil
	}

	switch typed := val.(type) {
	case []any:
		return typed, nil
	case string:
		if typed == "" {
			return nil, nil
		}
		var decoded []any
		if err := json.Unmarshal([]byte(typed), &decoded); err != nil {
			return nil, multilead.NewValidationError("argument %s is not a valid JSON array: %v", key, err)
		}
		return decoded, nil
	default:
		return nil, multilead.NewValidationError("argument %s must be a JSON array", key)
	}
}

// SeatScope extracts the user/seat ID pair nearly every endpoint is scoped by.
func SeatScope(req mcp.CallToolRequest) (userID, accountID string, err error) {
	if userID, err = GetRequiredString(req, "user_id"); err != nil {
		return "", "", err
	}
	if accountID, err = GetRequiredString(req, "account_id"); err != nil {
		return "", "", err
	}
	return userID, accountID, nil
}

// JSONResult renders a gateway payload as a text tool result.
func JSONResult(payload any) *mcp.CallToolResult {
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("internal_error: failed to render response: %v", err))
	}
	return mcp.NewToolResultText(string(encoded))
}

// ErrorResult renders a classified failure as a tool error, prefixed with the
// error kind so callers can distinguish failure classes.
func ErrorResult(err error) *mcp.CallToolResult {
	if e, ok := err.(*multilead.Error); ok {
		return mcp.NewToolResultError(e.Error())
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", multilead.KindOf(err), err))
}
