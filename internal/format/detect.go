package format

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Detect guesses the format of src, returning [Unknown] if it looks like
// nothing we know.
//
// The checks are made in order and the first to match wins:
//
//   - Starts with "curl" followed by a space or newline: [Curl]
//   - A JSON object with both "info" and "item" at the top level: [Postman]
//   - Contains "fetch(": [Fetch]
//   - Contains "axios" anywhere: [Axios]
func Detect(src string) Format {
	trimmed := strings.TrimSpace(src)

	if strings.HasPrefix(trimmed, "curl ") || strings.HasPrefix(trimmed, "curl\n") ||
		strings.HasPrefix(trimmed, "curl\r\n") {
		return Curl
	}

	if isCollection(trimmed) {
		return Postman
	}

	if strings.Contains(src, "fetch(") {
		return Fetch
	}

	if strings.Contains(src, "axios") {
		return Axios
	}

	return Unknown
}

// isCollection reports whether src is a JSON document that looks like a
// postman collection. Invalid JSON is just not a collection.
func isCollection(src string) bool {
	if !gjson.Valid(src) {
		return false
	}

	info, item := gjson.Get(src, "info"), gjson.Get(src, "item")

	return info.Exists() && item.Exists()
}
