package service

import (
	"errors"
	"strings"
)

// ErrNoJSON indicates that no JSON object could be located in a model
// response.
var ErrNoJSON = errors.New("no JSON object found in response")

// ExtractJSON isolates an embedded JSON object from free-form model
// output: everything from the first '{' to the last '}' inclusive.
// Surrounding commentary is discarded. The substring is not validated
// here; callers unmarshal it and treat failures as malformed output,
// distinct from a network error.
func ExtractJSON(content string) (string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSON
	}
	return content[start : end+1], nil
}
