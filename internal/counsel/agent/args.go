package agent

import (
	"fmt"
	"strconv"
	"strings"
)

// Args are the decoded JSON arguments of a tool call.
type Args map[string]any

// String returns the named argument as trimmed text. Numbers are formatted
// since models occasionally send them unquoted.
func (a Args) String(name string) (string, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return "", fmt.Errorf("missing argument %q", name)
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	default:
		return "", fmt.Errorf("argument %q has type %T", name, v)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("argument %q is empty", name)
	}
	return s, nil
}
