package security

import (
	"regexp"
	"strings"
)

// Substring denylist, not an HTML parser. The interface is stable so a
// parser-based sanitizer can be swapped in behind CleanString.
var (
	scriptBlockRe  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	jsSchemeRe     = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRe = regexp.MustCompile(`(?i)\bon\w+\s*=`)
)

// CleanString strips recognized dangerous substrings from one value:
// script-tag blocks, javascript: scheme prefixes and inline event-handler
// attributes, then trims surrounding whitespace. Stripping repeats until the
// value is stable, so cleaning is idempotent even for nested payloads.
func CleanString(value string) string {
	for {
		cleaned := scriptBlockRe.ReplaceAllString(value, "")
		cleaned = jsSchemeRe.ReplaceAllString(cleaned, "")
		cleaned = eventHandlerRe.ReplaceAllString(cleaned, "")
		if cleaned == value {
			break
		}
		value = cleaned
	}
	return strings.TrimSpace(value)
}

// CleanValue walks a parsed JSON object graph and cleans every string leaf.
// It never rejects input; unrecognized types pass through untouched.
func CleanValue(value any) any {
	switch v := value.(type) {
	case string:
		return CleanString(v)
	case map[string]any:
		for key, inner := range v {
			v[key] = CleanValue(inner)
		}
		return v
	case []any:
		for i, inner := range v {
			v[i] = CleanValue(inner)
		}
		return v
	}
	return value
}

// CleanForm cleans every value of a parsed form field set in place.
func CleanForm(form map[string][]string) map[string][]string {
	for key, values := range form {
		for i, value := range values {
			values[i] = CleanString(value)
		}
		form[key] = values
	}
	return form
}
