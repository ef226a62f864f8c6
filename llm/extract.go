package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencedJSONRegex = regexp.MustCompile("(?s)```json\\s*(.*?)```")

// ExtractJSON locates a JSON object inside free-form model output and
// unmarshals it into T. It prefers a fenced ```json block; otherwise it scans
// from the first '{' and tries substrings ending at each subsequent '}' until
// one parses. The boolean result reports whether any structured data was
// found; absence is an expected outcome, not an error.
func ExtractJSON[T any](response string) (T, bool) {
	var result T

	if m := fencedJSONRegex.FindStringSubmatch(response); m != nil {
		candidate := strings.TrimSpace(m[1])
		if err := json.Unmarshal([]byte(candidate), &result); err == nil {
			return result, true
		}
	}

	start := strings.Index(response, "{")
	if start == -1 {
		return result, false
	}
	body := response[start:]

	// A decoder stops after the first complete JSON value, which covers the
	// common case of trailing prose after the object.
	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(&result); err == nil {
		return result, true
	}

	// Otherwise walk the closing braces from the end inward.
	for end := strings.LastIndex(body, "}"); end != -1; end = strings.LastIndex(body[:end], "}") {
		var zero T
		result = zero
		if err := json.Unmarshal([]byte(body[:end+1]), &result); err == nil {
			return result, true
		}
	}

	var zero T
	return zero, false
}
