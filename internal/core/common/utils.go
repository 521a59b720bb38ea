package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripFences removes markdown code fencing the model may wrap its JSON in
// and trims surrounding whitespace.
func StripFences(response string) string {
	s := strings.ReplaceAll(response, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ExtractObject slices the first top-level '{' through the last '}' out of a
// response, tolerating narrative text around the JSON. The boolean reports
// whether an object span was found.
func ExtractObject(response string) (string, bool) {
	s := StripFences(response)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// ParseJSON cleans and unmarshals a model response into a type T. It handles
// common LLM quirks like surrounding markdown or extra text; it does not
// repair broken quoting (see the repair package for that).
func ParseJSON[T any](response string) (T, error) {
	var zero T

	jsonStr, ok := ExtractObject(response)
	if !ok {
		return zero, fmt.Errorf("no JSON object found in response (missing '{')")
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, jsonStr)
	}

	return result, nil
}
