package request

import "encoding/json"

// objectCandidates scans s for top-level JSON object candidates, handling
// nested braces and string escapes. Completions often wrap their JSON in
// prose or code fences, so strict whole-string parsing is tried first and
// this scanner recovers the embedded object when that fails.
//
// Iterating bytes is safe for the ASCII delimiters involved: UTF-8
// guarantees ASCII bytes never occur inside a multi-byte sequence.
func objectCandidates(s string) []string {
	var candidates []string
	var depth int
	start := -1
	var inString, escape bool

	for i := 0; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			continue
		}
		if inString {
			if b == '\\' {
				escape = true
			} else if b == '"' {
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					candidates = append(candidates, s[start:i+1])
					start = -1
				}
			}
		}
	}
	return candidates
}

// decodeObject parses the first well-formed JSON object found in s into a
// generic mapping. Returns false when s contains none.
func decodeObject(s string) (map[string]interface{}, bool) {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err == nil {
		return m, true
	}
	for _, cand := range objectCandidates(s) {
		if err := json.Unmarshal([]byte(cand), &m); err == nil {
			return m, true
		}
	}
	return nil, false
}
