package core

import (
	"encoding/json"
	"strings"

	"github.com/rishabh9559/medassist-backend/internal/tools"
)

// ToolCallMarker is the literal token the model is instructed to emit
// before a structured action request.
const ToolCallMarker = "TOOL_CALL:"

// ParseToolCall scans a raw completion for an embedded action request. It
// returns the prose before the marker and the decoded invocation, or
// (reply, nil) when the reply carries no usable action. Degraded model
// output is never an error here: malformed JSON, a missing object, or a
// record without a name all mean "no action".
func ParseToolCall(reply string) (string, *tools.Invocation) {
	idx := strings.Index(reply, ToolCallMarker)
	if idx < 0 {
		return reply, nil
	}

	prose := strings.TrimSpace(reply[:idx])
	after := reply[idx+len(ToolCallMarker):]

	payload, ok := balancedObject(after)
	if !ok {
		return reply, nil
	}

	var inv tools.Invocation
	if err := json.Unmarshal([]byte(payload), &inv); err != nil {
		return reply, nil
	}
	if strings.TrimSpace(inv.Name) == "" {
		return reply, nil
	}
	if inv.Parameters == nil {
		inv.Parameters = map[string]interface{}{}
	}
	return prose, &inv
}

// balancedObject extracts the first JSON object in s by tracking brace
// depth. The scan is string-aware: braces inside quoted values (a reason
// like "follow-up {urgent}") must not close the object early, so a naive
// search for the first '}' would truncate the payload.
func balancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
