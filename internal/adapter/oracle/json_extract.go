package oracle

import (
	"fmt"
	"strings"
)

// The oracle is an untrusted text-completion service: replies may wrap
// the requested JSON in prose, code fences or reasoning tags. These
// helpers implement the contract "first opening delimiter to last
// closing delimiter, or fail" over a cleaned reply.

// cleanReply strips surrounding whitespace, <think> blocks and markdown
// code fences from a raw oracle reply.
func cleanReply(raw string) string {
	s := strings.TrimSpace(raw)

	if thinkStart := strings.Index(s, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(s, "</think>"); thinkEnd != -1 && thinkEnd > thinkStart {
			s = s[:thinkStart] + s[thinkEnd+len("</think>"):]
			s = strings.TrimSpace(s)
		}
	}

	for _, fence := range []string{"```json", "```JSON", "```"} {
		s = strings.ReplaceAll(s, fence, "")
	}
	return strings.TrimSpace(s)
}

// extractJSONObject returns the greedy first-'{'-to-last-'}' span of the
// cleaned reply.
func extractJSONObject(raw string) (string, error) {
	s := cleanReply(raw)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in oracle reply")
	}
	return s[start : end+1], nil
}

// extractJSONArray returns the greedy first-'['-to-last-']' span of the
// cleaned reply.
func extractJSONArray(raw string) (string, error) {
	s := cleanReply(raw)
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON array found in oracle reply")
	}
	return s[start : end+1], nil
}
