// Package codeblock extracts fenced code blocks from model responses.
package codeblock

import (
	"fmt"
	"regexp"
	"strings"
)

var fencePattern = regexp.MustCompile("(?s)```([a-zA-Z0-9_.-]*)[ \t]*\n(.*?)```")

// Extract returns the contents of all fences tagged with marker (e.g.
// "hcl", "yaml", "json"), joined with blank lines. An error when no fence
// with that marker is present.
func Extract(response, marker string) (string, error) {
	var blocks []string
	for _, m := range fencePattern.FindAllStringSubmatch(response, -1) {
		if m[1] == marker {
			blocks = append(blocks, strings.TrimSpace(m[2]))
		}
	}
	if len(blocks) == 0 {
		return "", fmt.Errorf("no %s code block found in response", marker)
	}
	return strings.Join(blocks, "\n\n"), nil
}

// ExtractOrWhole behaves like Extract but falls back to the trimmed whole
// response when no fence is present. Used for Dockerfile responses, which
// the model frequently returns bare.
func ExtractOrWhole(response, marker string) string {
	if block, err := Extract(response, marker); err == nil {
		return block
	}
	// an untagged fence still beats the raw response
	for _, m := range fencePattern.FindAllStringSubmatch(response, -1) {
		if m[1] == "" || strings.EqualFold(m[1], marker) {
			return strings.TrimSpace(m[2])
		}
	}
	return strings.TrimSpace(response)
}
