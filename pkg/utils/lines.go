package utils

import (
	"strings"
)

// SplitLines splits text into lines the way line-oriented readers expect:
// "\n" and "\r\n" both end a line, a final line terminator does not produce a
// trailing empty line, and empty text has no lines at all.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
