package utils

import "strings"

// NormalizePhone trims the number and drops inner spaces and dashes, keeping a leading '+'.
func NormalizePhone(input string) string {
	s := strings.TrimSpace(input)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}
