package domain

import "strings"

// NormalizeHumanName trims leading/trailing whitespace and collapses internal whitespace runs.
// Applied to the name fields on registration before they reach the backend.
func NormalizeHumanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
