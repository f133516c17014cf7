package utils

// UniqueString removes duplicate values from a slice of strings, preserving
// first-seen order.
func UniqueString(slice []string) []string {
	seen := make(map[string]bool)
	list := []string{}
	for _, entry := range slice {
		if !seen[entry] {
			seen[entry] = true
			list = append(list, entry)
		}
	}
	return list
}
