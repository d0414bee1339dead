package utilities

// Contains checks if a string is present in a slice of strings.
func Contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

// ContainsInt64 checks if an int64 is present in a slice.
func ContainsInt64(slice []int64, n int64) bool {
	for _, v := range slice {
		if v == n {
			return true
		}
	}
	return false
}
