package bind

// splitXSList splits an xs:list value (whitespace-separated tokens, the
// XML Schema list type convention) into its items. Runs of whitespace
// collapse; leading and trailing whitespace is ignored.
func splitXSList(s string) []string {
	var items []string
	start := -1
	for i := 0; i <= len(s); i++ {
		isSpace := i == len(s) || isXSSpace(s[i])
		if !isSpace && start < 0 {
			start = i
		} else if isSpace && start >= 0 {
			items = append(items, s[start:i])
			start = -1
		}
	}
	return items
}

func isXSSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}
