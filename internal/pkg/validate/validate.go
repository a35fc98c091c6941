package validate

import "strings"

func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

// Phone accepts loosely E.164-shaped numbers: an optional leading plus
// followed by 7 to 15 digits. Spaces, dots and dashes are stripped before
// checking so "+1 555-000-0001" passes.
func Phone(value string) bool {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(value))

	cleaned = strings.TrimPrefix(cleaned, "+")
	if len(cleaned) < 7 || len(cleaned) > 15 {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func MaxLen(value string, limit int) bool {
	return len(strings.TrimSpace(value)) <= limit
}
