package domain

import "strings"

// Slugify derives a URL slug from an AMA title:
//   - lowercases
//   - collapses every run of non-alphanumeric characters into one hyphen
//   - trims leading/trailing hyphens
//
// "My first AMA!" -> "my-first-ama".
func Slugify(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(title))
	prevHyphen := false
	for _, r := range title {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			prevHyphen = false
			continue
		}
		if !prevHyphen {
			b.WriteByte('-')
			prevHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
