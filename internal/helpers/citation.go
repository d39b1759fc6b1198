package helpers

import (
	"fmt"
	"regexp"
	"strconv"
)

var citationMarker = regexp.MustCompile(`\[(\d+)\]`)

// LinkCitations rewrites bracketed citation markers like [2] into markdown
// links [2](url) using the id→url mapping of the current document set.
// Markers that reference an unknown document id are left untouched.
func LinkCitations(text string, urls map[int]string) string {
	if len(urls) == 0 {
		return text
	}
	return citationMarker.ReplaceAllStringFunc(text, func(marker string) string {
		id, err := strconv.Atoi(citationMarker.FindStringSubmatch(marker)[1])
		if err != nil {
			return marker
		}
		url, ok := urls[id]
		if !ok {
			return marker
		}
		return fmt.Sprintf("[%d](%s)", id, url)
	})
}
