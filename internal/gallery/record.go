package gallery

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ImageRecord is one photograph returned by the image source. Records are
// treated as immutable once fetched.
type ImageRecord struct {
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

// Caption is the grid label: "<position> - <description>".
func (r ImageRecord) Caption(index int) string {
	return fmt.Sprintf("%d - %s", index+1, r.Description)
}

// Commentary returns the description with its first letter upper-cased.
func (r ImageRecord) Commentary() string {
	if r.Description == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(r.Description)
	return string(unicode.ToUpper(first)) + r.Description[size:]
}

// TagChips renders tags as "#tag" chips, lower-cased and trimmed. Blank tags
// are skipped.
func (r ImageRecord) TagChips() []string {
	chips := make([]string, 0, len(r.Tags))
	for _, tag := range r.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		chips = append(chips, "#"+tag)
	}
	return chips
}

func (r ImageRecord) valid() bool {
	return strings.TrimSpace(r.ID) != "" && strings.TrimSpace(r.URL) != ""
}
