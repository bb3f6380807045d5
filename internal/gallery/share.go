package gallery

import (
	"fmt"
	"net/url"
	"strings"
)

// Platform is a social network an image can be shared to.
type Platform string

const (
	Facebook  Platform = "facebook"
	Twitter   Platform = "twitter"
	Pinterest Platform = "pinterest"
)

var shareBases = map[Platform]string{
	Facebook:  "https://www.facebook.com/sharer/sharer.php?u=",
	Twitter:   "https://twitter.com/intent/tweet?url=",
	Pinterest: "https://pinterest.com/pin/create/button/?url=",
}

// ParsePlatform resolves a platform name case-insensitively.
func ParsePlatform(name string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := shareBases[p]; !ok {
		return "", fmt.Errorf("unknown share platform %q", name)
	}
	return p, nil
}

// ShareURL builds the outbound share link for imageURL.
func ShareURL(p Platform, imageURL string) (string, error) {
	base, ok := shareBases[p]
	if !ok {
		return "", fmt.Errorf("unknown share platform %q", p)
	}
	if strings.TrimSpace(imageURL) == "" {
		return "", fmt.Errorf("share to %s: empty image url", p)
	}
	return base + url.QueryEscape(imageURL), nil
}
