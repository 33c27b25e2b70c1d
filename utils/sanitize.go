package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.UGCPolicy()

// Sanitize cleans rich-text HTML (post bodies, comments) before it is
// persisted, so it can later be rendered unescaped.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
