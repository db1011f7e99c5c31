package pathutil

import (
	"regexp"
	"strings"
)

type pathPattern struct {
	pattern  *regexp.Regexp
	template string
}

// Most specific first.
var pathPatterns = []pathPattern{
	{pattern: regexp.MustCompile(`^/articles/\d+$`), template: "/articles/:id"},
	{pattern: regexp.MustCompile(`^/articles/[^/]+$`), template: "/articles/:invalid"},
}

// NormalizePath maps dynamic paths to a template so metric label
// cardinality stays bounded: "/articles/7" becomes "/articles/:id".
// Query strings and a trailing slash are ignored; unknown paths pass through.
func NormalizePath(path string) string {
	if i := strings.IndexByte(path, '?'); i != -1 {
		path = path[:i]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	for _, p := range pathPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}
	return path
}
