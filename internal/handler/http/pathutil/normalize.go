// Package pathutil normalizes request paths for use as metric labels.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
var pathPatterns = []*PathPattern{
	// Any single segment under the collection is an article id, valid or not.
	{Pattern: regexp.MustCompile(`^/api/news/[^/]+$`), Template: "/api/news/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs (e.g., /api/news/65fb5716a99861ca125601ec) to template format
// (e.g., /api/news/:id). Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/api/news/65fb5716a99861ca125601ec") // "/api/news/:id"
//	NormalizePath("/api/news/invalidId")                // "/api/news/:id"
//	NormalizePath("/api/news")                          // "/api/news" (unchanged)
//	NormalizePath("/api/news/")                         // "/api/news"
//	NormalizePath("/health")                            // "/health" (unchanged)
//	NormalizePath("/api/news/1/extra")                  // "/api/news/1/extra" (no match, return original)
//
// Query parameters and trailing slashes are stripped before matching.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return path
}

// GetExpectedCardinality returns the expected number of unique path labels
// after normalization: the templates plus the static endpoints
// (/api/news, /health, /healthcheck, /ready, /live, /metrics).
func GetExpectedCardinality() int {
	const staticCount = 6
	return len(pathPatterns) + staticCount
}
