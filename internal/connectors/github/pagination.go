package github

import (
	"regexp"
	"strings"
)

// linkRegex matches Link header entries: <url>; rel="type".
var linkRegex = regexp.MustCompile(`<([^>]+)>;\s*rel="([^"]+)"`)

// ParseLinkHeader extracts all URLs from a Link header by relation name.
// An empty or absent header yields an empty map. The parser assumes
// well-formed input from a compliant server; malformed segments are skipped.
func ParseLinkHeader(header string) map[string]string {
	links := make(map[string]string)
	if header == "" {
		return links
	}

	// Split by comma for multiple links
	parts := strings.Split(header, ",")
	for _, part := range parts {
		matches := linkRegex.FindStringSubmatch(strings.TrimSpace(part))
		if len(matches) == 3 {
			links[matches[2]] = matches[1]
		}
	}

	return links
}

// NextLink extracts the "next" URL from a Link header.
// Returns empty string if no next link is present.
func NextLink(header string) string {
	return ParseLinkHeader(header)["next"]
}
