package api

import (
	"fmt"
	"strings"
)

// parseResourceIDFromURL parses a URL path with the format
// "/api/v2/{apiPath}/{resourceID}" and returns the resource ID.
func parseResourceIDFromURL(url, apiPath string) (string, error) {
	// Remove API path from URL.
	url = strings.TrimPrefix(url, fmt.Sprintf("/api/v2/%s", apiPath))

	// Remove empty entries and validate path.
	var resultPath []string
	for _, v := range strings.Split(url, "/") {
		if v != "" {
			resultPath = append(resultPath, v)
		}
	}

	// Only allow a single path segment, e.g. "/{uuid}" or "/{slug}".
	switch len(resultPath) {
	case 0:
		return "", fmt.Errorf("no resource ID set in url path")
	case 1:
		return resultPath[0], nil
	default:
		return "", fmt.Errorf("invalid URL path")
	}
}
