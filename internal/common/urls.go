package common

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

// SanitizeURL performs basic cleanup on URLs to handle common copy-paste issues.
// Removes whitespace, trailing punctuation and markdown artifacts.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// [text](url) -> url
	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	// "https://example.com," -> "https://example.com"
	cleaned = strings.TrimRight(cleaned, ",.)}]\"'>;")
	// "(https://example.com" -> "https://example.com"
	cleaned = strings.TrimLeft(cleaned, "([<\"'")

	return strings.TrimSpace(cleaned)
}

// NormalizeURL sanitizes rawURL and checks that it is an absolute http(s) URL.
func NormalizeURL(rawURL string) (string, error) {
	cleaned := SanitizeURL(rawURL)
	if cleaned == "" {
		return "", fmt.Errorf("url must not be empty")
	}

	// Spaces must be pre-encoded as %20
	if strings.Contains(cleaned, " ") {
		return "", fmt.Errorf("malformed url %q: contains spaces", rawURL)
	}

	parsed, err := url.Parse(cleaned)
	if err != nil {
		return "", fmt.Errorf("malformed url %q: %w", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("malformed url %q: scheme must be http or https", rawURL)
	}
	if parsed.Hostname() == "" {
		return "", fmt.Errorf("malformed url %q: missing host", rawURL)
	}
	if strings.ContainsAny(parsed.Host, "{}[]<>\"'") && !strings.HasPrefix(parsed.Host, "[") {
		return "", fmt.Errorf("malformed url %q: invalid characters in host", rawURL)
	}

	return cleaned, nil
}
