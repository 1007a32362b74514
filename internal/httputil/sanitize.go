package httputil

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
)

// episodeCodePattern matches codes like S01E01.
var episodeCodePattern = regexp.MustCompile(`^S[0-9]{2}E[0-9]{2}$`)

// ValidateURL checks that a URL is well-formed and uses HTTPS.
// Plain HTTP is accepted only for loopback hosts, which keeps local
// mirrors and test servers usable.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("malformed URL: %w", err)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	switch u.Scheme {
	case "https":
		return nil
	case "http":
		if isLoopback(u.Hostname()) {
			return nil
		}
		return fmt.Errorf("only HTTPS URLs are allowed for %q", u.Hostname())
	default:
		return fmt.Errorf("only HTTPS URLs are allowed, got %q", u.Scheme)
	}
}

// ValidatePlayableURL checks that a URL can be handed to a media player:
// http or https with a host. Anything else (file://, options, bare words)
// is refused.
func ValidatePlayableURL(rawURL string) error {
	if strings.HasPrefix(rawURL, "-") {
		return fmt.Errorf("URL looks like an option: %q", rawURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("malformed URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// ValidateEpisodeCode checks that code looks like S01E01.
func ValidateEpisodeCode(code string) error {
	if !episodeCodePattern.MatchString(code) {
		return fmt.Errorf("invalid episode code %q (want SxxEyy)", code)
	}
	return nil
}

// BuildURL constructs a URL from base and path components, encoding each path segment.
func BuildURL(base string, pathSegments ...string) string {
	u := strings.TrimRight(base, "/")
	for _, seg := range pathSegments {
		u += "/" + url.PathEscape(seg)
	}
	return u
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
