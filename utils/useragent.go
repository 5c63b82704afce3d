package utils

import (
	"strings"

	ua "github.com/mileusna/useragent"
)

// ParseUserAgent extracts browser, OS and device class from a User-Agent
// header.
func ParseUserAgent(userAgent string) (browser, os, device string) {
	if userAgent == "" {
		return "Unknown Browser", "Unknown OS", "Desktop"
	}

	parsed := ua.Parse(userAgent)

	browser = "Unknown Browser"
	if parsed.Name != "" {
		browser = parsed.Name
	}
	os = "Unknown OS"
	if parsed.OS != "" {
		os = parsed.OS
	}

	device = "Desktop"
	switch {
	case parsed.Bot:
		device = "Bot"
	case parsed.Tablet:
		device = "Tablet"
	case parsed.Mobile:
		device = "Mobile"
	}

	return strings.TrimSpace(browser), strings.TrimSpace(os), device
}
