// Package citation renders formatted citations for retrieved sources.
package citation

import (
	"fmt"
	"net/url"
	"strings"
)

// Style selects a citation layout.
type Style string

const (
	StyleAPA     Style = "APA"
	StyleMLA     Style = "MLA"
	StyleChicago Style = "Chicago"
)

// Source models the metadata a citation is rendered from.
// PublishedDate is the provider-native string and is not parsed.
type Source struct {
	Title         string
	URL           string
	PublishedDate string
}

// ErrUnknownStyle indicates an unsupported citation style.
var ErrUnknownStyle = fmt.Errorf("unknown citation style")

// Format renders one citation in the requested style.
func Format(src Source, style Style) (string, error) {
	title := strings.TrimSpace(src.Title)
	if title == "" {
		title = "Untitled"
	}
	link := strings.TrimSpace(src.URL)
	date := strings.TrimSpace(src.PublishedDate)
	domain := extractDomain(link)

	switch style {
	case StyleAPA, "":
		out := fmt.Sprintf("Retrieved from %q - %s", title, link)
		if date != "" {
			out += fmt.Sprintf(" (Published: %s)", date)
		}
		return out, nil
	case StyleMLA:
		out := fmt.Sprintf("%q.", title)
		if domain != "" {
			out += " " + domain + ","
		}
		if date != "" {
			out += " " + date + ","
		}
		return out + " " + link + ".", nil
	case StyleChicago:
		out := ""
		if domain != "" {
			out = domain + ". "
		}
		out += fmt.Sprintf("%q.", title)
		if date != "" {
			out += " " + date + "."
		}
		return out + " " + link + ".", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownStyle, style)
	}
}

func extractDomain(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Host)
	host = strings.TrimSuffix(host, ":80")
	host = strings.TrimSuffix(host, ":443")
	return host
}
