package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// SourceValidation is the outcome of validating a source creation payload.
// When Valid, Data holds the normalized candidate ready to persist; otherwise
// Message names the first violated rule.
type SourceValidation struct {
	Valid   bool
	Message string
	Data    *ContentItemsSource
}

func invalidSource(format string, args ...any) SourceValidation {
	return SourceValidation{Message: fmt.Sprintf(format, args...)}
}

// ValidateSourceData checks a creation payload against the rules every source
// must satisfy and the shape its declared type requires. It never persists
// anything.
func ValidateSourceData(data SourceData) SourceValidation {
	srcType, ok := ParseSourceType(data.Type)
	if !ok {
		return invalidSource("unknown source type %q", data.Type)
	}
	if strings.TrimSpace(data.Name) == "" {
		return invalidSource("name is required")
	}
	if strings.TrimSpace(data.URL) == "" {
		return invalidSource("url is required")
	}
	if u, err := url.ParseRequestURI(data.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return invalidSource("url %q is not a valid locator", data.URL)
	}

	mappings := data.Mappings
	switch srcType {
	case SourceTypeCSV:
		if mappings == nil || mappings.Headers[AttrContentURL] == "" {
			return invalidSource("csv sources require a %s header mapping", AttrContentURL)
		}
		if t := mappings.DefaultContentItemType; t != "" {
			if _, ok := ParseContentItemType(string(t)); !ok {
				return invalidSource("unknown default content item type %q", t)
			}
		}
	case SourceTypeRSSITunes:
		// The feed convention fixes the mapping; ignore any instructions sent.
		mappings = nil
	}

	return SourceValidation{
		Valid: true,
		Data: &ContentItemsSource{
			Type:     srcType,
			Name:     strings.TrimSpace(data.Name),
			URL:      data.URL,
			AutoSync: data.AutoSync,
			Mappings: mappings,
		},
	}
}

// ValidateContentItem checks a normalized candidate record before it is
// persisted. A failing record is dropped from the sync, not a fatal error.
func ValidateContentItem(item *ContentItem) error {
	if strings.TrimSpace(item.ContentURL) == "" {
		return fmt.Errorf("content item has no contentUrl")
	}
	if _, ok := ParseContentItemType(string(item.Type)); !ok {
		return fmt.Errorf("content item %q has unknown type %q", item.ContentURL, item.Type)
	}
	return nil
}
