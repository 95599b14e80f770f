package domain

import "time"

// SourceType identifies which adapter applies to a content items source.
type SourceType string

const (
	SourceTypeCSV       SourceType = "csv"
	SourceTypeRSSITunes SourceType = "rss2-itunes"
)

// ParseSourceType reports whether s names a supported source type.
func ParseSourceType(s string) (SourceType, bool) {
	switch t := SourceType(s); t {
	case SourceTypeCSV, SourceTypeRSSITunes:
		return t, true
	}
	return "", false
}

// Normalized attribute names used as keys in FieldMappings.Headers.
const (
	AttrContentURL       = "contentUrl"
	AttrType             = "type"
	AttrName             = "name"
	AttrShortDescription = "shortDescription"
	AttrThumbnailURL     = "thumbnailUrl"
)

// FieldMappings are the field-mapping instructions for tabular sources:
// each normalized attribute name maps to the raw column header it should be
// read from. An attribute with no mapped header is omitted from every output
// record. Feed sources need no mappings; the feed convention fixes them.
type FieldMappings struct {
	Headers                map[string]string `json:"headers,omitempty"`
	DefaultContentItemType ContentItemType   `json:"defaultContentItemType,omitempty"`
}

// ContentItemsSource is a publisher's configured subscription to one external
// catalog. It owns its field mappings; content items derived from it are owned
// by storage once written.
type ContentItemsSource struct {
	ID          string         `json:"id"`
	PublisherID string         `json:"publisherId"`
	Type        SourceType     `json:"type"`
	Name        string         `json:"name"`
	URL         string         `json:"url"`
	AutoSync    bool           `json:"autoSync"`
	Mappings    *FieldMappings `json:"instructions,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// SourceData is the raw creation payload for a content items source, before
// validation.
type SourceData struct {
	Type     string         `json:"type"`
	Name     string         `json:"name"`
	URL      string         `json:"url"`
	AutoSync bool           `json:"autoSync"`
	Mappings *FieldMappings `json:"instructions,omitempty"`
}
